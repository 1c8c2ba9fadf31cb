package slotgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/pkg/types"
)

func TestGenerate(t *testing.T) {
	slots := Generate("09:00", "11:00", 30)

	require.Len(t, slots, 4)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestGenerate_PartialLastSlot(t *testing.T) {
	// последний шаг не влезает целиком, но метка всё равно строго меньше end
	slots := Generate("09:00", "10:10", 45)

	assert.Equal(t, []types.TimeString{"09:00", "09:45"}, slots)
}

func TestGenerate_EmptyCases(t *testing.T) {
	assert.Empty(t, Generate("09:00", "11:00", 0))
	assert.Empty(t, Generate("09:00", "11:00", -15))
	assert.Empty(t, Generate("11:00", "09:00", 30))
	assert.Empty(t, Generate("09:00", "09:00", 30))
}

func TestCount_ClosedForm(t *testing.T) {
	cases := []struct {
		start, end types.TimeString
		duration   int
		want       int
	}{
		{"09:00", "11:00", 30, 4},
		{"09:00", "11:00", 45, 3}, // ceil(120/45) = 3
		{"09:00", "09:15", 15, 1},
		{"09:00", "09:16", 15, 2},
		{"00:00", "23:59", 60, 24},
		{"09:00", "09:00", 15, 0},
		{"09:00", "08:00", 15, 0},
		{"09:00", "11:00", 0, 0},
	}

	for _, tc := range cases {
		got := Count(tc.start, tc.end, tc.duration)
		assert.Equalf(t, tc.want, got, "Count(%s, %s, %d)", tc.start, tc.end, tc.duration)
		assert.Lenf(t, Generate(tc.start, tc.end, tc.duration), tc.want,
			"Generate(%s, %s, %d)", tc.start, tc.end, tc.duration)
	}
}

func TestGenerate_StrictlyIncreasing(t *testing.T) {
	slots := Generate("08:00", "20:00", 15)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slot %s must be before %s", slots[i-1], slots[i])
	}
}

func TestSequence_Restartable(t *testing.T) {
	seq := Sequence("09:00", "10:00", 30)

	first := make([]types.TimeString, 0)
	for s := range seq {
		first = append(first, s)
	}

	second := make([]types.TimeString, 0)
	for s := range seq {
		second = append(second, s)
	}

	assert.Equal(t, first, second)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, first)
}

func TestSequence_EarlyBreak(t *testing.T) {
	var got types.TimeString
	for s := range Sequence("09:00", "18:00", 15) {
		got = s
		break
	}
	assert.Equal(t, types.TimeString("09:00"), got)
}
