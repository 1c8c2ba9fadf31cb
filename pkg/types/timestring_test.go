package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), next)

	// перенос через час
	next, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), next)

	// заворачивание через полночь
	late := TimeString("23:30")
	next, err = late.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), next)
}

func TestTimeString_Ordering(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("09:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	// TIME колонка postgres отдаёт секунды
	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan([]byte("11:45")))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestDateString(t *testing.T) {
	d, err := NewDateStringFromString("2026-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-03", d.String())

	_, err = NewDateStringFromString("03.02.2026")
	assert.ErrorIs(t, err, ErrInvalidDateString)

	parsed, err := d.Time()
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.February, parsed.Month())

	assert.True(t, DateString("2026-02-03").IsBefore(DateString("2026-02-04")))
	assert.False(t, DateString("2026-02-04").IsBefore(DateString("2026-02-03")))
}

func TestDateString_Scan(t *testing.T) {
	var d DateString

	require.NoError(t, d.Scan(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateString("2026-02-03"), d)

	require.NoError(t, d.Scan("2026-02-03T00:00:00Z"))
	assert.Equal(t, DateString("2026-02-03"), d)
}
