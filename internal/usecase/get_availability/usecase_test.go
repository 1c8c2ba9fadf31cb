package get_availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/ptr"
	"event-slot-service/pkg/types"
)

type mockEventRepo struct {
	event *domain.Event
	err   error
}

func (m *mockEventRepo) GetByID(_ context.Context, _ int64) (*domain.Event, error) {
	return m.event, m.err
}

type mockDeviceRepo struct {
	devices []*domain.Device
}

func (m *mockDeviceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Device, error) {
	result := make([]*domain.Device, 0, len(ids))
	for _, d := range m.devices {
		for _, id := range ids {
			if d.ID == id {
				result = append(result, d)
			}
		}
	}
	return result, nil
}

type mockBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (m *mockBookingRepo) GetByEventWithFilter(_ context.Context, _ domain.EventBookingsFilter) ([]*domain.Booking, error) {
	m.calls++
	return m.bookings, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:                  1,
		Title:               "Демо-день",
		EventDates:          []types.DateString{"2026-09-10", "2026-09-11"},
		SlotDurationMinutes: 30,
		AvailableSlots:      []types.TimeString{"10:00", "10:30", "11:00"},
		DeviceIDs:           []int64{1, 2},
		Enabled:             true,
	}
}

func testDevices() []*domain.Device {
	return []*domain.Device{
		{ID: 1, Name: "Стенд A"},
		{ID: 2, Name: "Стенд B"},
	}
}

func newUseCase(event *domain.Event, bookings []*domain.Booking) (*UseCase, *mockBookingRepo) {
	br := &mockBookingRepo{bookings: bookings}
	return NewUseCase(&mockEventRepo{event: event}, &mockDeviceRepo{devices: testDevices()}, br, noopLogger{}), br
}

func TestExecute_FullProjection(t *testing.T) {
	bookings := []*domain.Booking{
		{EventID: 1, DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
	}
	uc, br := newUseCase(testEvent(), bookings)

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Демо-день", resp.Title)
	require.Len(t, resp.Dates, 2)
	require.Len(t, resp.Dates[0].Devices, 2)

	// устройство 1 на первую дату без занятого слота
	assert.Equal(t, []string{"10:30", "11:00"}, resp.Dates[0].Devices[0].FreeSlots)
	assert.Equal(t, "Стенд A", resp.Dates[0].Devices[0].DeviceName)
	// устройство 2 не затронуто
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, resp.Dates[0].Devices[1].FreeSlots)

	assert.Equal(t, []string{"2026-09-10", "2026-09-11"}, resp.FeasibleDates)

	// ровно одна выборка бронирований на весь запрос
	assert.Equal(t, 1, br.calls)
}

func TestExecute_FilterByDeviceAndDate(t *testing.T) {
	uc, _ := newUseCase(testEvent(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		EventID:  1,
		DeviceID: ptr.Ptr(int64(2)),
		Date:     ptr.Ptr(types.DateString("2026-09-11")),
	})

	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	assert.Equal(t, "2026-09-11", resp.Dates[0].Date)
	require.Len(t, resp.Dates[0].Devices, 1)
	assert.Equal(t, int64(2), resp.Dates[0].Devices[0].DeviceID)
}

func TestExecute_SelectedSlotsHiddenForOtherDevices(t *testing.T) {
	uc, _ := newUseCase(testEvent(), nil)

	// посетитель уже выбрал 10:30 на устройстве 1
	resp, err := uc.Execute(context.Background(), &Request{
		EventID:  1,
		DeviceID: ptr.Ptr(int64(2)),
		Date:     ptr.Ptr(types.DateString("2026-09-10")),
		Selected: []SelectedSlot{
			{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:30"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, resp.Dates[0].Devices[0].FreeSlots)
}

func TestExecute_FeasibleDatesExcludeFullyBookedDevice(t *testing.T) {
	event := testEvent()
	var bookings []*domain.Booking
	for _, slot := range event.AvailableSlots {
		bookings = append(bookings, &domain.Booking{
			EventID: 1, DeviceID: 2, Date: "2026-09-11", SlotTime: slot,
		})
	}
	uc, _ := newUseCase(event, bookings)

	resp, err := uc.Execute(context.Background(), &Request{EventID: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-10"}, resp.FeasibleDates)
}

func TestExecute_UnknownDevice(t *testing.T) {
	uc, _ := newUseCase(testEvent(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		EventID:  1,
		DeviceID: ptr.Ptr(int64(99)),
	})

	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestExecute_UnknownDate(t *testing.T) {
	uc, _ := newUseCase(testEvent(), nil)

	_, err := uc.Execute(context.Background(), &Request{
		EventID: 1,
		Date:    ptr.Ptr(types.DateString("2026-12-31")),
	})

	assert.ErrorIs(t, err, ErrUnknownDate)
}
