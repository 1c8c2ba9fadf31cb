package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
	bookingRepo "event-slot-service/internal/infra/storage/booking"
	eventRepo "event-slot-service/internal/infra/storage/event"
	"event-slot-service/internal/service/bookings/models"
	"event-slot-service/pkg/ptr"
	"event-slot-service/pkg/types"
)

type mockBookingRepo struct {
	bookings  []*domain.Booking
	gotFilter domain.EventBookingsFilter
	deleted   []int64
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByEventWithFilter(_ context.Context, filter domain.EventBookingsFilter) ([]*domain.Booking, error) {
	m.gotFilter = filter
	return m.bookings, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id int64) error {
	for i, b := range m.bookings {
		if b.ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

type mockEventRepo struct {
	events map[int64]*domain.Event
}

func (m *mockEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	return event, nil
}

type mockDeviceRepo struct{}

func (mockDeviceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Device, error) {
	devices := make([]*domain.Device, 0, len(ids))
	for _, id := range ids {
		devices = append(devices, &domain.Device{ID: id, Name: "Стенд"})
	}
	return devices, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(br *mockBookingRepo, er *mockEventRepo) *Service {
	return NewService(br, er, mockDeviceRepo{}, noopLogger{})
}

func TestGetByEvent_PassesFiltersAndEnrichesDeviceNames(t *testing.T) {
	br := &mockBookingRepo{bookings: []*domain.Booking{
		{ID: 1, EventID: 7, DeviceID: 2, Date: "2026-09-10", SlotTime: "10:00"},
	}}
	er := &mockEventRepo{events: map[int64]*domain.Event{7: {ID: 7}}}
	svc := newService(br, er)

	deviceID := int64(2)
	resp, err := svc.GetByEvent(context.Background(), &models.GetEventBookingsRequest{
		EventID:  7,
		DeviceID: &deviceID,
		Date:     ptr.Ptr(types.DateString("2026-09-10")),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Стенд", resp.Bookings[0].DeviceName)
	assert.Equal(t, int64(7), br.gotFilter.EventID)
	require.NotNil(t, br.gotFilter.DeviceID)
	assert.Equal(t, int64(2), *br.gotFilter.DeviceID)
}

func TestGetByEvent_EventNotFound(t *testing.T) {
	svc := newService(&mockBookingRepo{}, &mockEventRepo{events: map[int64]*domain.Event{}})

	_, err := svc.GetByEvent(context.Background(), &models.GetEventBookingsRequest{EventID: 99})

	// несуществующее событие отличаем от пустого списка
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetByEvent_EmptyList(t *testing.T) {
	er := &mockEventRepo{events: map[int64]*domain.Event{7: {ID: 7}}}
	svc := newService(&mockBookingRepo{}, er)

	resp, err := svc.GetByEvent(context.Background(), &models.GetEventBookingsRequest{EventID: 7})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestCancel_DeletesRow(t *testing.T) {
	br := &mockBookingRepo{bookings: []*domain.Booking{
		{ID: 1, EventID: 7, DeviceID: 2, Date: "2026-09-10", SlotTime: "10:00"},
	}}
	svc := newService(br, &mockEventRepo{})

	err := svc.Cancel(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, br.deleted)
	assert.Empty(t, br.bookings)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(&mockBookingRepo{}, &mockEventRepo{})

	err := svc.Cancel(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
