package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
	eventRepo "event-slot-service/internal/infra/storage/event"
	"event-slot-service/internal/service/events/models"
	"event-slot-service/pkg/types"
)

// Моки репозиториев

type mockEventRepo struct {
	created      *domain.Event
	getResult    *domain.Event
	getErr       error
	deleteErr    error
	deletedID    int64
	updateCalled bool
}

func (m *mockEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	event.ID = 1
	m.created = event
	return event, nil
}

func (m *mockEventRepo) GetByID(_ context.Context, _ int64) (*domain.Event, error) {
	return m.getResult, m.getErr
}

func (m *mockEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	return []*domain.Event{m.getResult}, nil
}

func (m *mockEventRepo) Update(_ context.Context, _ *domain.Event) error {
	m.updateCalled = true
	return nil
}

func (m *mockEventRepo) SetEnabled(_ context.Context, _ int64, _ bool) error {
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id int64) error {
	m.deletedID = id
	return m.deleteErr
}

type mockDeviceRepo struct {
	devices []*domain.Device
	err     error
}

func (m *mockDeviceRepo) GetByIDs(_ context.Context, _ []int64) ([]*domain.Device, error) {
	return m.devices, m.err
}

type mockBookingRepo struct {
	deletedForEvent int64
	deletedCount    int64
	err             error
}

func (m *mockBookingRepo) DeleteByEventID(_ context.Context, eventID int64) (int64, error) {
	m.deletedForEvent = eventID
	return m.deletedCount, m.err
}

// fakeTxManager выполняет функцию напрямую, без БД
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(er *mockEventRepo, dr *mockDeviceRepo, br *mockBookingRepo) *Service {
	return NewService(er, dr, br, fakeTxManager{}, noopLogger{})
}

func validCreateRequest() *models.CreateEventRequest {
	return &models.CreateEventRequest{
		Title:               "Демо-день",
		EventDates:          []types.DateString{"2026-09-10", "2026-09-11"},
		StartTime:           "10:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
		DeviceIDs:           []int64{1, 2},
	}
}

func twoDevices() []*domain.Device {
	return []*domain.Device{
		{ID: 1, Name: "Стенд A"},
		{ID: 2, Name: "Стенд B"},
	}
}

func TestService_Create_DerivesSlotGrid(t *testing.T) {
	er := &mockEventRepo{}
	s := newService(er, &mockDeviceRepo{devices: twoDevices()}, &mockBookingRepo{})

	resp, err := s.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, resp.AvailableSlots)
	assert.True(t, resp.Enabled)
	require.NotNil(t, er.created)
	assert.Len(t, er.created.AvailableSlots, 4)
}

func TestService_Create_EmptyGrid(t *testing.T) {
	s := newService(&mockEventRepo{}, &mockDeviceRepo{devices: twoDevices()}, &mockBookingRepo{})

	req := validCreateRequest()
	req.StartTime = "10:00"
	req.EndTime = "10:00"

	_, err := s.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrEmptySlotGrid)
}

func TestService_Create_DuplicateDates(t *testing.T) {
	s := newService(&mockEventRepo{}, &mockDeviceRepo{devices: twoDevices()}, &mockBookingRepo{})

	req := validCreateRequest()
	req.EventDates = []types.DateString{"2026-09-10", "2026-09-10"}

	_, err := s.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestService_Create_UnknownDevice(t *testing.T) {
	// репозиторий вернул меньше устройств, чем запрошено
	s := newService(&mockEventRepo{}, &mockDeviceRepo{devices: twoDevices()[:1]}, &mockBookingRepo{})

	_, err := s.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestService_Create_InvalidDuration(t *testing.T) {
	s := newService(&mockEventRepo{}, &mockDeviceRepo{devices: twoDevices()}, &mockBookingRepo{})

	req := validCreateRequest()
	req.SlotDurationMinutes = 0

	_, err := s.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestService_Delete_CascadesBookings(t *testing.T) {
	er := &mockEventRepo{}
	br := &mockBookingRepo{deletedCount: 3}
	s := newService(er, &mockDeviceRepo{}, br)

	err := s.Delete(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), br.deletedForEvent)
	assert.Equal(t, int64(42), er.deletedID)
}

func TestService_Delete_NotFound(t *testing.T) {
	er := &mockEventRepo{deleteErr: eventRepo.ErrEventNotFound}
	s := newService(er, &mockDeviceRepo{}, &mockBookingRepo{})

	err := s.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_Delete_BookingCascadeFails(t *testing.T) {
	br := &mockBookingRepo{err: errors.New("db down")}
	er := &mockEventRepo{}
	s := newService(er, &mockDeviceRepo{}, br)

	err := s.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, ErrInternal)
	// событие не должно удаляться, если каскад бронирований упал
	assert.Zero(t, er.deletedID)
}

func TestService_Update_DoesNotTouchSlotGrid(t *testing.T) {
	event := &domain.Event{
		ID:                  1,
		Title:               "Старое название",
		EventDates:          []types.DateString{"2026-09-10"},
		SlotDurationMinutes: 30,
		AvailableSlots:      []types.TimeString{"10:00", "10:30"},
		DeviceIDs:           []int64{1},
		Enabled:             true,
	}
	er := &mockEventRepo{getResult: event}
	s := newService(er, &mockDeviceRepo{devices: twoDevices()}, &mockBookingRepo{})

	newTitle := "Новое название"
	resp, err := s.Update(context.Background(), 1, &models.UpdateEventRequest{Title: &newTitle})

	require.NoError(t, err)
	assert.True(t, er.updateCalled)
	assert.Equal(t, "Новое название", resp.Title)
	assert.Equal(t, []string{"10:00", "10:30"}, resp.AvailableSlots)
}
