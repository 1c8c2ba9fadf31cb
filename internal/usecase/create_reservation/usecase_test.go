package create_reservation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
	bookingRepo "event-slot-service/internal/infra/storage/booking"
	"event-slot-service/internal/integrations/notifier"
	"event-slot-service/pkg/types"
)

// Моки

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

func (m *mockDeviceRepo) GetByIDs(_ context.Context, _ []int64) ([]*domain.Device, error) {
	return m.devices, nil
}

type cellKey struct {
	deviceID int64
	date     types.DateString
	slot     types.TimeString
}

// mockBookingRepo хранит существующие бронирования в памяти и
// имитирует уникальный индекс по ячейке
type mockBookingRepo struct {
	existing map[cellKey]*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{existing: make(map[cellKey]*domain.Booking), nextID: 100}
}

func (m *mockBookingRepo) seed(b *domain.Booking) {
	m.existing[cellKey{b.DeviceID, b.Date, b.SlotTime}] = b
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	key := cellKey{booking.DeviceID, booking.Date, booking.SlotTime}
	if _, taken := m.existing[key]; taken {
		return nil, bookingRepo.ErrSlotCellTaken
	}
	m.nextID++
	booking.ID = m.nextID
	m.existing[key] = booking
	m.created = append(m.created, booking)
	return booking, nil
}

func (m *mockBookingRepo) FindByCell(_ context.Context, _, deviceID int64, date types.DateString, slot types.TimeString) (*domain.Booking, error) {
	if b, ok := m.existing[cellKey{deviceID, date, slot}]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) FindByContactAtMoment(_ context.Context, _ int64, date types.DateString, slot types.TimeString, email, phone string) (*domain.Booking, error) {
	for _, b := range m.existing {
		// проверка только по уже существующим до заявки записям
		if contains(m.created, b) {
			continue
		}
		if b.Date == date && b.SlotTime == slot && (b.Email == email || b.Phone == phone) {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func contains(bookings []*domain.Booking, target *domain.Booking) bool {
	for _, b := range bookings {
		if b == target {
			return true
		}
	}
	return false
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []*notifier.ConfirmationMessage
	done chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 1)}
}

func (m *mockNotifier) SendConfirmation(_ context.Context, msg *notifier.ConfirmationMessage) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

// fakeTxManager выполняет функцию напрямую, без БД
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

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

func newUseCase(er *mockEventRepo, br *mockBookingRepo, n *mockNotifier) *UseCase {
	return NewUseCase(er, &mockDeviceRepo{devices: testDevices()}, br, n, fakeTxManager{}, noopLogger{})
}

func validRequest() *Request {
	return &Request{
		EventID: 1,
		Name:    "Иван Иванов",
		Email:   "Ivan@Example.com",
		Phone:   "+79990001122",
		Selections: []SelectionRequest{
			{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
			{DeviceID: 2, Date: "2026-09-10", SlotTime: "10:30"},
		},
	}
}

// Тесты

func TestExecute_CommitsAllBookingsUnderOneCode(t *testing.T) {
	br := newMockBookingRepo()
	n := newMockNotifier()
	uc := newUseCase(&mockEventRepo{event: testEvent()}, br, n)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.NotEmpty(t, resp.ConfirmationCode)
	assert.Equal(t, "Стенд A", resp.Bookings[0].DeviceName)

	// общий код подтверждения и нормализованный email на всех бронированиях
	require.Len(t, br.created, 2)
	assert.Equal(t, br.created[0].ConfirmationCode, br.created[1].ConfirmationCode)
	assert.Equal(t, "ivan@example.com", br.created[0].Email)

	// подтверждение уходит после коммита
	<-n.done
	n.mu.Lock()
	defer n.mu.Unlock()
	require.Len(t, n.sent, 1)
	assert.Len(t, n.sent[0].Bookings, 2)
}

func TestExecute_SamePersonTwoDevicesSameSlot(t *testing.T) {
	// два устройства на один и тот же момент в одной заявке — легально
	br := newMockBookingRepo()
	uc := newUseCase(&mockEventRepo{event: testEvent()}, br, newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
		{DeviceID: 2, Date: "2026-09-10", SlotTime: "10:00"},
	}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestExecute_SlotConflict_NothingCommitted(t *testing.T) {
	br := newMockBookingRepo()
	// вторая ячейка заявки уже занята другим посетителем
	br.seed(&domain.Booking{
		EventID: 1, DeviceID: 2, Date: "2026-09-10", SlotTime: "10:30",
		Email: "other@example.com", Phone: "+70000000000",
	})
	uc := newUseCase(&mockEventRepo{event: testEvent()}, br, newMockNotifier())

	_, err := uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.DeviceID)
	assert.Equal(t, types.TimeString("10:30"), conflict.SlotTime)

	// ни одно бронирование заявки не создано
	assert.Empty(t, br.created)
}

func TestExecute_DuplicatePersonAcrossReservations(t *testing.T) {
	br := newMockBookingRepo()
	// тот же посетитель уже записан на этот момент на другом устройстве
	br.seed(&domain.Booking{
		EventID: 1, DeviceID: 2, Date: "2026-09-10", SlotTime: "10:00",
		Email: "ivan@example.com", Phone: "+79990001122",
	})
	uc := newUseCase(&mockEventRepo{event: testEvent()}, br, newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
	}

	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicatePersonAtSlot)

	var dup *DuplicatePersonError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(2), dup.ConflictingDeviceID)
	assert.Empty(t, br.created)
}

func TestExecute_DuplicatePersonMatchesByPhoneOnly(t *testing.T) {
	br := newMockBookingRepo()
	// другой email, но тот же телефон
	br.seed(&domain.Booking{
		EventID: 1, DeviceID: 2, Date: "2026-09-10", SlotTime: "10:00",
		Email: "someone@example.com", Phone: "+79990001122",
	})
	uc := newUseCase(&mockEventRepo{event: testEvent()}, br, newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
	}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDuplicatePersonAtSlot)
}

func TestExecute_DisabledEventRejectedBeforeSlotChecks(t *testing.T) {
	event := testEvent()
	event.Enabled = false
	br := newMockBookingRepo()
	uc := newUseCase(&mockEventRepo{event: event}, br, newMockNotifier())

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrEventDisabled)
	assert.Empty(t, br.created)
}

func TestExecute_IncompleteSelection(t *testing.T) {
	uc := newUseCase(&mockEventRepo{event: testEvent()}, newMockBookingRepo(), newMockNotifier())

	req := validRequest()
	req.Selections = nil

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestExecute_DuplicateDeviceInReservation(t *testing.T) {
	uc := newUseCase(&mockEventRepo{event: testEvent()}, newMockBookingRepo(), newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:30"},
	}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestExecute_SelectionOutsideGrid(t *testing.T) {
	uc := newUseCase(&mockEventRepo{event: testEvent()}, newMockBookingRepo(), newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "12:45"},
	}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestExecute_UnknownDevice(t *testing.T) {
	uc := newUseCase(&mockEventRepo{event: testEvent()}, newMockBookingRepo(), newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 99, Date: "2026-09-10", SlotTime: "10:00"},
	}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestExecute_SecondReservationOnSameCellRejected(t *testing.T) {
	br := newMockBookingRepo()
	uc := newUseCase(&mockEventRepo{event: testEvent()}, br, newMockNotifier())

	req := validRequest()
	req.Selections = []SelectionRequest{
		{DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
	}

	// первый Execute занимает ячейку
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// второй посетитель на ту же ячейку
	second := validRequest()
	second.Email = "petr@example.com"
	second.Phone = "+71112223344"
	second.Selections = req.Selections

	_, err = uc.Execute(context.Background(), second)

	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}
