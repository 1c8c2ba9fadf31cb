package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
	"event-slot-service/internal/integrations/notifier"
	"event-slot-service/pkg/types"
)

type mockBookingRepo struct {
	bookings []*domain.Booking
}

func (m *mockBookingRepo) GetByDate(_ context.Context, _ types.DateString) ([]*domain.Booking, error) {
	return m.bookings, nil
}

type mockEventRepo struct {
	events map[int64]*domain.Event
}

func (m *mockEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	return m.events[id], nil
}

type mockDeviceRepo struct{}

func (mockDeviceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Device, error) {
	devices := make([]*domain.Device, 0, len(ids))
	for _, id := range ids {
		devices = append(devices, &domain.Device{ID: id, Name: "Стенд"})
	}
	return devices, nil
}

type mockNotifier struct {
	sent []*notifier.DigestMessage
}

func (m *mockNotifier) SendOrganizerDigest(_ context.Context, msg *notifier.DigestMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestDigest_Send_GroupsByEvent(t *testing.T) {
	br := &mockBookingRepo{bookings: []*domain.Booking{
		{EventID: 2, DeviceID: 1, Date: "2026-09-10", SlotTime: "10:00"},
		{EventID: 1, DeviceID: 2, Date: "2026-09-10", SlotTime: "10:30"},
		{EventID: 2, DeviceID: 2, Date: "2026-09-10", SlotTime: "11:00"},
	}}
	er := &mockEventRepo{events: map[int64]*domain.Event{
		1: {ID: 1, Title: "Первое"},
		2: {ID: 2, Title: "Второе"},
	}}
	n := &mockNotifier{}
	d := NewDigest(br, er, mockDeviceRepo{}, n, noopLogger{})

	err := d.Send(context.Background(), "2026-09-10")

	require.NoError(t, err)
	require.Len(t, n.sent, 1)

	msg := n.sent[0]
	assert.Equal(t, 3, msg.Total)
	require.Len(t, msg.Sections, 2)
	// секции отсортированы по ID события
	assert.Equal(t, "Первое", msg.Sections[0].EventTitle)
	assert.Len(t, msg.Sections[1].Bookings, 2)
}

func TestDigest_Send_SkipsEmptyDay(t *testing.T) {
	n := &mockNotifier{}
	d := NewDigest(&mockBookingRepo{}, &mockEventRepo{}, mockDeviceRepo{}, n, noopLogger{})

	err := d.Send(context.Background(), "2026-09-10")

	require.NoError(t, err)
	assert.Empty(t, n.sent)
}
