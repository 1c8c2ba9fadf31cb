package devices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-slot-service/internal/domain"
	deviceRepo "event-slot-service/internal/infra/storage/device"
	"event-slot-service/internal/service/devices/models"
	"event-slot-service/pkg/ptr"
	"event-slot-service/pkg/types"
)

type mockDeviceRepo struct {
	devices map[int64]*domain.Device
	deleted []int64
}

func (m *mockDeviceRepo) Create(_ context.Context, device *domain.Device) (*domain.Device, error) {
	device.ID = int64(len(m.devices) + 1)
	return device, nil
}

func (m *mockDeviceRepo) GetByID(_ context.Context, id int64) (*domain.Device, error) {
	device, ok := m.devices[id]
	if !ok {
		return nil, deviceRepo.ErrDeviceNotFound
	}
	return device, nil
}

func (m *mockDeviceRepo) List(_ context.Context) ([]*domain.Device, error) {
	return nil, nil
}

func (m *mockDeviceRepo) Update(_ context.Context, device *domain.Device) error {
	if _, ok := m.devices[device.ID]; !ok {
		return deviceRepo.ErrDeviceNotFound
	}
	m.devices[device.ID] = device
	return nil
}

func (m *mockDeviceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.devices[id]; !ok {
		return deviceRepo.ErrDeviceNotFound
	}
	delete(m.devices, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockBookingRepo struct {
	upcoming map[int64]int
	gotFrom  types.DateString
}

func (m *mockBookingRepo) CountByDeviceFrom(_ context.Context, deviceID int64, from types.DateString) (int, error) {
	m.gotFrom = from
	return m.upcoming[deviceID], nil
}

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time {
	return time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(dr *mockDeviceRepo, br *mockBookingRepo) *Service {
	return NewService(dr, br, fixedTimeProvider{}, noopLogger{})
}

func TestDelete_RejectedWhileUpcomingBookingsExist(t *testing.T) {
	dr := &mockDeviceRepo{devices: map[int64]*domain.Device{5: {ID: 5, Name: "Стенд VR"}}}
	br := &mockBookingRepo{upcoming: map[int64]int{5: 2}}
	svc := newService(dr, br)

	err := svc.Delete(context.Background(), 5)

	assert.ErrorIs(t, err, ErrDeviceInUse)
	assert.Empty(t, dr.deleted)
	// предстоящие считаются от сегодняшней даты
	assert.Equal(t, types.DateString("2026-09-05"), br.gotFrom)
}

func TestDelete_AllowedWhenBookingsArePast(t *testing.T) {
	dr := &mockDeviceRepo{devices: map[int64]*domain.Device{5: {ID: 5, Name: "Стенд VR"}}}
	br := &mockBookingRepo{}
	svc := newService(dr, br)

	err := svc.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, dr.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(&mockDeviceRepo{devices: map[int64]*domain.Device{}}, &mockBookingRepo{})

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestCreate_EmptyName(t *testing.T) {
	svc := newService(&mockDeviceRepo{devices: map[int64]*domain.Device{}}, &mockBookingRepo{})

	_, err := svc.Create(context.Background(), &models.CreateDeviceRequest{Name: ""})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialFields(t *testing.T) {
	dr := &mockDeviceRepo{devices: map[int64]*domain.Device{
		5: {ID: 5, Name: "Стенд VR", Description: ptr.Ptr("старое описание")},
	}}
	svc := newService(dr, &mockBookingRepo{})

	resp, err := svc.Update(context.Background(), 5, &models.UpdateDeviceRequest{
		Name: ptr.Ptr("Стенд AR"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Стенд AR", resp.Name)
	// непереданные поля не трогаем
	require.NotNil(t, resp.Description)
	assert.Equal(t, "старое описание", *resp.Description)
}
