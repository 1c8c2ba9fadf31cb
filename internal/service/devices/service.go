package devices

import (
	"context"
	"errors"
	"fmt"

	"event-slot-service/internal/domain"
	deviceRepo "event-slot-service/internal/infra/storage/device"
	"event-slot-service/internal/service/devices/models"
	"event-slot-service/pkg/types"
)

// Service сервис для работы с устройствами
type Service struct {
	deviceRepo   DeviceRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса устройств
func NewService(
	deviceRepo DeviceRepository,
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		deviceRepo:   deviceRepo,
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает новое устройство
func (s *Service) Create(ctx context.Context, req *models.CreateDeviceRequest) (*models.DeviceResponse, error) {
	s.logger.Info("Create: creating device name=%q", req.Name)

	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		s.logger.Warn("Create: invalid device name=%q", req.Name)
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	device := &domain.Device{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
	}

	created, err := s.deviceRepo.Create(ctx, device)
	if err != nil {
		s.logger.Error("Create: repository error for name=%q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created device id=%d", created.ID)
	return models.FromDomainDevice(created), nil
}

// GetByID получает устройство по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DeviceResponse, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, deviceRepo.ErrDeviceNotFound) {
			s.logger.Warn("GetByID: device id=%d not found", id)
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("GetByID: repository error for device id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDevice(device), nil
}

// List получает все устройства
func (s *Service) List(ctx context.Context) (*models.DeviceListResponse, error) {
	devices, err := s.deviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDeviceList(devices), nil
}

// Update обновляет устройство
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateDeviceRequest) (*models.DeviceResponse, error) {
	s.logger.Info("Update: updating device id=%d", id)

	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, deviceRepo.ErrDeviceNotFound) {
			s.logger.Warn("Update: device id=%d not found", id)
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("Update: repository error for device id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > domain.MaxNameLength {
			return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxNameLength)
		}
		device.Name = *req.Name
	}
	if req.Description != nil {
		device.Description = req.Description
	}
	if req.ImageURL != nil {
		device.ImageURL = req.ImageURL
	}
	if req.LinkURL != nil {
		device.LinkURL = req.LinkURL
	}

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		if errors.Is(err, deviceRepo.ErrDeviceNotFound) {
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("Update: repository error for device id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated device id=%d", id)
	return models.FromDomainDevice(device), nil
}

// Delete удаляет устройство. Устройство с предстоящими бронированиями
// удалить нельзя: сперва организатор должен отменить или дождаться их.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting device id=%d", id)

	today := types.NewDateString(s.timeProvider.Now())
	upcoming, err := s.bookingRepo.CountByDeviceFrom(ctx, id, today)
	if err != nil {
		s.logger.Error("Delete: failed to count bookings for device id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - count bookings: %v", ErrInternal, err)
	}
	if upcoming > 0 {
		s.logger.Warn("Delete: device id=%d has %d upcoming bookings", id, upcoming)
		return ErrDeviceInUse
	}

	if err := s.deviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, deviceRepo.ErrDeviceNotFound) {
			s.logger.Warn("Delete: device id=%d not found", id)
			return ErrDeviceNotFound
		}
		s.logger.Error("Delete: repository error for device id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted device id=%d", id)
	return nil
}
