package events

import (
	"context"
	"errors"
	"fmt"

	"event-slot-service/internal/domain"
	eventRepo "event-slot-service/internal/infra/storage/event"
	"event-slot-service/internal/service/events/models"
	"event-slot-service/pkg/slotgrid"
	"event-slot-service/pkg/types"
)

// Service сервис для работы с событиями
type Service struct {
	eventRepo   EventRepository
	deviceRepo  DeviceRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(
	eventRepo EventRepository,
	deviceRepo DeviceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:   eventRepo,
		deviceRepo:  deviceRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает событие и один раз выводит сетку слотов из окна времени.
// Сетка сохраняется вместе с событием: дальше все проверки доступности
// работают по сохраненному списку, без повторной генерации.
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: creating event title=%q, dates=%d, devices=%d",
		req.Title, len(req.EventDates), len(req.DeviceIDs))

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed for title=%q: %v", req.Title, err)
		return nil, err
	}

	// Проверяем, что все устройства существуют
	devices, err := s.deviceRepo.GetByIDs(ctx, req.DeviceIDs)
	if err != nil {
		s.logger.Error("Create: failed to fetch devices: %v", err)
		return nil, fmt.Errorf("%w: Create - fetch devices: %v", ErrInternal, err)
	}
	if len(devices) != len(req.DeviceIDs) {
		s.logger.Warn("Create: unknown device in list %v", req.DeviceIDs)
		return nil, ErrDeviceNotFound
	}

	// start >= end дает пустую сетку, отдельная проверка порядка не нужна
	slots := slotgrid.Generate(req.StartTime, req.EndTime, req.SlotDurationMinutes)
	if len(slots) == 0 {
		s.logger.Warn("Create: window %s-%s with duration=%d produces no slots",
			req.StartTime, req.EndTime, req.SlotDurationMinutes)
		return nil, ErrEmptySlotGrid
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	event := &domain.Event{
		Title:               req.Title,
		Description:         req.Description,
		EventDates:          req.EventDates,
		SlotDurationMinutes: req.SlotDurationMinutes,
		AvailableSlots:      slots,
		DeviceIDs:           req.DeviceIDs,
		Enabled:             enabled,
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		s.logger.Error("Create: repository error for title=%q: %v", req.Title, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created event id=%d with %d slots", created.ID, len(slots))
	return models.FromDomainEvent(created), nil
}

// GetByID получает событие по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("GetByID: event id=%d not found", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetByID: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEvent(event), nil
}

// List получает все события
func (s *Service) List(ctx context.Context) (*models.EventListResponse, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventList(events), nil
}

// Update обновляет событие. Сетка слотов не пересчитывается:
// существующие бронирования привязаны к её ячейкам.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Update: updating event id=%d", id)

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("Update: event id=%d not found", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("Update: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > domain.MaxTitleLength {
			return nil, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxTitleLength)
		}
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.EventDates != nil {
		if err := validateDates(req.EventDates); err != nil {
			s.logger.Warn("Update: invalid dates for event id=%d: %v", id, err)
			return nil, err
		}
		event.EventDates = req.EventDates
	}
	if req.DeviceIDs != nil {
		devices, err := s.deviceRepo.GetByIDs(ctx, req.DeviceIDs)
		if err != nil {
			s.logger.Error("Update: failed to fetch devices: %v", err)
			return nil, fmt.Errorf("%w: Update - fetch devices: %v", ErrInternal, err)
		}
		if len(devices) != len(req.DeviceIDs) {
			s.logger.Warn("Update: unknown device in list %v", req.DeviceIDs)
			return nil, ErrDeviceNotFound
		}
		event.DeviceIDs = req.DeviceIDs
	}
	if req.Enabled != nil {
		event.Enabled = *req.Enabled
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("Update: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated event id=%d", id)
	return models.FromDomainEvent(event), nil
}

// SetEnabled включает или выключает прием бронирований по событию
func (s *Service) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	s.logger.Info("SetEnabled: setting event id=%d enabled=%t", id, enabled)

	if err := s.eventRepo.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("SetEnabled: event id=%d not found", id)
			return ErrEventNotFound
		}
		s.logger.Error("SetEnabled: repository error for event id=%d: %v", id, err)
		return fmt.Errorf("%w: SetEnabled - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет событие вместе с его бронированиями.
// Каскад выполняется явно на стороне вызывающего кода, одной транзакцией:
// сперва бронирования события, затем само событие.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting event id=%d with bookings", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		deleted, err := s.bookingRepo.DeleteByEventID(ctx, id)
		if err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		s.logger.Info("Delete: removed %d bookings of event id=%d", deleted, id)

		return s.eventRepo.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("Delete: event id=%d not found", id)
			return ErrEventNotFound
		}
		s.logger.Error("Delete: failed to delete event id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted event id=%d", id)
	return nil
}

// validateCreate проверяет запрос на создание события
func (s *Service) validateCreate(req *models.CreateEventRequest) error {
	if req.Title == "" || len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if err := validateDates(req.EventDates); err != nil {
		return err
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidTimeWindow, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidTimeWindow, err)
	}
	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be %d-%d minutes",
			ErrInvalidDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if len(req.DeviceIDs) == 0 {
		return fmt.Errorf("%w: at least one device is required", ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(req.DeviceIDs))
	for _, id := range req.DeviceIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate device id=%d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// validateDates проверяет список дат события: непустой, без дубликатов,
// каждая дата в формате YYYY-MM-DD
func validateDates(dates []types.DateString) error {
	if len(dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidDates)
	}

	seen := make(map[types.DateString]struct{}, len(dates))
	for _, date := range dates {
		if err := date.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDates, err)
		}
		if _, ok := seen[date]; ok {
			return fmt.Errorf("%w: duplicate date %s", ErrInvalidDates, date)
		}
		seen[date] = struct{}{}
	}

	return nil
}
