package bookings

import (
	"context"
	"errors"
	"fmt"

	"event-slot-service/internal/domain"
	bookingRepo "event-slot-service/internal/infra/storage/booking"
	eventRepo "event-slot-service/internal/infra/storage/event"
	"event-slot-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями (дашборд организатора)
type Service struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
	deviceRepo  DeviceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	deviceRepo DeviceRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		deviceRepo:  deviceRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	names, err := s.deviceNames(ctx, []*domain.Booking{booking})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, names), nil
}

// GetByEvent получает бронирования события с фильтрами дашборда
// (устройство, дата, слот). Ответ обогащается именами устройств.
func (s *Service) GetByEvent(ctx context.Context, req *models.GetEventBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetByEvent: fetching bookings for event=%d", req.EventID)
	if req.DeviceID != nil {
		logMsg += fmt.Sprintf(", device=%d", *req.DeviceID)
	}
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", *req.Date)
	}
	if req.SlotTime != nil {
		logMsg += fmt.Sprintf(", slot=%s", *req.SlotTime)
	}
	s.logger.Info(logMsg)

	// Проверяем существование события, чтобы отличать 404 от пустого списка
	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("GetByEvent: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetByEvent: failed to fetch event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: GetByEvent - fetch event: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByEventWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetByEvent: repository error for event=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: GetByEvent - repository error: %v", ErrInternal, err)
	}

	names, err := s.deviceNames(ctx, bookings)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByEvent: successfully fetched %d bookings for event=%d", len(bookings), req.EventID)
	return models.FromDomainBookingList(bookings, names), nil
}

// Cancel отменяет бронирование. Отмена это физическое удаление строки:
// ячейка (событие, устройство, дата, слот) освобождается немедленно,
// никаких отмененных статусов в хранилище не остается.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// deviceNames собирает имена устройств для набора бронирований
func (s *Service) deviceNames(ctx context.Context, bookings []*domain.Booking) (map[int64]string, error) {
	if len(bookings) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.DeviceID]; ok {
			continue
		}
		seen[b.DeviceID] = struct{}{}
		ids = append(ids, b.DeviceID)
	}

	devices, err := s.deviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("deviceNames: failed to fetch devices: %v", err)
		return nil, fmt.Errorf("%w: deviceNames - fetch devices: %v", ErrInternal, err)
	}

	names := make(map[int64]string, len(devices))
	for _, d := range devices {
		names[d.ID] = d.Name
	}
	return names, nil
}
