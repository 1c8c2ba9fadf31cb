package get_availability

import (
	"context"
	"errors"
	"fmt"

	"event-slot-service/internal/domain"
	eventRepo "event-slot-service/internal/infra/storage/event"
	"event-slot-service/internal/service/availability"
	"event-slot-service/pkg/types"
)

// UseCase use case проекции доступности: один снапшот бронирований
// события превращается в свободные слоты по датам и устройствам
type UseCase struct {
	eventRepo   EventRepository
	deviceRepo  DeviceRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	deviceRepo DeviceRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:   eventRepo,
		deviceRepo:  deviceRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case проекции доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем событие с его сеткой слотов
	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("GetAvailability: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("GetAvailability: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	// 3. Проверяем фильтры против события
	if req.DeviceID != nil && !event.HasDevice(*req.DeviceID) {
		uc.logger.Warn("GetAvailability: device id=%d not in event id=%d", *req.DeviceID, req.EventID)
		return nil, ErrUnknownDevice
	}
	if req.Date != nil && !event.HasDate(*req.Date) {
		uc.logger.Warn("GetAvailability: date %s not in event id=%d", *req.Date, req.EventID)
		return nil, ErrUnknownDate
	}

	// 4. ОДНА выборка всех бронирований события; дальше все вычисления
	// в памяти на проекторе
	bookings, err := uc.bookingRepo.GetByEventWithFilter(ctx, domain.EventBookingsFilter{EventID: req.EventID})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	projector := availability.NewProjector(event, bookings)

	// 5. Имена устройств для выдачи
	deviceIDs := event.DeviceIDs
	if req.DeviceID != nil {
		deviceIDs = []int64{*req.DeviceID}
	}
	devices, err := uc.deviceRepo.GetByIDs(ctx, deviceIDs)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get devices: %v", err)
		return nil, fmt.Errorf("%w: failed to get devices: %v", ErrInternal, err)
	}
	names := make(map[int64]string, len(devices))
	for _, d := range devices {
		names[d.ID] = d.Name
	}

	// 6. Собираем выдачу по датам
	dates := event.EventDates
	if req.Date != nil {
		dates = []types.DateString{*req.Date}
	}

	selected := toDomainSelections(req.Selected)

	resp := &Response{
		EventID:             event.ID,
		Title:               event.Title,
		Enabled:             event.Enabled,
		SlotDurationMinutes: event.SlotDurationMinutes,
		Dates:               make([]DateAvailability, 0, len(dates)),
	}

	for _, date := range dates {
		dateAvail := DateAvailability{
			Date:    date.String(),
			Devices: make([]DeviceSlots, 0, len(deviceIDs)),
		}

		for _, deviceID := range deviceIDs {
			free := projector.FreeSlotsExcluding(date, deviceID, selected)

			slots := make([]string, len(free))
			for i, s := range free {
				slots[i] = s.String()
			}

			dateAvail.Devices = append(dateAvail.Devices, DeviceSlots{
				DeviceID:   deviceID,
				DeviceName: names[deviceID],
				FreeSlots:  slots,
			})
		}

		resp.Dates = append(resp.Dates, dateAvail)
	}

	// 7. Даты, доступные для всех устройств события сразу
	feasible := projector.FreeDatesForAllDevices(event.DeviceIDs)
	resp.FeasibleDates = make([]string, len(feasible))
	for i, d := range feasible {
		resp.FeasibleDates[i] = d.String()
	}

	uc.logger.Info("GetAvailability: event=%d, dates=%d, feasible=%d",
		req.EventID, len(resp.Dates), len(resp.FeasibleDates))

	return resp, nil
}

// toDomainSelections конвертирует выбранные ячейки запроса в domain выборы
func toDomainSelections(selected []SelectedSlot) []domain.SlotSelection {
	if len(selected) == 0 {
		return nil
	}

	selections := make([]domain.SlotSelection, len(selected))
	for i, s := range selected {
		selections[i] = domain.SlotSelection{
			DeviceID: s.DeviceID,
			Date:     s.Date,
			SlotTime: s.SlotTime,
		}
	}
	return selections
}
