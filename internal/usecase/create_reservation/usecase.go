package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"event-slot-service/internal/domain"
	bookingRepo "event-slot-service/internal/infra/storage/booking"
	eventRepo "event-slot-service/internal/infra/storage/event"
	"event-slot-service/internal/integrations/notifier"
)

// UseCase use case создания заявки: валидация, проверка конфликтов
// и атомарный коммит всех бронирований заявки
type UseCase struct {
	eventRepo   EventRepository
	deviceRepo  DeviceRepository
	bookingRepo BookingRepository
	notifier    NotifierClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	deviceRepo DeviceRepository,
	bookingRepo BookingRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:   eventRepo,
		deviceRepo:  deviceRepo,
		bookingRepo: bookingRepo,
		notifier:    notifierClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания заявки.
// Все бронирования заявки коммитятся одной сериализуемой транзакцией:
// либо создаются все, либо ни одного. Конкурентные заявки на ту же ячейку
// дополнительно отсекаются уникальным индексом по (событие, устройство,
// дата, слот) — проигравшая транзакция получает конфликт ячейки, не дубль.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: event=%d, email=%s, selections=%d",
		req.EventID, req.Email, len(req.Selections))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем контакты и проверяем полноту заявки
	reservation := req.toDomain()
	if !reservation.IsComplete() {
		uc.logger.Warn("CreateReservation: incomplete reservation for event=%d", req.EventID)
		return nil, ErrIncompleteSelection
	}

	// 3. Получаем событие
	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("CreateReservation: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateReservation: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	// 4. Гейт выключенного события: до любых проверок слотов.
	// Заявка по выключенному событию отклоняется целиком, даже если
	// все выбранные ячейки свободны.
	if !event.Enabled {
		uc.logger.Warn("CreateReservation: event id=%d is disabled", req.EventID)
		return nil, ErrEventDisabled
	}

	// 5. Проверяем принадлежность каждого выбора сетке события
	if err := validateSelections(event, reservation.Selections); err != nil {
		uc.logger.Warn("CreateReservation: selection validation failed: %v", err)
		return nil, err
	}

	// 6. Имена устройств для ответа и уведомления
	deviceNames, err := uc.deviceNames(ctx, reservation.Selections)
	if err != nil {
		return nil, err
	}

	confirmationCode := uuid.New()
	var created []*domain.Booking

	// 7. Коммит в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		// 7.1. Перечитываем событие с блокировкой (FOR UPDATE) и повторяем
		// гейт: между шагом 3 и транзакцией организатор мог выключить событие
		txEvent, err := uc.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}
		if !txEvent.Enabled {
			return ErrEventDisabled
		}

		// 7.2. Проверка занятости каждой выбранной ячейки
		for _, sel := range reservation.Selections {
			_, err := uc.bookingRepo.FindByCell(txCtx, req.EventID, sel.DeviceID, sel.Date, sel.SlotTime)
			if err == nil {
				return &SlotConflictError{DeviceID: sel.DeviceID, Date: sel.Date, SlotTime: sel.SlotTime}
			}
			if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: failed to check cell: %v", ErrInternal, err)
			}
		}

		// 7.3. Проверка "один человек — один момент" по уже СУЩЕСТВУЮЩИМ
		// бронированиям. Выборы внутри самой заявки на один момент легальны:
		// посетитель бронирует несколько устройств одной записью.
		for _, moment := range reservation.DistinctMoments() {
			existing, err := uc.bookingRepo.FindByContactAtMoment(
				txCtx, req.EventID, moment.Date, moment.SlotTime,
				reservation.Contact.Email, reservation.Contact.Phone,
			)
			if err == nil {
				return &DuplicatePersonError{
					Date:                moment.Date,
					SlotTime:            moment.SlotTime,
					ConflictingDeviceID: existing.DeviceID,
				}
			}
			if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: failed to check duplicate person: %v", ErrInternal, err)
			}
		}

		// 7.4. Создаем бронирования, по одному на выбор, под общим кодом.
		// Уникальный индекс ловит гонку, которую пропустила проверка 7.2.
		for _, sel := range reservation.Selections {
			booking := &domain.Booking{
				EventID:          req.EventID,
				DeviceID:         sel.DeviceID,
				Date:             sel.Date,
				SlotTime:         sel.SlotTime,
				Name:             reservation.Contact.Name,
				Email:            reservation.Contact.Email,
				Phone:            reservation.Contact.Phone,
				Note:             reservation.Contact.Note,
				ConfirmationCode: confirmationCode,
			}

			saved, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrSlotCellTaken) {
					return &SlotConflictError{DeviceID: sel.DeviceID, Date: sel.Date, SlotTime: sel.SlotTime}
				}
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}

			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: committed %d bookings for event=%d, code=%s",
		len(created), req.EventID, confirmationCode)

	// 8. Уведомление после коммита: сбой доставки не откатывает заявку
	uc.notifyAsync(ctx, event, reservation, created, deviceNames, confirmationCode)

	return buildResponse(req.EventID, created, deviceNames, confirmationCode), nil
}

// deviceNames собирает имена устройств заявки
func (uc *UseCase) deviceNames(ctx context.Context, selections []domain.SlotSelection) (map[int64]string, error) {
	ids := make([]int64, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.DeviceID)
	}

	devices, err := uc.deviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get devices: %v", err)
		return nil, fmt.Errorf("%w: failed to get devices: %v", ErrInternal, err)
	}

	names := make(map[int64]string, len(devices))
	for _, d := range devices {
		names[d.ID] = d.Name
	}
	return names, nil
}

// notifyAsync отправляет подтверждение в фоне. Контекст запроса к этому
// моменту может быть отменен, поэтому берем его без отмены.
func (uc *UseCase) notifyAsync(
	ctx context.Context,
	event *domain.Event,
	reservation *domain.Reservation,
	created []*domain.Booking,
	deviceNames map[int64]string,
	code uuid.UUID,
) {
	lines := make([]notifier.BookingLine, 0, len(created))
	for _, b := range created {
		lines = append(lines, notifier.BookingLine{
			DeviceID:   b.DeviceID,
			DeviceName: deviceNames[b.DeviceID],
			Date:       b.Date,
			SlotTime:   b.SlotTime,
		})
	}

	msg := &notifier.ConfirmationMessage{
		EventTitle:          event.Title,
		Name:                reservation.Contact.Name,
		Email:               reservation.Contact.Email,
		Phone:               reservation.Contact.Phone,
		ConfirmationCode:    code.String(),
		SlotDurationMinutes: event.SlotDurationMinutes,
		Bookings:            lines,
	}

	sendCtx := context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(sendCtx, 10*time.Second)
		defer cancel()

		if err := uc.notifier.SendConfirmation(sendCtx, msg); err != nil {
			uc.logger.Error("CreateReservation: failed to send confirmation code=%s: %v", code, err)
		}
	}()
}

// buildResponse конвертирует созданные бронирования в response
func buildResponse(eventID int64, created []*domain.Booking, deviceNames map[int64]string, code uuid.UUID) *Response {
	results := make([]BookingResult, 0, len(created))
	var createdAt time.Time

	for _, b := range created {
		results = append(results, BookingResult{
			ID:         b.ID,
			DeviceID:   b.DeviceID,
			DeviceName: deviceNames[b.DeviceID],
			Date:       b.Date.String(),
			SlotTime:   b.SlotTime.String(),
		})
		createdAt = b.CreatedAt
	}

	return &Response{
		EventID:          eventID,
		ConfirmationCode: code.String(),
		Bookings:         results,
		CreatedAt:        createdAt,
	}
}
