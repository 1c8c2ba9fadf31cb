package create_reservation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	createReservation "event-slot-service/internal/usecase/create_reservation"
	"event-slot-service/pkg/metrics"
)

const (
	msgInvalidEventID      = "некорректный ID события"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgEventNotFound       = "событие не найдено"
	msgEventDisabled       = "запись на событие закрыта"
	msgIncompleteSelection = "заявка заполнена не полностью"
	msgInvalidSelection    = "выбранная ячейка не относится к событию"
	msgUnknownDevice       = "устройство не относится к событию"
	msgSlotAlreadyBooked   = "выбранный слот уже занят"
	msgDuplicatePerson     = "вы уже записаны на это время"
	msgInvalidInput        = "некорректные данные заявки"
)

type Handler struct {
	useCase CreateReservationUseCase
	metrics ReservationMetrics
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, m ReservationMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/{eventId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /events/{eventId}/reservations - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req createReservation.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/{eventId}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.EventID = eventID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrEventNotFound):
			h.metrics.IncReservation(metrics.OutcomeRejected)
			h.logger.Warn("POST /events/{eventId}/reservations - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createReservation.ErrEventDisabled):
			h.metrics.IncReservation(metrics.OutcomeEventDisabled)
			h.logger.Warn("POST /events/{eventId}/reservations - Event disabled: event_id=%d", eventID)
			handlers.RespondError(w, http.StatusForbidden, msgEventDisabled)

		case errors.Is(err, createReservation.ErrIncompleteSelection):
			h.metrics.IncReservation(metrics.OutcomeRejected)
			h.logger.Warn("POST /events/{eventId}/reservations - Incomplete: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgIncompleteSelection)

		case errors.Is(err, createReservation.ErrUnknownDevice):
			h.metrics.IncReservation(metrics.OutcomeRejected)
			h.logger.Warn("POST /events/{eventId}/reservations - Unknown device: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgUnknownDevice)

		case errors.Is(err, createReservation.ErrInvalidSelection):
			h.metrics.IncReservation(metrics.OutcomeRejected)
			h.logger.Warn("POST /events/{eventId}/reservations - Invalid selection: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, createReservation.ErrSlotAlreadyBooked):
			h.metrics.IncReservation(metrics.OutcomeSlotConflict)
			h.logger.Warn("POST /events/{eventId}/reservations - Slot conflict: event_id=%d, error=%v", eventID, err)
			handlers.RespondError(w, http.StatusConflict, conflictMessage(err))

		case errors.Is(err, createReservation.ErrDuplicatePersonAtSlot):
			h.metrics.IncReservation(metrics.OutcomeDuplicatePerson)
			h.logger.Warn("POST /events/{eventId}/reservations - Duplicate person: event_id=%d, error=%v", eventID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDuplicatePerson)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.metrics.IncReservation(metrics.OutcomeRejected)
			h.logger.Warn("POST /events/{eventId}/reservations - Invalid input: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.metrics.IncReservation(metrics.OutcomeError)
			h.logger.Error("POST /events/{eventId}/reservations - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncReservation(metrics.OutcomeCommitted)
	h.logger.Info("POST /events/{eventId}/reservations - Reservation committed: event_id=%d, bookings=%d, code=%s",
		eventID, len(result.Bookings), result.ConfirmationCode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// conflictMessage уточняет сообщение координатами занятой ячейки
func conflictMessage(err error) string {
	var conflict *createReservation.SlotConflictError
	if errors.As(err, &conflict) {
		return fmt.Sprintf("%s: устройство %d, %s %s",
			msgSlotAlreadyBooked, conflict.DeviceID, conflict.Date, conflict.SlotTime)
	}
	return msgSlotAlreadyBooked
}
