package create_reservation

import (
	"time"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/types"
)

// SelectionRequest выбранная ячейка: устройство, дата, слот
type SelectionRequest struct {
	DeviceID int64            `json:"deviceId"`
	Date     types.DateString `json:"date"`
	SlotTime types.TimeString `json:"slotTime"`
}

// Request запрос на создание заявки
type Request struct {
	EventID    int64              `json:"eventId"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Note       *string            `json:"note,omitempty"`
	Selections []SelectionRequest `json:"selections"`
}

// toDomain конвертирует запрос в domain заявку с нормализацией контактов
func (r *Request) toDomain() *domain.Reservation {
	selections := make([]domain.SlotSelection, len(r.Selections))
	for i, sel := range r.Selections {
		selections[i] = domain.SlotSelection{
			DeviceID: sel.DeviceID,
			Date:     sel.Date,
			SlotTime: sel.SlotTime,
		}
	}

	return &domain.Reservation{
		EventID: r.EventID,
		Contact: domain.Contact{
			Name:  r.Name,
			Email: r.Email,
			Phone: r.Phone,
			Note:  r.Note,
		}.Normalized(),
		Selections: selections,
	}
}

// BookingResult одно созданное бронирование в составе заявки
type BookingResult struct {
	ID         int64  `json:"id"`
	DeviceID   int64  `json:"deviceId"`
	DeviceName string `json:"deviceName"`
	Date       string `json:"date"`
	SlotTime   string `json:"slotTime"`
}

// Response результат заявки: все бронирования созданы атомарно,
// под одним кодом подтверждения
type Response struct {
	EventID          int64           `json:"eventId"`
	ConfirmationCode string          `json:"confirmationCode"`
	Bookings         []BookingResult `json:"bookings"`
	CreatedAt        time.Time       `json:"createdAt"`
}
