package models

import (
	"time"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/types"
)

// Request модели

// GetEventBookingsRequest запрос бронирований события с фильтрами дашборда
type GetEventBookingsRequest struct {
	EventID  int64             `json:"eventId"`
	DeviceID *int64            `json:"deviceId,omitempty"`
	Date     *types.DateString `json:"date,omitempty"`
	SlotTime *types.TimeString `json:"slotTime,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetEventBookingsRequest) ToDomainFilter() domain.EventBookingsFilter {
	return domain.EventBookingsFilter{
		EventID:  r.EventID,
		DeviceID: r.DeviceID,
		Date:     r.Date,
		SlotTime: r.SlotTime,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"eventId"`
	DeviceID         int64     `json:"deviceId"`
	DeviceName       string    `json:"deviceName,omitempty"`
	Date             string    `json:"date"`     // "2026-09-10"
	SlotTime         string    `json:"slotTime"` // "10:00"
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Note             *string   `json:"note,omitempty"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// deviceNames обогащает ответ именами устройств, может быть nil.
func FromDomainBooking(b *domain.Booking, deviceNames map[int64]string) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		EventID:          b.EventID,
		DeviceID:         b.DeviceID,
		DeviceName:       deviceNames[b.DeviceID],
		Date:             b.Date.String(),
		SlotTime:         b.SlotTime.String(),
		Name:             b.Name,
		Email:            b.Email,
		Phone:            b.Phone,
		Note:             b.Note,
		ConfirmationCode: b.ConfirmationCode.String(),
		CreatedAt:        b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, deviceNames map[int64]string) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, deviceNames); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
