package get_event_bookings

import (
	"context"

	"event-slot-service/internal/service/bookings/models"
)

type BookingService interface {
	GetByEvent(ctx context.Context, req *models.GetEventBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
