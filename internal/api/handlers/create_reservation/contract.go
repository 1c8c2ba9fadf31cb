package create_reservation

import (
	"context"

	createReservation "event-slot-service/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// ReservationMetrics счетчик исходов заявок
type ReservationMetrics interface {
	IncReservation(outcome string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
