package list_events

import (
	"context"

	"event-slot-service/internal/service/events/models"
)

type EventService interface {
	List(ctx context.Context) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
