package set_event_enabled

import "context"

type EventService interface {
	SetEnabled(ctx context.Context, id int64, enabled bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
