package models

import (
	"time"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/types"
)

// Request модели

// CreateEventRequest запрос на создание события
type CreateEventRequest struct {
	Title               string             `json:"title"`
	Description         *string            `json:"description,omitempty"`
	EventDates          []types.DateString `json:"eventDates"`
	StartTime           types.TimeString   `json:"startTime"`
	EndTime             types.TimeString   `json:"endTime"`
	SlotDurationMinutes int                `json:"slotDurationMinutes"`
	DeviceIDs           []int64            `json:"deviceIds"`
	Enabled             *bool              `json:"enabled,omitempty"`
}

// UpdateEventRequest запрос на обновление события.
// Сетка слотов при обновлении не пересчитывается: она зафиксирована
// при создании, и существующие бронирования ссылаются на её ячейки.
type UpdateEventRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	EventDates  []types.DateString `json:"eventDates,omitempty"`
	DeviceIDs   []int64            `json:"deviceIds,omitempty"`
	Enabled     *bool              `json:"enabled,omitempty"`
}

// Response модели

// EventResponse ответ с данными события
type EventResponse struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description,omitempty"`
	EventDates          []string  `json:"eventDates"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	AvailableSlots      []string  `json:"availableSlots"`
	DeviceIDs           []int64   `json:"deviceIds"`
	Enabled             bool      `json:"enabled"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// Методы конвертации

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	dates := make([]string, len(e.EventDates))
	for i, d := range e.EventDates {
		dates[i] = d.String()
	}

	slots := make([]string, len(e.AvailableSlots))
	for i, s := range e.AvailableSlots {
		slots[i] = s.String()
	}

	return &EventResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		EventDates:          dates,
		SlotDurationMinutes: e.SlotDurationMinutes,
		AvailableSlots:      slots,
		DeviceIDs:           e.DeviceIDs,
		Enabled:             e.Enabled,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список domain моделей в DTO
func FromDomainEventList(events []*domain.Event) *EventListResponse {
	resp := &EventListResponse{
		Events: make([]EventResponse, 0, len(events)),
	}

	for _, event := range events {
		if eventResp := FromDomainEvent(event); eventResp != nil {
			resp.Events = append(resp.Events, *eventResp)
		}
	}

	return resp
}
