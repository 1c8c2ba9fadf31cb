package domain

import "time"

// Device represents a bookable device. Devices live independently of events:
// одно устройство может быть привязано к нескольким событиям.
type Device struct {
	ID          int64
	Name        string
	Description *string
	ImageURL    *string
	LinkURL     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
