package models

import (
	"time"

	"event-slot-service/internal/domain"
)

// Request модели

// CreateDeviceRequest запрос на создание устройства
type CreateDeviceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	LinkURL     *string `json:"linkUrl,omitempty"`
}

// UpdateDeviceRequest запрос на обновление устройства
type UpdateDeviceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	LinkURL     *string `json:"linkUrl,omitempty"`
}

// Response модели

// DeviceResponse ответ с данными устройства
type DeviceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	LinkURL     *string   `json:"linkUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeviceListResponse ответ со списком устройств
type DeviceListResponse struct {
	Devices []DeviceResponse `json:"devices"`
}

// FromDomainDevice конвертирует domain модель в DTO
func FromDomainDevice(d *domain.Device) *DeviceResponse {
	if d == nil {
		return nil
	}

	return &DeviceResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		LinkURL:     d.LinkURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// FromDomainDeviceList конвертирует список domain моделей в DTO
func FromDomainDeviceList(devices []*domain.Device) *DeviceListResponse {
	resp := &DeviceListResponse{
		Devices: make([]DeviceResponse, 0, len(devices)),
	}

	for _, device := range devices {
		if deviceResp := FromDomainDevice(device); deviceResp != nil {
			resp.Devices = append(resp.Devices, *deviceResp)
		}
	}

	return resp
}
