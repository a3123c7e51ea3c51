package service

import (
	"context"

	"account/internal/domain"
)

type DeviceService interface {
	ListByAPIKey(ctx context.Context, apikey string) ([]*domain.Device, error)
	Get(ctx context.Context, apikey, deviceID string) (*domain.Device, error)
	FindByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error)
	Create(ctx context.Context, device *domain.Device) error
	Save(ctx context.Context, device *domain.Device) error
	Remove(ctx context.Context, device *domain.Device) error
	DefaultTraitsForType(deviceType string) []string
}

type FactoryCatalog interface {
	Exists(ctx context.Context, apikey, deviceID string) (bool, error)
	Add(ctx context.Context, apikey, deviceID string) error
}
