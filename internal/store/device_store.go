package store

import (
	"context"
	"time"

	"account/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceStore struct{ db *gorm.DB }

func (s *Store) Devices() *DeviceStore { return &DeviceStore{db: s.DB} }

func (d *DeviceStore) Create(ctx context.Context, device *domain.Device) error {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	return translate(d.db.WithContext(ctx).Create(device).Error)
}

func (d *DeviceStore) ListByAPIKey(ctx context.Context, apikey string) ([]*domain.Device, error) {
	var devices []*domain.Device
	if err := d.db.WithContext(ctx).
		Where("api_key = ?", apikey).
		Order("created_at").
		Find(&devices).Error; err != nil {
		return nil, translate(err)
	}
	return devices, nil
}

func (d *DeviceStore) GetOwned(ctx context.Context, apikey, deviceID string) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).First(&device, "api_key = ? AND device_id = ?", apikey, deviceID).Error; err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

func (d *DeviceStore) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).First(&device, "device_id = ?", deviceID).Error; err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

// UpdateDescriptor writes the mutable fields only; ownership is part of the filter, never the update.
func (d *DeviceStore) UpdateDescriptor(ctx context.Context, device *domain.Device) error {
	device.UpdatedAt = time.Now().UTC()
	tx := d.db.WithContext(ctx).Model(&domain.Device{}).
		Where("id = ? AND api_key = ?", device.ID, device.APIKey).
		Updates(map[string]any{
			"name":         device.Name,
			"device_group": device.Group,
			"updated_at":   device.UpdatedAt,
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (d *DeviceStore) Delete(ctx context.Context, device *domain.Device) error {
	tx := d.db.WithContext(ctx).Where("id = ? AND api_key = ?", device.ID, device.APIKey).Delete(&domain.Device{})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
