package store

import (
	"context"
	"time"

	"account/internal/domain"

	"gorm.io/gorm"
)

type FactoryDeviceStore struct{ db *gorm.DB }

func (s *Store) FactoryDevices() *FactoryDeviceStore { return &FactoryDeviceStore{db: s.DB} }

func (f *FactoryDeviceStore) Exists(ctx context.Context, apikey, deviceID string) (bool, error) {
	var count int64
	if err := f.db.WithContext(ctx).Model(&domain.FactoryDevice{}).
		Where("api_key = ? AND device_id = ?", apikey, deviceID).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (f *FactoryDeviceStore) Create(ctx context.Context, apikey, deviceID string) error {
	return translate(f.db.WithContext(ctx).Create(&domain.FactoryDevice{
		APIKey:    apikey,
		DeviceID:  deviceID,
		CreatedAt: time.Now().UTC(),
	}).Error)
}
