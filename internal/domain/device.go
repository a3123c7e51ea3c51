package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Device struct {
	ID         DeviceRecordID              `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID   string                      `gorm:"uniqueIndex:ux_devices_deviceid;not null" json:"deviceid"`
	APIKey     string                      `gorm:"index;not null" json:"apikey"`
	Name       string                      `gorm:"not null" json:"name"`
	Group      string                      `gorm:"column:device_group;not null;default:''" json:"group"`
	Type       string                      `gorm:"not null" json:"type"`
	Traits     datatypes.JSONSlice[string] `json:"traits"`
	Attributes datatypes.JSONMap           `json:"attributes,omitempty"`
	CreatedAt  time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (Device) TableName() string { return "devices" }

// FactoryDevice is a device provisioned at manufacturing time and waiting to be claimed.
type FactoryDevice struct {
	APIKey    string    `gorm:"primaryKey" json:"apikey"`
	DeviceID  string    `gorm:"primaryKey" json:"deviceid"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (FactoryDevice) TableName() string { return "factory_devices" }
