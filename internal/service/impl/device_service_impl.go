package impl

import (
	"context"
	"errors"
	"strings"
	"time"

	"account/internal/domain"
	"account/internal/service"
	"account/internal/store"

	"github.com/google/uuid"
)

var _ service.DeviceService = (*DeviceServiceImpl)(nil)

type deviceStore interface {
	Create(ctx context.Context, device *domain.Device) error
	ListByAPIKey(ctx context.Context, apikey string) ([]*domain.Device, error)
	GetOwned(ctx context.Context, apikey, deviceID string) (*domain.Device, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error)
	UpdateDescriptor(ctx context.Context, device *domain.Device) error
	Delete(ctx context.Context, device *domain.Device) error
}

type DeviceServiceImpl struct {
	devices deviceStore
	now     func() time.Time
}

func NewDeviceServiceImpl(st *store.Store) *DeviceServiceImpl {
	return &DeviceServiceImpl{
		devices: st.Devices(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (d *DeviceServiceImpl) ListByAPIKey(ctx context.Context, apikey string) ([]*domain.Device, error) {
	return d.devices.ListByAPIKey(ctx, apikey)
}

func (d *DeviceServiceImpl) Get(ctx context.Context, apikey, deviceID string) (*domain.Device, error) {
	dev, err := d.devices.GetOwned(ctx, apikey, deviceID)
	return dev, translateDeviceErr(err)
}

func (d *DeviceServiceImpl) FindByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error) {
	dev, err := d.devices.GetByDeviceID(ctx, deviceID)
	return dev, translateDeviceErr(err)
}

// Create persists a new device. A missing deviceid is generated as <type prefix><10 hex chars>,
// keeping the two-character type convention used by factory devices.
func (d *DeviceServiceImpl) Create(ctx context.Context, device *domain.Device) error {
	if device.APIKey == "" {
		return errors.New("device owner apikey required")
	}
	now := d.nowTime()
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	if device.DeviceID == "" {
		device.DeviceID = generateDeviceID(device.Type)
	}
	if device.Traits == nil {
		device.Traits = []string{}
	}
	device.CreatedAt = now
	device.UpdatedAt = now
	return translateDeviceErr(d.devices.Create(ctx, device))
}

func (d *DeviceServiceImpl) Save(ctx context.Context, device *domain.Device) error {
	return translateDeviceErr(d.devices.UpdateDescriptor(ctx, device))
}

func (d *DeviceServiceImpl) Remove(ctx context.Context, device *domain.Device) error {
	return translateDeviceErr(d.devices.Delete(ctx, device))
}

func (d *DeviceServiceImpl) DefaultTraitsForType(deviceType string) []string {
	return DefaultTraitsForType(deviceType)
}

func (d *DeviceServiceImpl) nowTime() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now().UTC()
}

func generateDeviceID(deviceType string) string {
	prefix := strings.ToUpper(strings.TrimSpace(deviceType))
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func translateDeviceErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrRecordNotFound):
		return domain.ErrDeviceNotFound
	case errors.Is(err, store.ErrDuplicate):
		return domain.ErrDeviceExists
	}
	return err
}
