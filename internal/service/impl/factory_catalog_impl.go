package impl

import (
	"context"
	"errors"
	"strings"

	"account/internal/domain"
	"account/internal/service"
	"account/internal/store"
)

var _ service.FactoryCatalog = (*FactoryCatalogImpl)(nil)

type FactoryCatalogImpl struct {
	store *store.Store
}

func NewFactoryCatalogImpl(st *store.Store) *FactoryCatalogImpl {
	return &FactoryCatalogImpl{store: st}
}

func (f *FactoryCatalogImpl) Exists(ctx context.Context, apikey, deviceID string) (bool, error) {
	return f.store.FactoryDevices().Exists(ctx, apikey, deviceID)
}

// Add provisions a factory device. Device ids must carry the two-character type prefix.
func (f *FactoryCatalogImpl) Add(ctx context.Context, apikey, deviceID string) error {
	apikey = strings.TrimSpace(apikey)
	deviceID = strings.TrimSpace(deviceID)
	if apikey == "" || len(deviceID) < 3 {
		return domain.ErrValidation
	}
	err := f.store.FactoryDevices().Create(ctx, apikey, deviceID)
	if errors.Is(err, store.ErrDuplicate) {
		return domain.ErrDeviceExists
	}
	return err
}
