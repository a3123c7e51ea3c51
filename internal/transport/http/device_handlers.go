package http

import (
	"errors"
	"net/http"
	"time"

	"account/internal/domain"
	"account/internal/dto"
	"account/internal/events"
	"account/internal/observability/metrics"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"
)

func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.Devices.ListByAPIKey(r.Context(), principal(r).APIKey)
	metrics.DeviceOperationsTotal.WithLabelValues("list", metrics.Result(err)).Inc()
	if err != nil {
		h.logger(r).Error("list devices", "error", err)
		writeError(w, msgListDevicesFailed)
		return
	}
	if devices == nil {
		devices = []*domain.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

func (h *Handler) createDevice(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.CreateDeviceRequest](r)
	if blank(req.Name) || blank(req.Type) {
		writeError(w, msgDeviceNameType)
		return
	}
	traits := req.Traits
	if len(traits) == 0 {
		traits = h.Devices.DefaultTraitsForType(req.Type)
	}
	dev := &domain.Device{
		Name:       req.Name,
		Group:      req.Group,
		Type:       req.Type,
		APIKey:     principal(r).APIKey,
		Traits:     traits,
		Attributes: datatypes.JSONMap(req.Attributes),
	}
	err := h.Devices.Create(r.Context(), dev)
	metrics.DeviceOperationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		h.logger(r).Error("create device", "error", err)
		writeError(w, msgCreateDeviceFailed)
		return
	}
	h.publish(r, events.DeviceCreated, dev)
	writeJSON(w, http.StatusOK, dev)
}

// claimDevice binds a factory-provisioned device to the caller's account.
func (h *Handler) claimDevice(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.ClaimDeviceRequest](r)
	if blank(req.Name) || blank(req.APIKey) || blank(req.DeviceID) {
		writeError(w, msgClaimFieldsEmpty)
		return
	}
	p := principal(r)
	log := h.logger(r)

	ok, err := h.Factory.Exists(r.Context(), req.APIKey, req.DeviceID)
	if err != nil {
		log.Error("factory catalog lookup", "error", err)
		writeError(w, msgAddDeviceFailed)
		return
	}
	if !ok {
		writeError(w, msgDeviceNotExist)
		return
	}

	existing, err := h.Devices.FindByDeviceID(r.Context(), req.DeviceID)
	switch {
	case err == nil:
		writeError(w, claimConflict(existing, p.APIKey))
		return
	case !errors.Is(err, domain.ErrDeviceNotFound):
		log.Error("find device", "error", err)
		writeError(w, msgAddDeviceFailed)
		return
	}

	deviceType := typePrefix(req.DeviceID)
	dev := &domain.Device{
		Name:     req.Name,
		Group:    req.Group,
		Type:     deviceType,
		DeviceID: req.DeviceID,
		APIKey:   p.APIKey,
		Traits:   h.Devices.DefaultTraitsForType(deviceType),
	}
	err = h.Devices.Create(r.Context(), dev)
	metrics.DeviceOperationsTotal.WithLabelValues("claim", metrics.Result(err)).Inc()
	if err != nil {
		// lost a race with a concurrent claim
		if errors.Is(err, domain.ErrDeviceExists) {
			if winner, ferr := h.Devices.FindByDeviceID(r.Context(), req.DeviceID); ferr == nil {
				writeError(w, claimConflict(winner, p.APIKey))
				return
			}
		}
		log.Error("claim device", "error", err)
		writeError(w, msgAddDeviceFailed)
		return
	}
	h.publish(r, events.DeviceClaimed, dev)
	writeJSON(w, http.StatusOK, dev)
}

func claimConflict(existing *domain.Device, apikey string) string {
	if existing.APIKey == apikey {
		return msgDeviceAlreadyAdded
	}
	return msgDeviceOtherUser
}

// typePrefix returns the first two characters of a deviceid.
func typePrefix(deviceID string) string {
	runes := []rune(deviceID)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// ownedDevice resolves {deviceid} within the caller's account. Foreign and absent devices
// are reported the same way.
func (h *Handler) ownedDevice(w http.ResponseWriter, r *http.Request) (*domain.Device, bool) {
	dev, err := h.Devices.Get(r.Context(), principal(r).APIKey, chi.URLParam(r, "deviceid"))
	if err != nil {
		if !errors.Is(err, domain.ErrDeviceNotFound) {
			h.logger(r).Error("load device", "error", err)
		}
		writeError(w, msgDeviceNotExist)
		return nil, false
	}
	return dev, true
}

func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	if dev, ok := h.ownedDevice(w, r); ok {
		writeJSON(w, http.StatusOK, dev)
	}
}

func (h *Handler) updateDevice(w http.ResponseWriter, r *http.Request) {
	req := decode[dto.UpdateDeviceRequest](r)
	if req.Name == nil || req.Group == nil {
		writeError(w, msgDeviceNameGroup)
		return
	}
	dev, ok := h.ownedDevice(w, r)
	if !ok {
		return
	}
	dev.Name = *req.Name
	dev.Group = *req.Group
	err := h.Devices.Save(r.Context(), dev)
	metrics.DeviceOperationsTotal.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		h.logger(r).Error("save device", "error", err)
		writeError(w, msgSaveDeviceFailed)
		return
	}
	h.publish(r, events.DeviceUpdated, dev)
	writeJSON(w, http.StatusOK, dev)
}

func (h *Handler) deleteDevice(w http.ResponseWriter, r *http.Request) {
	dev, ok := h.ownedDevice(w, r)
	if !ok {
		return
	}
	err := h.Devices.Remove(r.Context(), dev)
	metrics.DeviceOperationsTotal.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		h.logger(r).Error("delete device", "error", err)
		writeError(w, msgDeleteDeviceFailed)
		return
	}
	h.publish(r, events.DeviceDeleted, dev)
	writeJSON(w, http.StatusOK, dev)
}

// publish is best effort: the database write has already succeeded.
func (h *Handler) publish(r *http.Request, kind events.DeviceEventKind, dev *domain.Device) {
	if h.Events == nil {
		return
	}
	ev := events.DeviceEvent{
		Kind:     kind,
		DeviceID: dev.DeviceID,
		APIKey:   dev.APIKey,
		Type:     dev.Type,
		Name:     dev.Name,
		At:       time.Now().UTC(),
	}
	if err := h.Events.PublishDevice(r.Context(), ev); err != nil {
		h.logger(r).Warn("publish device event", "event", string(kind), "deviceid", dev.DeviceID, "error", err)
	}
}

