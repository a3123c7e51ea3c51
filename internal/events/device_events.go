package events

import (
	"strings"
	"time"
)

type DeviceEventKind string

const (
	DeviceCreated DeviceEventKind = "created"
	DeviceClaimed DeviceEventKind = "claimed"
	DeviceUpdated DeviceEventKind = "updated"
	DeviceDeleted DeviceEventKind = "deleted"
)

type DeviceEvent struct {
	Kind     DeviceEventKind `json:"event"`
	DeviceID string          `json:"deviceid"`
	APIKey   string          `json:"apikey"`
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	At       time.Time       `json:"at"`
}

// Topic renders <prefix>/<apikey>/devices/<deviceid>/<event>.
func (e DeviceEvent) Topic(prefix string) string {
	return strings.Join([]string{strings.TrimRight(prefix, "/"), e.APIKey, "devices", e.DeviceID, string(e.Kind)}, "/")
}

// validSegment rejects values that would change the topic structure.
func validSegment(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/+#")
}
