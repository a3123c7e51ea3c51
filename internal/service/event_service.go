package service

import (
	"context"

	"account/internal/events"
)

type EventPublisher interface {
	PublishDevice(ctx context.Context, ev events.DeviceEvent) error
}
