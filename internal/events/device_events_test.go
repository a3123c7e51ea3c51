package events

import (
	"context"
	"errors"
	"testing"
)

func TestDeviceEventTopic(t *testing.T) {
	ev := DeviceEvent{Kind: DeviceClaimed, APIKey: "K1", DeviceID: "LT0001"}
	got := ev.Topic("iotmaster/accounts/")
	want := "iotmaster/accounts/K1/devices/LT0001/claimed"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestValidSegment(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{in: "LT0001", ok: true},
		{in: "", ok: false},
		{in: "a/b", ok: false},
		{in: "a+", ok: false},
		{in: "#", ok: false},
	}
	for _, tc := range tests {
		if got := validSegment(tc.in); got != tc.ok {
			t.Fatalf("validSegment(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestMQTTPublisherRejectsWildcards(t *testing.T) {
	p := &MQTTPublisher{prefix: "x"}
	err := p.PublishDevice(context.Background(), DeviceEvent{Kind: DeviceCreated, APIKey: "K+", DeviceID: "LT1"})
	if !errors.Is(err, ErrInvalidTopic) {
		t.Fatalf("expected ErrInvalidTopic, got %v", err)
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (NopPublisher{}).PublishDevice(context.Background(), DeviceEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
