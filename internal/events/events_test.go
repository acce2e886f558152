package events

import (
	"context"
	"testing"
)

func TestNewEventEnvelope(t *testing.T) {
	e := New(SubjectOrderPlaced, map[string]any{"orderId": "o-1"})

	if e.ID == "" {
		t.Error("Expected generated event id")
	}
	if e.Subject != SubjectOrderPlaced {
		t.Errorf("Expected subject %s, got %s", SubjectOrderPlaced, e.Subject)
	}
	if e.Time.IsZero() {
		t.Error("Expected event time to be set")
	}
	if e.Data["orderId"] != "o-1" {
		t.Errorf("Expected data preserved, got %v", e.Data)
	}
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()

	if err := p.Publish(context.Background(), New(SubjectOrderPaid, nil)); err != nil {
		t.Errorf("Noop publish must never fail, got %v", err)
	}
}
