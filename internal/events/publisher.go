package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"go.velora.shop/internal/common/metrics"
)

// Publisher publishes domain events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NATSPublisher publishes events to NATS subjects
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher creates a publisher on an existing connection
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

// Publish sends the event to its subject
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(event.Subject, "error").Inc()
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.conn.Publish(event.Subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Subject, "error").Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(event.Subject, "success").Inc()
	slog.Debug("Published event", "subject", event.Subject, "eventId", event.ID)
	return nil
}

// NoopPublisher drops events. Used in development and single-binary
// deployments without a broker.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards events
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish logs and discards the event
func (p *NoopPublisher) Publish(ctx context.Context, event Event) error {
	metrics.EventsPublished.WithLabelValues(event.Subject, "success").Inc()
	slog.Debug("Discarding event (noop publisher)", "subject", event.Subject, "eventId", event.ID)
	return nil
}
