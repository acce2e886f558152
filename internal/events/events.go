// Package events publishes domain events for downstream consumers
// (email, analytics, fulfilment). Publishing is best-effort: a failed
// publish is reported to the fault manager but never fails the operation
// that produced the event.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Subjects for the events Velora emits
const (
	SubjectOrderPlaced      = "velora.orders.placed"
	SubjectOrderPaid        = "velora.orders.paid"
	SubjectOrderCancelled   = "velora.orders.cancelled"
	SubjectCustomerCreated  = "velora.customers.created"
	SubjectArticlePublished = "velora.magazine.published"
	SubjectArticleArchived  = "velora.magazine.archived"
)

// Event is the envelope every published message uses
type Event struct {
	ID      string         `json:"id"`
	Subject string         `json:"subject"`
	Time    time.Time      `json:"time"`
	Data    map[string]any `json:"data,omitempty"`
}

// New creates an event envelope for the subject
func New(subject string, data map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Subject: subject,
		Time:    time.Now().UTC(),
		Data:    data,
	}
}
