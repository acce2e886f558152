// Package faults provides the application error manager: classification
// of errors into fixed domains, a capped in-memory fault log, subscriber
// notification, per-domain recovery strategies, priority-ordered handler
// dispatch, and a bounded exponential-backoff retry loop.
//
// The manager is an explicitly constructed value, injected where needed.
// There is no package-level state; test isolation is a constructor call.
package faults

import (
	"time"
)

// Domain is a fixed category used to route error handling.
type Domain string

const (
	DomainAuth       Domain = "AUTH"
	DomainAPI        Domain = "API"
	DomainPayment    Domain = "PAYMENT"
	DomainCart       Domain = "CART"
	DomainOrder      Domain = "ORDER"
	DomainNetwork    Domain = "NETWORK"
	DomainValidation Domain = "VALIDATION"
	DomainDatabase   Domain = "DATABASE"
	DomainStorage    Domain = "STORAGE"
	DomainUnknown    Domain = "UNKNOWN"
)

// Severity drives how a fault is surfaced to the user.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Error is a domain-tagged error created at the throw site. Typed
// classification through Error is always preferred over the substring
// fallback in Classify.
type Error struct {
	Domain   Domain
	Severity Severity
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Domain) + " fault"
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Tag wraps err with an explicit domain and severity.
func Tag(domain Domain, severity Severity, err error) *Error {
	return &Error{Domain: domain, Severity: severity, Err: err}
}

// Entry is a logged fault.
type Entry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Domain   Domain    `json:"domain"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Context  string    `json:"context,omitempty"`

	err error
}

// Err returns the underlying error for the entry.
func (e Entry) Err() error {
	return e.err
}

// Resolution is the terminal outcome of reporting a fault.
type Resolution struct {
	Resolved bool
	Action   string
}

// defaultSeverity returns the severity assumed for a domain when the
// error carries none.
func defaultSeverity(d Domain) Severity {
	switch d {
	case DomainPayment, DomainAuth, DomainDatabase:
		return SeverityHigh
	case DomainOrder, DomainStorage:
		return SeverityMedium
	case DomainNetwork, DomainAPI, DomainCart:
		return SeverityMedium
	case DomainValidation:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
