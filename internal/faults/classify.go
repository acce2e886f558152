package faults

import (
	"context"
	"errors"
	"net"
	"strings"

	"go.velora.shop/internal/common/apperr"
)

// classRule is one substring fallback rule. Order in the table is the
// match precedence: earlier rules win when a message matches several.
type classRule struct {
	domain Domain
	terms  []string
}

// Fallback precedence: payment first so provider errors mentioning a
// transport never land in NETWORK or AUTH, then the more specific
// commerce domains, transport/infrastructure last.
var classRules = []classRule{
	{DomainPayment, []string{"stripe", "payment", "card", "charge", "declined", "refund"}},
	{DomainAuth, []string{"auth", "token", "session", "login", "credential", "password", "unauthorized", "forbidden"}},
	{DomainCart, []string{"cart", "basket", "line item"}},
	{DomainOrder, []string{"order", "checkout", "shipment"}},
	{DomainStorage, []string{"upload", "bucket", "object storage", "media"}},
	{DomainDatabase, []string{"database", "sql", "constraint", "deadlock", "pgx"}},
	{DomainValidation, []string{"validation", "invalid", "required field"}},
	{DomainNetwork, []string{"network", "connection", "timeout", "dns", "unreachable", "offline"}},
	{DomainAPI, []string{"api", "http", "status 5", "rate limit"}},
}

// Classify assigns a domain to an error. Typed information wins: a
// faults.Error carries its domain, and an apperr.Error maps through its
// kind. Only foreign errors fall back to substring matching with the
// precedence fixed by classRules.
func Classify(err error) Domain {
	if err == nil {
		return DomainUnknown
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe.Domain
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindPayment:
			return DomainPayment
		case apperr.KindUnauthorized:
			return DomainAuth
		case apperr.KindValidation:
			return DomainValidation
		case apperr.KindNotFound, apperr.KindBusinessRule, apperr.KindConcurrency:
			return DomainAPI
		default:
			return DomainDatabase
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return DomainNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return DomainNetwork
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classRules {
		for _, term := range rule.terms {
			if strings.Contains(msg, term) {
				return rule.domain
			}
		}
	}

	return DomainUnknown
}

// severityOf extracts the severity from a typed error or falls back to
// the per-domain default.
func severityOf(err error, domain Domain) Severity {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Severity
	}
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindInternal {
		return SeverityCritical
	}
	return defaultSeverity(domain)
}
