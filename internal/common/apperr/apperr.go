// Package apperr defines the typed error carried by operation Results.
// Each error has a Kind that maps to an HTTP status, a stable code for
// clients, and optional structured details.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind represents the category of an operation error.
type Kind int

const (
	// KindValidation represents input validation failures.
	// Maps to HTTP 400 Bad Request.
	KindValidation Kind = iota

	// KindBusinessRule represents business rule violations.
	// Maps to HTTP 409 Conflict.
	KindBusinessRule

	// KindNotFound represents entity not found errors.
	// Maps to HTTP 404 Not Found.
	KindNotFound

	// KindConcurrency represents conditional-update conflicts.
	// Maps to HTTP 409 Conflict.
	KindConcurrency

	// KindUnauthorized represents authentication/authorization failures.
	// Maps to HTTP 401/403.
	KindUnauthorized

	// KindPayment represents payment provider rejections.
	// Maps to HTTP 402 Payment Required.
	KindPayment

	// KindInternal represents unexpected internal errors.
	// Maps to HTTP 500 Internal Server Error.
	KindInternal
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindBusinessRule:
		return "BUSINESS_RULE"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConcurrency:
		return "CONCURRENCY"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindPayment:
		return "PAYMENT"
	case KindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatus returns the HTTP status code for this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindBusinessRule:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindConcurrency:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	case KindPayment:
		return http.StatusPaymentRequired
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a structured operation error, suitable for both logging and
// API responses.
type Error struct {
	Kind    Kind           `json:"kind"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	// FieldErrors carries per-field validation messages keyed by form
	// field name. Only populated for KindValidation.
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Kind.String(), e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// WithDetail adds a detail and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error and returns the error for chaining.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// WithFieldError appends a validation message for a form field.
func (e *Error) WithFieldError(field, message string) *Error {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], message)
	return e
}

// Validation creates a new validation error.
// Use for input validation failures (missing fields, invalid format).
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// BusinessRule creates a new business rule violation error.
// Use for state violations (entity in wrong state, constraint broken).
func BusinessRule(code, message string) *Error {
	return &Error{Kind: KindBusinessRule, Code: code, Message: message}
}

// NotFound creates a new not found error.
func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// Concurrency creates a new conditional-update conflict error.
func Concurrency(code, message string) *Error {
	return &Error{Kind: KindConcurrency, Code: code, Message: message}
}

// Unauthorized creates a new authorization error.
func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

// Payment creates a new payment rejection error.
func Payment(code, message string) *Error {
	return &Error{Kind: KindPayment, Code: code, Message: message}
}

// Internal creates a new internal error.
// Use for unexpected errors that shouldn't happen in normal operation.
func Internal(code, message string) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: message}
}

// Common error codes reused across operations
const (
	CodeRequired      = "REQUIRED"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeInvalidValue  = "INVALID_VALUE"
	CodeInvalidEmail  = "INVALID_EMAIL"
	CodeWeakPassword  = "WEAK_PASSWORD"

	CodeAlreadyExists  = "ALREADY_EXISTS"
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
	CodeDuplicateSlug  = "DUPLICATE_SLUG"
	CodeInvalidState   = "INVALID_STATE"
	CodeOutOfStock     = "OUT_OF_STOCK"

	CodeProductNotFound  = "PRODUCT_NOT_FOUND"
	CodeArticleNotFound  = "ARTICLE_NOT_FOUND"
	CodeOrderNotFound    = "ORDER_NOT_FOUND"
	CodeCartNotFound     = "CART_NOT_FOUND"
	CodeCustomerNotFound = "CUSTOMER_NOT_FOUND"

	CodeAccessDenied       = "ACCESS_DENIED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	CodePaymentDeclined    = "PAYMENT_DECLINED"
	CodePaymentUnavailable = "PAYMENT_UNAVAILABLE"

	CodeDBError = "DB_ERROR"
)
