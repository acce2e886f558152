// Package action defines the plain-data shapes returned by form-handling
// endpoints to the client UI. Unlike result.Result, these carry no
// behavior: they are serialized across the HTTP boundary and must stay
// plain records.
package action

import (
	"errors"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// Result is the wire shape for an action outcome:
// {success, data?, error?, message?}.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitzero"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// FormResult extends Result with per-field validation messages keyed by
// form field name.
type FormResult[T any] struct {
	Success     bool                `json:"success"`
	Data        T                   `json:"data,omitzero"`
	Error       string              `json:"error,omitempty"`
	Message     string              `json:"message,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
}

// OK builds a successful action result.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

// Fail builds a failed action result with a client-facing message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Error: message}
}

// FromResult projects a result.Result onto the wire shape. A success
// becomes {success:true, data}; a failure becomes {success:false, error}
// with the error stringified.
func FromResult[T any](r result.Result[T]) Result[T] {
	return result.Match(r,
		func(v T) Result[T] { return Result[T]{Success: true, Data: v} },
		func(err error) Result[T] { return Result[T]{Success: false, Error: err.Error()} },
	)
}

// FormFromResult projects a result.Result onto the form wire shape,
// lifting field errors out of a validation apperr.Error when present.
func FormFromResult[T any](r result.Result[T]) FormResult[T] {
	return result.Match(r,
		func(v T) FormResult[T] { return FormResult[T]{Success: true, Data: v} },
		func(err error) FormResult[T] {
			fr := FormResult[T]{Success: false, Error: err.Error()}
			var ae *apperr.Error
			if errors.As(err, &ae) {
				fr.Error = ae.Message
				fr.FieldErrors = ae.FieldErrors
			}
			return fr
		},
	)
}

// FieldValidation builds a failed form result from per-field messages.
func FieldValidation[T any](message string, fieldErrors map[string][]string) FormResult[T] {
	return FormResult[T]{Success: false, Error: message, FieldErrors: fieldErrors}
}
