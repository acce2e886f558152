// Package result provides a two-variant success/error container used by
// all operations in place of ad-hoc nil/error mixing.
//
// A Result is immutable after construction. Combinators short-circuit:
// once a chain enters the failure state, Map/FlatMap/Tap are no-ops that
// return the original failure, and only MapErr/TapErr/Match observe it.
package result

import (
	"errors"
	"fmt"
)

// Result represents the outcome of an operation that either produced a
// value or failed with an error. Exactly one side is populated.
//
// Accessing the wrong side through Value or MustErr panics: misuse is a
// programmer error and should surface at the call site, not propagate a
// zero value.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok constructs a successful Result carrying value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err constructs a failed Result. A nil error is replaced with a
// placeholder so a failure can never masquerade as a success.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("result: failure constructed with nil error")
	}
	return Result[T]{err: err}
}

// Errf constructs a failed Result from a format string.
func Errf[T any](format string, args ...any) Result[T] {
	return Err[T](fmt.Errorf(format, args...))
}

// From converts a conventional (value, error) return into a Result.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(value)
}

// Capture invokes fn and converts its outcome into a Result, recovering
// a panic into a failure. This is the single place a panic is caught and
// converted; everything downstream works with Results.
func Capture[T any](fn func() (T, error)) (r Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			if err, isErr := rec.(error); isErr {
				r = Err[T](err)
				return
			}
			r = Errf[T]("recovered panic: %v", rec)
		}
	}()
	return From(fn())
}

// IsOk reports whether the Result is a success.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the Result is a failure.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Value returns the success value. It panics when called on a failure;
// callers that cannot guarantee success use ValueOr, Unwrap or Match.
func (r Result[T]) Value() T {
	if !r.ok {
		panic(fmt.Sprintf("result: Value called on failure: %v", r.err))
	}
	return r.value
}

// MustErr returns the error. It panics when called on a success.
func (r Result[T]) MustErr() error {
	if r.ok {
		panic("result: MustErr called on success")
	}
	return r.err
}

// Err returns the error for a failure and nil for a success.
func (r Result[T]) Err() error {
	return r.err
}

// ValueOr returns the success value or fallback on failure.
func (r Result[T]) ValueOr(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

// ValueOrZero returns the success value or the zero value of T.
func (r Result[T]) ValueOrZero() T {
	return r.value
}

// Unwrap returns the underlying (value, error) pair, mirroring standard
// Go return semantics.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Map transforms the success value, producing a new Result. A failure
// passes through unchanged and fn is not invoked.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// MapErr transforms only the error channel. A success passes through
// unchanged and fn is not invoked.
func MapErr[T any](r Result[T], fn func(error) error) Result[T] {
	if r.ok {
		return r
	}
	return Err[T](fn(r.err))
}

// FlatMap chains a Result-returning operation, flattening the nesting.
// A failure short-circuits and fn is not invoked.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// Tap runs a side effect against the success value, returning the
// Result unchanged. Not invoked on a failure.
func Tap[T any](r Result[T], fn func(T)) Result[T] {
	if r.ok {
		fn(r.value)
	}
	return r
}

// TapErr runs a side effect against the error, returning the Result
// unchanged. Not invoked on a success.
func TapErr[T any](r Result[T], fn func(error)) Result[T] {
	if !r.ok {
		fn(r.err)
	}
	return r
}

// Match is the total eliminator: it applies exactly one of the two
// functions and returns the unified value. This is the sanctioned way
// out of a Result chain without risking the fail-fast accessors.
func Match[T, U any](r Result[T], onOk func(T) U, onErr func(error) U) U {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}
