// Package api provides the HTTP surface: storefront, account and admin
// endpoints on a chi router.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.velora.shop/internal/common/action"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// maxBodyBytes bounds request bodies so a client cannot exhaust memory
const maxBodyBytes = 1 << 20

// statusFor maps an operation error onto an HTTP status
func statusFor(err error) int {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeResult projects a Result onto the action wire shape with the
// status derived from the error kind
func writeResult[T any](w http.ResponseWriter, r result.Result[T]) {
	if r.IsOk() {
		writeJSON(w, http.StatusOK, action.FromResult(r))
		return
	}
	writeJSON(w, statusFor(r.Err()), action.FromResult(r))
}

// writeFormResult is writeResult for form-handling endpoints, carrying
// per-field validation messages
func writeFormResult[T any](w http.ResponseWriter, r result.Result[T]) {
	if r.IsOk() {
		writeJSON(w, http.StatusOK, action.FormFromResult(r))
		return
	}
	writeJSON(w, statusFor(r.Err()), action.FormFromResult(r))
}

// writeCreated is writeResult with 201 on success
func writeCreated[T any](w http.ResponseWriter, r result.Result[T]) {
	if r.IsOk() {
		writeJSON(w, http.StatusCreated, action.FromResult(r))
		return
	}
	writeJSON(w, statusFor(r.Err()), action.FromResult(r))
}

// decodeJSON decodes a bounded JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, action.Fail[any]("Invalid request body"))
		return false
	}
	return true
}
