// Package server provides the HTTP REST API for the document chat backend.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/docuchat/internal/chat"
	"github.com/jonathan/docuchat/internal/sources"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Policy-limit rejections (oversized PDF, overlong video) and malformed
// input map to 400; missing records to 404; everything else, including
// upstream provider failures, maps to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, chat.ErrNoMessages),
		errors.Is(err, sources.ErrInvalidVideoURL),
		errors.Is(err, sources.ErrVideoTooLong),
		errors.Is(err, sources.ErrPDFTooLarge),
		errors.Is(err, sources.ErrInvalidPDF),
		errors.Is(err, sources.ErrInvalidNotionURL),
		errors.Is(err, sources.ErrInvalidGoogleDocURL),
		errors.Is(err, sources.ErrInvalidGoogleSheetURL):
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
