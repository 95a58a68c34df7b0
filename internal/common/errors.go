// Package common defines shared constants and sentinel errors used across
// the client layers of PlanA. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotValidated     = errors.New("account not validated by an administrator")
)
