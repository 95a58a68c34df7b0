package services

import (
	"errors"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/common"
)

// Notification categories shown to the user.
const (
	NotifyClientError = "403-error"
	NotifyServerError = "500-error"
)

// CatchHTTPError maps a status code to a notification category.
func CatchHTTPError(status int) string {
	if status >= 400 && status <= 499 {
		return NotifyClientError
	}
	return NotifyServerError
}

// Notification classifies err. Errors without a status code are treated as
// client errors when they come from local validation, server errors otherwise.
func Notification(err error) string {
	if status, ok := client.StatusCode(err); ok {
		return CatchHTTPError(status)
	}
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrNotValidated),
		errors.Is(err, common.ErrNotAuthenticated),
		errors.Is(err, client.ErrUnauthorized):
		return NotifyClientError
	}
	return NotifyServerError
}
