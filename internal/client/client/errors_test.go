package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadGateway, ErrUnavailable},
		{http.StatusInternalServerError, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &HTTPError{Method: "GET", Path: "/x", StatusCode: tt.status})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	bad := &HTTPError{Method: "POST", Path: "/x", StatusCode: http.StatusBadRequest}
	assert.False(t, errors.Is(bad, ErrUnauthorized))
	assert.False(t, errors.Is(bad, ErrUnavailable))
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{Method: "PATCH", Path: "/associations/3", StatusCode: 403, Detail: "forbidden"}
	assert.Equal(t, "PATCH /associations/3: 403 Forbidden: forbidden", err.Error())
}

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(fmt.Errorf("ctx: %w", &HTTPError{StatusCode: 418}))
	assert.True(t, ok)
	assert.Equal(t, 418, code)

	_, ok = StatusCode(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", ``, ""},
		{"detail", `{"detail":"Authentication credentials were not provided."}`, "Authentication credentials were not provided."},
		{"error", `{"error":"Bad ticket"}`, "Bad ticket"},
		{"non field", `{"non_field_errors":["Unable to log in."]}`, "Unable to log in."},
		{"field list", `{"email":["Enter a valid email address."]}`, "email: Enter a valid email address."},
		{"plain text", "  Bad Gateway \n", "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}
