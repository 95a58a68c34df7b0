package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// HTTPError is returned for every response outside the 2xx range.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap lets callers match broad classes with errors.Is.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}

// StatusCode extracts the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode, true
	}
	return 0, false
}

const maxDetailLen = 200

// errorDetail picks a human readable message out of an API error body.
// The API answers {"detail": "..."} for most errors and {"field": ["..."]}
// for validation failures.
func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return truncate(strings.TrimSpace(string(body)))
	}

	root := gjson.ParseBytes(body)
	for _, path := range []string{"detail", "error", "non_field_errors.0"} {
		if v := root.Get(path); v.Exists() && v.String() != "" {
			return truncate(v.String())
		}
	}

	var detail string
	root.ForEach(func(key, value gjson.Result) bool {
		if value.IsArray() {
			value = value.Get("0")
		}
		detail = key.String() + ": " + value.String()
		return false
	})
	return truncate(detail)
}

func truncate(s string) string {
	if len(s) > maxDetailLen {
		return s[:maxDetailLen] + "..."
	}
	return s
}
