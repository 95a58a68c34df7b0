// Package common contains shared constants and sentinel errors used across
// PlanA client components.
package common

// AuthorizationHeaderName carries the bearer access token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is attached to every outbound request for log correlation.
const RequestIDHeaderName = "X-Request-ID"

// Metadata keys under which tokens are persisted locally.
const (
	AccessTokenKey  = "access"
	RefreshTokenKey = "refresh"
)

// DateTimeSuffix is appended to a calendar date when the API expects a datetime.
const DateTimeSuffix = "T00:00:00.000Z"
