// Package common contains shared constants and sentinel errors used across
// the console and the reference API server.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates console calls with server log lines.
	RequestIDHeaderName = "X-Request-Id"

	// SessionStorageKey is the single metadata key that holds the persisted
	// session as JSON text.
	SessionStorageKey = "rh.auth"
)

// Role labels understood by both sides.
const (
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)
