// Package client is the console's only way to reach the HR API.
//
// # Overview
//
// The package provides:
//  1. Gateway, the authenticated request path. It attaches the stored access
//     token as a bearer header and, when a request comes back 401, performs
//     exactly one refresh (POST /Auth/refresh) followed by exactly one resend.
//     If no refresh token is stored or the refresh fails, the session is
//     cleared and ErrUnauthorized is returned.
//  2. Client and its HTTP implementation, typed wrappers over Gateway for the
//     auth, opening, employee and candidate endpoints.
//  3. Local store bootstrap (InitDatabase, RunMigrations) opening the SQLite
//     profile file and applying embedded goose migrations.
//
// # Error Handling
//
// Match with errors.Is: ErrUnavailable (transport failure, no status),
// ErrUnauthorized (session gone). Other non-2xx responses are *APIError,
// matched with errors.As.
//
// # Concurrency
//
// Gateway is safe for concurrent use. Concurrent 401s refresh independently
// unless WithCoalescedRefresh is set; the token store is last-write-wins.
package client
