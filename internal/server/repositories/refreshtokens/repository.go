// Package refreshtokens declares the repository contract for the opaque
// refresh tokens the API hands out.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

// Repository issues, looks up and revokes refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete reports whether a row was removed. Deleting an unknown token is
	// not an error.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteExpired purges tokens that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
