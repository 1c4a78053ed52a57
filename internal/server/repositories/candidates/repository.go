// Package candidates reads job applications and the applicants behind them.
package candidates

import (
	"context"

	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

type Repository interface {
	ListByOpening(ctx context.Context, openingID int) ([]models.Candidate, error)
	// ResumeExists reports whether some candidate references fileName.
	ResumeExists(ctx context.Context, fileName string) (bool, error)
}
