// Package openings stores job openings.
package openings

import (
	"context"

	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Opening, error)
	Get(ctx context.Context, id int) (*models.Opening, error)
	Create(ctx context.Context, in models.OpeningInput) (*models.Opening, error)
	// Update writes the mutable columns of o.
	Update(ctx context.Context, o *models.Opening) (*models.Opening, error)
	Delete(ctx context.Context, id int) error
}
