// Package employees stores employee records.
package employees

import (
	"context"

	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id int) (*models.Employee, error)
	Create(ctx context.Context, e models.Employee) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) (*models.Employee, error)
}
