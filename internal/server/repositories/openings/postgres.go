package openings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/dbx"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

const columns = `opening_id, job_title, description, open_flag, date_created`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOpening(s scanner) (*models.Opening, error) {
	o := &models.Opening{}
	if err := s.Scan(&o.OpeningID, &o.JobTitle, &o.Description, &o.OpenFlag, &o.DateCreated); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns all openings, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Opening, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM openings ORDER BY date_created DESC, opening_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Opening{}
	for rows.Next() {
		o, err := scanOpening(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*models.Opening, error) {
	o, err := scanOpening(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM openings WHERE opening_id = $1`, id))
	return o, mapErr(err)
}

func (r *PostgresRepository) Create(ctx context.Context, in models.OpeningInput) (*models.Opening, error) {
	query :=
		`INSERT INTO openings (job_title, description)
		 VALUES ($1, $2)
		 RETURNING ` + columns

	o, err := scanOpening(r.db.QueryRowContext(ctx, query, in.JobTitle, in.Description))
	return o, mapErr(err)
}

func (r *PostgresRepository) Update(ctx context.Context, o *models.Opening) (*models.Opening, error) {
	query :=
		`UPDATE openings SET job_title = $2, description = $3, open_flag = $4
		 WHERE opening_id = $1
		 RETURNING ` + columns

	updated, err := scanOpening(r.db.QueryRowContext(ctx, query, o.OpeningID, o.JobTitle, o.Description, o.OpenFlag))
	return updated, mapErr(err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM openings WHERE opening_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
