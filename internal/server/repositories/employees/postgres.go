package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/dbx"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories"
)

// Dates leave the database already formatted as models.DateLayout.
const columns = `business_entity_id, first_name, last_name, national_id_number, job_title,
	to_char(birth_date, 'YYYY-MM-DD'), marital_status, gender, to_char(hire_date, 'YYYY-MM-DD')`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (*models.Employee, error) {
	e := &models.Employee{}
	err := s.Scan(&e.BusinessEntityID, &e.FirstName, &e.LastName, &e.NationalIDNumber, &e.JobTitle,
		&e.BirthDate, &e.MaritalStatus, &e.Gender, &e.HireDate)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM employees ORDER BY business_entity_id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM employees WHERE business_entity_id = $1`, id))
	return e, mapErr(err)
}

// Create inserts e. A reused national id number yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, e models.Employee) (*models.Employee, error) {
	query :=
		`INSERT INTO employees (first_name, last_name, national_id_number, job_title, birth_date, marital_status, gender, hire_date)
		 VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8::date)
		 RETURNING ` + columns

	created, err := scanEmployee(r.db.QueryRowContext(ctx, query,
		e.FirstName, e.LastName, e.NationalIDNumber, e.JobTitle, e.BirthDate, e.MaritalStatus, e.Gender, e.HireDate))
	return created, mapErr(err)
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	query :=
		`UPDATE employees SET job_title = $2, marital_status = $3, gender = $4
		 WHERE business_entity_id = $1
		 RETURNING ` + columns

	updated, err := scanEmployee(r.db.QueryRowContext(ctx, query, e.BusinessEntityID, e.JobTitle, e.MaritalStatus, e.Gender))
	return updated, mapErr(err)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case repositories.IsUniqueViolation(err):
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
