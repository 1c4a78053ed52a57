package candidates

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hrconsole/internal/dbx"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOpening(ctx context.Context, openingID int) ([]models.Candidate, error) {
	query :=
		`SELECT jc.job_candidate_id, c.id, c.first_name, c.middle_name, c.last_name, c.email,
		        c.phone_number, c.national_id, COALESCE(to_char(c.birth_date, 'YYYY-MM-DD'), ''),
		        c.gender, c.marital_status, jc.comment, c.resume_file
		 FROM job_candidates jc
		 JOIN candidates c ON c.id = jc.candidate_id
		 WHERE jc.opening_id = $1
		 ORDER BY jc.created_at, jc.job_candidate_id
		 `

	rows, err := r.db.QueryContext(ctx, query, openingID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.JobCandidateID, &c.ID, &c.FirstName, &c.MiddleName, &c.LastName, &c.Email,
			&c.PhoneNumber, &c.NationalID, &c.BirthDate, &c.Gender, &c.MaritalStatus, &c.Comment, &c.ResumeFile); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ResumeExists(ctx context.Context, fileName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM candidates WHERE resume_file = $1)`, fileName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
