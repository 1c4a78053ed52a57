package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/hrconsole/internal/dbx"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/repomanager"
)

// HRService serves openings, employees and candidate listings. Inputs are
// normalized and validated here; invalid ones fail with common.ErrorValidation.
type HRService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHRService(db *sql.DB, m repomanager.RepositoryManager) *HRService {
	return &HRService{db: db, repomanager: m}
}

func (s *HRService) ListOpenings(ctx context.Context) ([]models.Opening, error) {
	return s.repomanager.Openings(s.db).List(ctx)
}

func (s *HRService) GetOpening(ctx context.Context, id int) (*models.Opening, error) {
	return s.repomanager.Openings(s.db).Get(ctx, id)
}

func (s *HRService) CreateOpening(ctx context.Context, in models.OpeningInput) (*models.Opening, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Openings(s.db).Create(ctx, in)
}

// UpdateOpening applies patch to opening id within one transaction.
func (s *HRService) UpdateOpening(ctx context.Context, id int, patch models.OpeningPatch) (*models.Opening, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var out *models.Opening
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Openings(tx)
		o, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(o)
		out, err = repo.Update(ctx, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HRService) DeleteOpening(ctx context.Context, id int) error {
	return s.repomanager.Openings(s.db).Delete(ctx, id)
}

func (s *HRService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.repomanager.Employees(s.db).List(ctx)
}

func (s *HRService) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return s.repomanager.Employees(s.db).Get(ctx, id)
}

func (s *HRService) CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Employees(s.db).Create(ctx, e)
}

func (s *HRService) UpdateEmployee(ctx context.Context, id int, patch models.EmployeePatch) (*models.Employee, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var out *models.Employee
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Employees(tx)
		e, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(e)
		out, err = repo.Update(ctx, e)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCandidates returns the applications to opening id. An unknown opening
// yields common.ErrorNotFound rather than an empty list.
func (s *HRService) ListCandidates(ctx context.Context, openingID int) ([]models.Candidate, error) {
	if _, err := s.repomanager.Openings(s.db).Get(ctx, openingID); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Candidates(s.db).ListByOpening(ctx, openingID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return list, nil
}
