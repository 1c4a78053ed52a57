package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/hrconsole/internal/client/client"
	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/filex"
	"github.com/dmitrijs2005/hrconsole/internal/netx"
)

var ErrNothingToUpdate = errors.New("nothing to update")

// HRService covers openings, employees and candidates.
type HRService interface {
	ListOpenings(ctx context.Context) ([]models.Opening, error)
	GetOpening(ctx context.Context, id int) (*models.Opening, error)
	CreateOpening(ctx context.Context, title, description string) (*models.Opening, error)
	UpdateOpening(ctx context.Context, id int, patch models.OpeningPatch) (*models.Opening, error)
	DeleteOpening(ctx context.Context, id int) error

	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, patch models.EmployeePatch) (*models.Employee, error)

	ListCandidates(ctx context.Context, openingID int) ([]models.Candidate, error)
	DownloadCV(ctx context.Context, fileName, destDir string) (string, error)
}

type hrService struct {
	client client.Client
	// downloads bypass the gateway: presigned URLs must not get a bearer header
	download *http.Client
}

func NewHRService(c client.Client, download *http.Client) HRService {
	return &hrService{client: c, download: download}
}

func (s *hrService) ListOpenings(ctx context.Context) ([]models.Opening, error) {
	return s.client.ListOpenings(ctx)
}

func (s *hrService) GetOpening(ctx context.Context, id int) (*models.Opening, error) {
	return s.client.GetOpening(ctx, id)
}

func (s *hrService) CreateOpening(ctx context.Context, title, description string) (*models.Opening, error) {
	in := models.NewOpeningInput(title, description)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.client.CreateOpening(ctx, in)
}

func (s *hrService) UpdateOpening(ctx context.Context, id int, patch models.OpeningPatch) (*models.Opening, error) {
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.client.UpdateOpening(ctx, id, patch)
}

func (s *hrService) DeleteOpening(ctx context.Context, id int) error {
	return s.client.DeleteOpening(ctx, id)
}

func (s *hrService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.client.ListEmployees(ctx)
}

func (s *hrService) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return s.client.GetEmployee(ctx, id)
}

func (s *hrService) CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error) {
	if strings.TrimSpace(e.NationalIDNumber) == "" || strings.TrimSpace(e.JobTitle) == "" {
		return nil, errors.New("national ID number and job title are required")
	}
	return s.client.CreateEmployee(ctx, e)
}

func (s *hrService) UpdateEmployee(ctx context.Context, id int, patch models.EmployeePatch) (*models.Employee, error) {
	if patch.JobTitle == nil && patch.MaritalStatus == nil && patch.Gender == nil {
		return nil, ErrNothingToUpdate
	}
	return s.client.UpdateEmployee(ctx, id, patch)
}

func (s *hrService) ListCandidates(ctx context.Context, openingID int) ([]models.Candidate, error) {
	return s.client.ListCandidates(ctx, openingID)
}

// DownloadCV resolves a presigned URL for fileName through the API and saves
// the file into destDir. It returns the written path.
func (s *hrService) DownloadCV(ctx context.Context, fileName, destDir string) (string, error) {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	u, err := s.client.CandidateCVURL(ctx, fileName)
	if err != nil {
		return "", err
	}

	data, err := netx.DownloadPresignedURL(ctx, s.download, u)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", name, err)
	}

	path, err := filex.EnsureParentDir(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
