package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/dbx"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/employees"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/openings"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	created   []*models.User
	createErr error
	getErr    error

	rolesSet map[string][]string
}

func newFakeUsersRepo(list ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}, rolesSet: map[string][]string{}}
	for _, u := range list {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "u-new"
	u.CreatedAt = time.Now()
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) SetRoles(_ context.Context, id string, roles []string) error {
	f.rolesSet[id] = roles
	return nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	deleted []string
	missing bool
	delErr  error

	createdFor []string
	createErr  error

	purgedBefore time.Time
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, _ string, _ time.Duration) error {
	f.createdFor = append(f.createdFor, userID)
	return f.createErr
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) (bool, error) {
	if f.delErr != nil {
		return false, f.delErr
	}
	f.deleted = append(f.deleted, token)
	return !f.missing, nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.purgedBefore = now
	return 2, nil
}

type fakeOpeningsRepo struct {
	items     map[int]*models.Opening
	created   *models.OpeningInput
	updated   *models.Opening
	deleted   int
	updateErr error
}

func (f *fakeOpeningsRepo) List(context.Context) ([]models.Opening, error) {
	out := []models.Opening{}
	for _, o := range f.items {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOpeningsRepo) Get(_ context.Context, id int) (*models.Opening, error) {
	if o, ok := f.items[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOpeningsRepo) Create(_ context.Context, in models.OpeningInput) (*models.Opening, error) {
	f.created = &in
	return &models.Opening{OpeningID: 10, JobTitle: in.JobTitle, Description: in.Description, OpenFlag: true}, nil
}

func (f *fakeOpeningsRepo) Update(_ context.Context, o *models.Opening) (*models.Opening, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = o
	return o, nil
}

func (f *fakeOpeningsRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	f.deleted = id
	return nil
}

type fakeEmployeesRepo struct {
	items   map[int]*models.Employee
	created *models.Employee
	updated *models.Employee
}

func (f *fakeEmployeesRepo) List(context.Context) ([]models.Employee, error) {
	out := []models.Employee{}
	for _, e := range f.items {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeesRepo) Get(_ context.Context, id int) (*models.Employee, error) {
	if e, ok := f.items[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeEmployeesRepo) Create(_ context.Context, e models.Employee) (*models.Employee, error) {
	f.created = &e
	e.BusinessEntityID = 300
	return &e, nil
}

func (f *fakeEmployeesRepo) Update(_ context.Context, e *models.Employee) (*models.Employee, error) {
	f.updated = e
	return e, nil
}

type fakeCandidatesRepo struct {
	list    []models.Candidate
	resumes map[string]bool
	err     error
}

func (f *fakeCandidatesRepo) ListByOpening(context.Context, int) ([]models.Candidate, error) {
	return f.list, f.err
}

func (f *fakeCandidatesRepo) ResumeExists(_ context.Context, name string) (bool, error) {
	return f.resumes[name], f.err
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	o *fakeOpeningsRepo
	e *fakeEmployeesRepo
	c *fakeCandidatesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Openings(dbx.DBTX) openings.Repository           { return m.o }
func (m *fakeRepoManager) Employees(dbx.DBTX) employees.Repository         { return m.e }
func (m *fakeRepoManager) Candidates(dbx.DBTX) candidates.Repository       { return m.c }
