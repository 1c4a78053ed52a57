package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/client/session"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	LoginRet    models.Tokens
	LoginErr    error
	RegisterRet models.Tokens
	RegisterErr error
	LogoutErr   error
	LogoutBlock bool
	MeRet       *models.Profile
	MeErr       error

	Openings     []models.Opening
	OpeningRet   *models.Opening
	EmployeeRet  *models.Employee
	Candidates   []models.Candidate
	CVURL        string
	CVErr        error
	GenericErr   error
	ListEmpRet   []models.Employee
	DeleteCalled int

	LastLoginEmail    string
	LastLoginPassword string
	LastRegister      models.RegisterRequest
	LastLogoutToken   string
	LogoutCalls       int
	MeCalls           int
	LastOpeningInput  models.OpeningInput
	LastOpeningPatch  models.OpeningPatch
	UpdateCalls       int
	LastCVName        string
}

func (f *fakeClient) Login(_ context.Context, email, password string) (models.Tokens, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (models.Tokens, error) {
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Logout(ctx context.Context, refreshToken string) error {
	f.LogoutCalls++
	f.LastLogoutToken = refreshToken
	if f.LogoutBlock {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.LogoutErr
}

func (f *fakeClient) Me(context.Context) (*models.Profile, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) ListOpenings(context.Context) ([]models.Opening, error) {
	return f.Openings, f.GenericErr
}

func (f *fakeClient) GetOpening(context.Context, int) (*models.Opening, error) {
	return f.OpeningRet, f.GenericErr
}

func (f *fakeClient) CreateOpening(_ context.Context, in models.OpeningInput) (*models.Opening, error) {
	f.LastOpeningInput = in
	return f.OpeningRet, f.GenericErr
}

func (f *fakeClient) UpdateOpening(_ context.Context, _ int, patch models.OpeningPatch) (*models.Opening, error) {
	f.UpdateCalls++
	f.LastOpeningPatch = patch
	return f.OpeningRet, f.GenericErr
}

func (f *fakeClient) DeleteOpening(context.Context, int) error {
	f.DeleteCalled++
	return f.GenericErr
}

func (f *fakeClient) ListEmployees(context.Context) ([]models.Employee, error) {
	return f.ListEmpRet, f.GenericErr
}

func (f *fakeClient) GetEmployee(context.Context, int) (*models.Employee, error) {
	return f.EmployeeRet, f.GenericErr
}

func (f *fakeClient) CreateEmployee(_ context.Context, e models.Employee) (*models.Employee, error) {
	return &e, f.GenericErr
}

func (f *fakeClient) UpdateEmployee(context.Context, int, models.EmployeePatch) (*models.Employee, error) {
	f.UpdateCalls++
	return f.EmployeeRet, f.GenericErr
}

func (f *fakeClient) ListCandidates(context.Context, int) ([]models.Candidate, error) {
	return f.Candidates, f.GenericErr
}

func (f *fakeClient) CandidateCVURL(_ context.Context, fileName string) (string, error) {
	f.LastCVName = fileName
	return f.CVURL, f.CVErr
}

type memStore struct {
	mu     sync.Mutex
	sess   session.Session
	clears int
}

func (m *memStore) Read(context.Context) (session.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess.AccessToken == "" {
		return session.Session{}, false
	}
	return m.sess, true
}

func (m *memStore) RefreshToken(context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.RefreshToken, m.sess.RefreshToken != ""
}

func (m *memStore) Write(_ context.Context, a, r string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = session.Session{AccessToken: a, RefreshToken: r}
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = session.Session{}
	m.clears++
	return nil
}
