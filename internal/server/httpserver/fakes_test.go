package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
	"github.com/dmitrijs2005/hrconsole/internal/server/auth"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

const testSecret = "test-secret"

type fakeUsers struct {
	pair *models.TokenPair
	err  error

	gotEmail, gotPassword string
	gotReg                *models.Registration
	gotRefresh            string
	logoutCalls           int

	profile *models.Profile
	meErr   error
	meID    string
}

func (f *fakeUsers) Register(_ context.Context, reg models.Registration) (*models.TokenPair, error) {
	f.gotReg = &reg
	return f.pair, f.err
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*models.TokenPair, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.pair, f.err
}

func (f *fakeUsers) RefreshToken(_ context.Context, token string) (*models.TokenPair, error) {
	f.gotRefresh = token
	return f.pair, f.err
}

func (f *fakeUsers) Logout(_ context.Context, token string) error {
	f.gotRefresh = token
	f.logoutCalls++
	return f.err
}

func (f *fakeUsers) Me(_ context.Context, id string) (*models.Profile, error) {
	f.meID = id
	return f.profile, f.meErr
}

type fakeHR struct {
	err error

	openings []models.Opening
	opening  *models.Opening
	gotID    int
	input    *models.OpeningInput
	patch    *models.OpeningPatch
	deleted  int

	employees   []models.Employee
	employee    *models.Employee
	newEmployee *models.Employee
	empPatch    *models.EmployeePatch

	candidates []models.Candidate
}

func (f *fakeHR) ListOpenings(context.Context) ([]models.Opening, error) { return f.openings, f.err }

func (f *fakeHR) GetOpening(_ context.Context, id int) (*models.Opening, error) {
	f.gotID = id
	return f.opening, f.err
}

func (f *fakeHR) CreateOpening(_ context.Context, in models.OpeningInput) (*models.Opening, error) {
	f.input = &in
	return f.opening, f.err
}

func (f *fakeHR) UpdateOpening(_ context.Context, id int, p models.OpeningPatch) (*models.Opening, error) {
	f.gotID, f.patch = id, &p
	return f.opening, f.err
}

func (f *fakeHR) DeleteOpening(_ context.Context, id int) error {
	f.deleted = id
	return f.err
}

func (f *fakeHR) ListEmployees(context.Context) ([]models.Employee, error) { return f.employees, f.err }

func (f *fakeHR) GetEmployee(_ context.Context, id int) (*models.Employee, error) {
	f.gotID = id
	return f.employee, f.err
}

func (f *fakeHR) CreateEmployee(_ context.Context, e models.Employee) (*models.Employee, error) {
	f.newEmployee = &e
	return f.employee, f.err
}

func (f *fakeHR) UpdateEmployee(_ context.Context, id int, p models.EmployeePatch) (*models.Employee, error) {
	f.gotID, f.empPatch = id, &p
	return f.employee, f.err
}

func (f *fakeHR) ListCandidates(_ context.Context, id int) ([]models.Candidate, error) {
	f.gotID = id
	return f.candidates, f.err
}

type fakeCV struct {
	name string
	link *models.CVLink
	err  error
}

func (f *fakeCV) PresignedURL(_ context.Context, name string) (*models.CVLink, error) {
	f.name = name
	return f.link, f.err
}

type testEnv struct {
	users  *fakeUsers
	hr     *fakeHR
	cv     *fakeCV
	reader *sdkmetric.ManualReader
	srv    *Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	e := &testEnv{users: &fakeUsers{}, hr: &fakeHR{}, cv: &fakeCV{}, reader: reader}
	e.srv = NewServer("127.0.0.1:0", logging.Discard(), e.users, e.hr, e.cv, testSecret, mp)
	return e
}

// do sends a request through the full handler chain. token may be empty.
func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, sub string, roles ...string) string {
	t.Helper()
	tok, err := auth.GenerateToken(sub, roles, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return tok
}

func intPtr(v int) *int { return &v }

func tokenWithSecret(sub, secret string) (string, error) {
	return auth.GenerateToken(sub, []string{common.RoleHR}, []byte(secret), time.Minute)
}

func expiredToken(sub string) (string, error) {
	return auth.GenerateToken(sub, []string{common.RoleHR}, []byte(testSecret), -time.Minute)
}
