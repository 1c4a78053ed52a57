package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/dmitrijs2005/hrconsole/internal/client/config"
	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/client/session"
)

type fakeAuth struct {
	mu sync.Mutex

	session bool
	profile *models.Profile
	meErr   error
	meCalls int

	loginEmail string
	loginPass  string
	loginErr   error

	registered  *models.RegisterRequest
	registerErr error

	logoutCalls int
	logoutErr   error

	info    *models.TokenInfo
	infoErr error
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginEmail, f.loginPass = email, string(password)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.session = true
	return f.profile, nil
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = &req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.session = true
	return f.profile, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.session = false
	return f.logoutErr
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	if !f.session {
		return nil, nil
	}
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.profile, nil
}

func (f *fakeAuth) RefreshUser(ctx context.Context) (*models.Profile, error) {
	return f.CurrentUser(ctx)
}

func (f *fakeAuth) TokenInfo(context.Context) (*models.TokenInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeAuth) HasSession(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

type fakeHR struct {
	openings   []models.Opening
	opening    *models.Opening
	openingErr error
	gotID      int

	created     *models.Opening
	createTitle string
	createDesc  string
	createErr   error

	patch    *models.OpeningPatch
	patchErr error

	deleted   int
	deleteErr error

	employees   []models.Employee
	employee    *models.Employee
	employeeErr error
	newEmployee *models.Employee
	empPatch    *models.EmployeePatch

	candidates []models.Candidate
	cvName     string
	cvDir      string
	cvPath     string
	cvErr      error
}

func (f *fakeHR) ListOpenings(context.Context) ([]models.Opening, error) {
	return f.openings, f.openingErr
}

func (f *fakeHR) GetOpening(_ context.Context, id int) (*models.Opening, error) {
	f.gotID = id
	return f.opening, f.openingErr
}

func (f *fakeHR) CreateOpening(_ context.Context, title, description string) (*models.Opening, error) {
	f.createTitle, f.createDesc = title, description
	return f.created, f.createErr
}

func (f *fakeHR) UpdateOpening(_ context.Context, id int, patch models.OpeningPatch) (*models.Opening, error) {
	f.gotID = id
	f.patch = &patch
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return f.opening, nil
}

func (f *fakeHR) DeleteOpening(_ context.Context, id int) error {
	f.deleted = id
	return f.deleteErr
}

func (f *fakeHR) ListEmployees(context.Context) ([]models.Employee, error) {
	return f.employees, f.employeeErr
}

func (f *fakeHR) GetEmployee(_ context.Context, id int) (*models.Employee, error) {
	f.gotID = id
	return f.employee, f.employeeErr
}

func (f *fakeHR) CreateEmployee(_ context.Context, e models.Employee) (*models.Employee, error) {
	f.newEmployee = &e
	out := e
	out.BusinessEntityID = 300
	return &out, f.employeeErr
}

func (f *fakeHR) UpdateEmployee(_ context.Context, id int, patch models.EmployeePatch) (*models.Employee, error) {
	f.gotID = id
	f.empPatch = &patch
	return f.employee, f.employeeErr
}

func (f *fakeHR) ListCandidates(_ context.Context, openingID int) ([]models.Candidate, error) {
	f.gotID = openingID
	return f.candidates, nil
}

func (f *fakeHR) DownloadCV(_ context.Context, fileName, destDir string) (string, error) {
	f.cvName, f.cvDir = fileName, destDir
	return f.cvPath, f.cvErr
}

type fakeFeed struct {
	events  chan session.Event
	watched chan struct{}
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{events: make(chan session.Event, 4), watched: make(chan struct{})}
}

func (f *fakeFeed) Subscribe() (<-chan session.Event, func()) {
	return f.events, func() {}
}

func (f *fakeFeed) Watch(ctx context.Context) error {
	close(f.watched)
	<-ctx.Done()
	return nil
}

func intPtr(v int) *int { return &v }

func hrProfile() *models.Profile {
	return &models.Profile{Sub: "1", UserName: "ana@example.com", FullName: "Ana HR", Roles: []string{"Employee", "HR"}}
}

func employeeProfile() *models.Profile {
	return &models.Profile{Sub: "2", UserName: "bob@example.com", FullName: "Bob", BusinessEntityID: intPtr(42), Roles: []string{"Employee"}}
}

// newTestApp builds a console over fakes with input fed from lines.
func newTestApp(auth *fakeAuth, hr *fakeHR, lines ...string) *App {
	in := ""
	if len(lines) > 0 {
		in = joinLines(lines)
	}
	a := newApp(&config.Config{DownloadDir: "cvs"}, auth, hr, nil, nil, bytes.NewBufferString(in))
	a.out = &bytes.Buffer{}
	return a
}

func joinLines(lines []string) string {
	var b bytes.Buffer
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
