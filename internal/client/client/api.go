package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
)

// Client is the typed HR API used by the console services.
type Client interface {
	Login(ctx context.Context, email, password string) (models.Tokens, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*models.Profile, error)

	ListOpenings(ctx context.Context) ([]models.Opening, error)
	GetOpening(ctx context.Context, id int) (*models.Opening, error)
	CreateOpening(ctx context.Context, in models.OpeningInput) (*models.Opening, error)
	UpdateOpening(ctx context.Context, id int, patch models.OpeningPatch) (*models.Opening, error)
	DeleteOpening(ctx context.Context, id int) error

	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, patch models.EmployeePatch) (*models.Employee, error)

	ListCandidates(ctx context.Context, openingID int) ([]models.Candidate, error)
	CandidateCVURL(ctx context.Context, fileName string) (string, error)
}

// HTTPClient implements Client on top of a Gateway.
type HTTPClient struct {
	gw *Gateway
}

var _ Client = (*HTTPClient)(nil)

func New(gw *Gateway) *HTTPClient {
	return &HTTPClient{gw: gw}
}

var errNoTokens = errors.New("server returned no access token")

func (c *HTTPClient) tokens(ctx context.Context, path string, body any) (models.Tokens, error) {
	var t models.Tokens
	if err := c.gw.DoJSON(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, &t); err != nil {
		return models.Tokens{}, err
	}
	if t.AccessToken == "" {
		return models.Tokens{}, errNoTokens
	}
	return t, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Tokens, error) {
	return c.tokens(ctx, "/Auth/login", map[string]string{"email": email, "password": password})
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (models.Tokens, error) {
	return c.tokens(ctx, "/Auth/register", req)
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	_, err := c.gw.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/Auth/logout",
		Body:   map[string]string{"refreshToken": refreshToken},
	})
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	raw, err := c.gw.Do(ctx, Request{Method: http.MethodGet, Path: "/Auth/me"})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (c *HTTPClient) ListOpenings(ctx context.Context) ([]models.Opening, error) {
	var out []models.Opening
	err := c.gw.DoJSON(ctx, Request{Method: http.MethodGet, Path: "/Opening"}, &out)
	return out, err
}

func (c *HTTPClient) GetOpening(ctx context.Context, id int) (*models.Opening, error) {
	return one[models.Opening](ctx, c.gw, Request{Method: http.MethodGet, Path: fmt.Sprintf("/Opening/%d", id)})
}

func (c *HTTPClient) CreateOpening(ctx context.Context, in models.OpeningInput) (*models.Opening, error) {
	return one[models.Opening](ctx, c.gw, Request{Method: http.MethodPost, Path: "/Opening", Body: in})
}

func (c *HTTPClient) UpdateOpening(ctx context.Context, id int, patch models.OpeningPatch) (*models.Opening, error) {
	return one[models.Opening](ctx, c.gw, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/Opening/%d", id), Body: patch})
}

func (c *HTTPClient) DeleteOpening(ctx context.Context, id int) error {
	_, err := c.gw.Do(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/Opening/%d", id)})
	return err
}

func (c *HTTPClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := c.gw.DoJSON(ctx, Request{Method: http.MethodGet, Path: "/Employee"}, &out)
	return out, err
}

func (c *HTTPClient) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return one[models.Employee](ctx, c.gw, Request{Method: http.MethodGet, Path: fmt.Sprintf("/Employee/%d", id)})
}

func (c *HTTPClient) CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error) {
	return one[models.Employee](ctx, c.gw, Request{Method: http.MethodPost, Path: "/Employee", Body: e})
}

func (c *HTTPClient) UpdateEmployee(ctx context.Context, id int, patch models.EmployeePatch) (*models.Employee, error) {
	return one[models.Employee](ctx, c.gw, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/Employee/%d", id), Body: patch})
}

func (c *HTTPClient) ListCandidates(ctx context.Context, openingID int) ([]models.Candidate, error) {
	var out []models.Candidate
	err := c.gw.DoJSON(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/Opening/%d/Candidates", openingID)}, &out)
	return out, err
}

// CandidateCVURL asks the API for a short-lived download URL of a stored CV.
func (c *HTTPClient) CandidateCVURL(ctx context.Context, fileName string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := "/Candidate/cv/" + url.PathEscape(fileName)
	if err := c.gw.DoJSON(ctx, Request{Method: http.MethodGet, Path: path}, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("no download URL for %q", fileName)
	}
	return out.URL, nil
}

// one decodes a single object; an empty 2xx body yields (nil, nil).
func one[T any](ctx context.Context, gw *Gateway, req Request) (*T, error) {
	raw, err := gw.Do(ctx, req)
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return &v, nil
}
