package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/client/session"
	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

const refreshPath = "/Auth/refresh"

var errNoRefreshToken = errors.New("no refresh token stored")

// TokenStore is the part of session.Store the gateway needs.
type TokenStore interface {
	Read(ctx context.Context) (session.Session, bool)
	RefreshToken(ctx context.Context) (string, bool)
	Write(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}

// Request describes one API call. Path is relative to the base URL.
// Body, when non-nil, is sent as JSON; json.RawMessage and []byte are sent as is.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

type Option func(*Gateway)

func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) { g.hc = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(g *Gateway) { g.metrics = newGatewayMetrics(mp) }
}

// WithTimeout bounds every Do call, refresh and retry included. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithCoalescedRefresh makes concurrent 401s holding the same refresh token
// share a single refresh call. Off by default: every request that sees a
// 401 refreshes on its own.
func WithCoalescedRefresh(on bool) Option {
	return func(g *Gateway) { g.coalesce = on }
}

// Gateway is the single path from the console to the HR API. It attaches
// the stored bearer token and, on a 401, refreshes the session once and
// resends the request once.
type Gateway struct {
	baseURL string
	hc      *http.Client
	store   TokenStore
	log     logging.Logger
	metrics *gatewayMetrics
	timeout time.Duration

	coalesce     bool
	refreshGroup singleflight.Group
}

func NewGateway(baseURL string, store TokenStore, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.hc == nil {
		g.hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if g.log == nil {
		g.log = logging.Discard()
	}
	if g.metrics == nil {
		g.metrics = newGatewayMetrics(nil)
	}
	return g
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// result turns a final response into the caller's outcome. An empty or
// JSON null 2xx body is a nil result.
func (r *response) result() (json.RawMessage, error) {
	if !r.ok() {
		return nil, newAPIError(r.status, r.body)
	}
	body := bytes.TrimSpace(r.body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode response: status %d: body is not JSON", r.status)
	}
	return json.RawMessage(body), nil
}

// Do sends req and returns the JSON body of a 2xx response.
//
// Errors: ErrUnavailable for transport failures, ErrUnauthorized when a 401
// could not be recovered (the session has been cleared), *APIError for any
// other non-2xx status, including a 401 on the retried request.
func (g *Gateway) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	payload, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	sess, _ := g.store.Read(ctx)
	resp, err := g.send(ctx, req, payload, sess.AccessToken, false)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusUnauthorized {
		return resp.result()
	}

	accessToken, err := g.refresh(ctx)
	if err != nil {
		return nil, g.deauthorize(ctx, err)
	}

	// the retry's outcome is final, whatever it is
	resp, err = g.send(ctx, req, payload, accessToken, true)
	if err != nil {
		return nil, err
	}
	return resp.result()
}

// DoJSON is Do followed by decoding into out. A nil result leaves out untouched.
func (g *Gateway) DoJSON(ctx context.Context, req Request, out any) error {
	raw, err := g.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return payload, nil
	}
}

func (g *Gateway) send(ctx context.Context, req Request, payload []byte, accessToken string, retry bool) (*response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, g.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, req.Path, err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if payload != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if httpReq.Header.Get(common.RequestIDHeaderName) == "" {
		httpReq.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	// set last: the stored token always wins over a caller header
	if accessToken != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+accessToken)
	}

	resp, err := g.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, req.Path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response of %s %s: %w", ErrUnavailable, method, req.Path, err)
	}

	g.metrics.recordRequest(ctx, method, resp.StatusCode, retry)
	g.log.Debug(ctx, "api call", "method", method, "path", req.Path, "status", resp.StatusCode, "retry", retry,
		"request_id", httpReq.Header.Get(common.RequestIDHeaderName))

	return &response{status: resp.StatusCode, body: b}, nil
}

// refresh exchanges the stored refresh token for a new pair, stores it and
// returns the new access token.
func (g *Gateway) refresh(ctx context.Context) (string, error) {
	refreshToken, ok := g.store.RefreshToken(ctx)
	if !ok {
		g.metrics.recordRefresh(ctx, "absent")
		return "", errNoRefreshToken
	}

	if !g.coalesce {
		return g.refreshWith(ctx, refreshToken)
	}

	// one caller's cancellation must not fail the others sharing the call
	sharedCtx := context.WithoutCancel(ctx)
	v, err, _ := g.refreshGroup.Do(refreshToken, func() (any, error) {
		return g.refreshWith(sharedCtx, refreshToken)
	})
	return v.(string), err
}

func (g *Gateway) refreshWith(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", err
	}

	resp, err := g.send(ctx, Request{Method: http.MethodPost, Path: refreshPath}, payload, "", false)
	if err != nil {
		g.metrics.recordRefresh(ctx, "unavailable")
		return "", err
	}
	if !resp.ok() {
		g.metrics.recordRefresh(ctx, "rejected")
		return "", newAPIError(resp.status, resp.body)
	}

	var tokens models.Tokens
	if err := json.Unmarshal(resp.body, &tokens); err != nil || tokens.AccessToken == "" {
		g.metrics.recordRefresh(ctx, "malformed")
		return "", errors.New("refresh response has no access token")
	}
	// a server that does not rotate refresh tokens omits it
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}

	if err := g.store.Write(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		g.log.Warn(ctx, "refreshed session could not be saved", "error", err)
	}

	g.metrics.recordRefresh(ctx, "success")
	g.log.Debug(ctx, "session refreshed")
	return tokens.AccessToken, nil
}

func (g *Gateway) deauthorize(ctx context.Context, cause error) error {
	if err := g.store.Clear(context.WithoutCancel(ctx)); err != nil {
		g.log.Warn(ctx, "failed to clear session", "error", err)
	}

	reason := "refresh_failed"
	if errors.Is(cause, errNoRefreshToken) {
		reason = "no_refresh_token"
	}
	g.metrics.recordDeauthorized(ctx, reason)
	g.log.Info(ctx, "session cleared", "reason", reason, "cause", cause.Error())

	return fmt.Errorf("%w: %v", ErrUnauthorized, cause)
}
