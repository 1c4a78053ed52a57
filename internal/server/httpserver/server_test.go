package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

// counterValue sums the data points of an int64 counter that carry attrs.
func counterValue(t *testing.T, e *testEnv, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, e.reader.Collect(context.Background(), &rm))

	want := attribute.NewSet(attrs...)
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if dp.Attributes.Equals(&want) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestMetrics_AuthAttempts(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, http.MethodPost, "/api/v1/Auth/login", "", `{}`)
	e.users.err = common.ErrorUnauthorized
	e.do(t, http.MethodPost, "/api/v1/Auth/login", "", `{}`)
	e.do(t, http.MethodPost, "/api/v1/Auth/refresh", "", `{}`)

	assert.EqualValues(t, 1, counterValue(t, e, "auth.attempts",
		attribute.String("op", "login"), attribute.String("outcome", "success")))
	assert.EqualValues(t, 1, counterValue(t, e, "auth.attempts",
		attribute.String("op", "login"), attribute.String("outcome", "failure")))
	assert.EqualValues(t, 1, counterValue(t, e, "auth.attempts",
		attribute.String("op", "refresh"), attribute.String("outcome", "failure")))
}

func TestMetrics_TokenValidations(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, http.MethodGet, "/api/v1/Auth/me", "", "")
	e.do(t, http.MethodGet, "/api/v1/Auth/me", "junk", "")
	e.do(t, http.MethodGet, "/api/v1/Auth/me", tokenFor(t, "u-1", common.RoleHR), "")

	for _, result := range []string{"missing", "invalid", "valid"} {
		assert.EqualValues(t, 1, counterValue(t, e, "auth.access_token.validations",
			attribute.String("result", result)), result)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	e := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- e.srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	srv := NewServer("bad::addr::", logging.Discard(), &fakeUsers{}, &fakeHR{}, &fakeCV{}, testSecret, nil)
	require.Error(t, srv.Run(context.Background()))
}

func TestStatusFor_Default(t *testing.T) {
	code, msg := statusFor(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", msg)
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(common.RequestIDHeaderName, "abc-123")
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(common.RequestIDHeaderName))

	rec = e.do(t, http.MethodGet, "/health/live", "", "")
	_, err := uuid.Parse(rec.Header().Get(common.RequestIDHeaderName))
	assert.NoError(t, err)
}
