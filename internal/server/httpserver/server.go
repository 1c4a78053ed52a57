// Package httpserver exposes the HR API over HTTP/JSON under /api/v1.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrijs2005/hrconsole/internal/logging"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, reg models.Registration) (*models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (*models.Profile, error)
}

type HRService interface {
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
}

type CVService interface {
	PresignedURL(ctx context.Context, fileName string) (*models.CVLink, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	hr        HRService
	cvs       CVService
	jwtSecret []byte
	metrics   *serverMetrics
}

func NewServer(addr string, l logging.Logger, us UserService, hs HRService, cs CVService, secretKey string, mp metric.MeterProvider) *Server {
	return &Server{
		address:   addr,
		logger:    l.With("module", "http_server"),
		users:     us,
		hr:        hs,
		cvs:       cs,
		jwtSecret: []byte(secretKey),
		metrics:   newServerMetrics(mp),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
