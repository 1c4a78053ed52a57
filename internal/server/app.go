// Package server wires configuration, storage and services into the hrapi
// process and runs it until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/hrconsole/internal/logging"
	"github.com/dmitrijs2005/hrconsole/internal/server/config"
	"github.com/dmitrijs2005/hrconsole/internal/server/httpserver"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hrconsole/internal/server/services"
)

const defaultPurgeInterval = time.Hour

var (
	openDB         = repomanager.OpenDB
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	httpServer    *httpserver.Server
	purgeInterval time.Duration
}

// NewApp connects to PostgreSQL, applies migrations and builds the services.
// When an HR account is configured it is created or promoted here.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, errors.Join(fmt.Errorf("migrations: %w", err), db.Close())
	}

	us := services.NewUserService(db, rm, c)
	hs := services.NewHRService(db, rm)
	cs := services.NewCVService(db, rm, c)

	if c.HREmail != "" {
		created, err := us.EnsureHRUser(ctx, c.HREmail, c.HRPassword)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("ensure hr account: %w", err), db.Close())
		}
		logger.Info(ctx, "hr account ready", "email", c.HREmail, "created", created)
	}

	srv := httpserver.NewServer(c.ListenAddr, logger, us, hs, cs, c.SecretKey, otel.GetMeterProvider())

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   us,
		httpServer:    srv,
		purgeInterval: defaultPurgeInterval,
	}, nil
}

// Run serves the API and purges expired refresh tokens in the background.
// It returns once ctx is cancelled or either task fails, and closes the
// database on the way out.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.httpServer.Run(ctx)
	})
	g.Go(func() error {
		app.purgeLoop(ctx)
		return nil
	})

	err := g.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}

func (app *App) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(app.purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx)
			if err != nil {
				if ctx.Err() == nil {
					app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				}
				continue
			}
			if n > 0 {
				app.logger.Debug(ctx, "expired refresh tokens purged", "count", n)
			}
		}
	}
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	db := app.db
	app.db = nil
	return db.Close()
}
