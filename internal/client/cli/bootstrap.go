package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/hrconsole/internal/client/client"
	"github.com/dmitrijs2005/hrconsole/internal/client/config"
	"github.com/dmitrijs2005/hrconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hrconsole/internal/client/services"
	"github.com/dmitrijs2005/hrconsole/internal/client/session"
	"github.com/dmitrijs2005/hrconsole/internal/filex"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

const cvDownloadTimeout = 2 * time.Minute

// NewApp opens the session backend selected by c and wires the store, the
// gateway and the services into a console.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	repo, notifier, closeFn, err := openStore(ctx, c, log)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(repo, notifier, log)

	gw := client.NewGateway(c.APIBaseURL, store,
		client.WithLogger(log),
		client.WithTimeout(c.RequestTimeout),
		client.WithCoalescedRefresh(c.CoalesceRefresh),
	)
	api := client.New(gw)

	as := services.NewAuthService(api, store, log, c.LogoutTimeout)
	hs := services.NewHRService(api, &http.Client{Timeout: cvDownloadTimeout})

	app := newApp(c, as, hs, store, log, os.Stdin)
	app.closeFn = closeFn
	return app, nil
}

// openStore returns the metadata repository and its change notifier for the
// configured backend, plus a func releasing the underlying connection.
func openStore(ctx context.Context, c *config.Config, log logging.Logger) (metadata.Repository, metadata.Notifier, func() error, error) {
	switch c.StoreKind {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, nil, errors.Join(fmt.Errorf("connect to redis at %s: %w", c.RedisAddr, err), rdb.Close())
		}
		log.Debug(ctx, "session store", "backend", c.StoreKind, "addr", c.RedisAddr, "prefix", c.RedisPrefix)
		return metadata.NewRedisRepository(rdb, c.RedisPrefix), metadata.NewRedisNotifier(rdb, c.RedisPrefix), rdb.Close, nil

	case config.StoreSQLite:
		path, err := filex.EnsureParentDir(c.DatabasePath)
		if err != nil {
			return nil, nil, nil, err
		}
		db, err := client.InitDatabase(ctx, path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open session database %s: %w", path, err)
		}
		log.Debug(ctx, "session store", "backend", c.StoreKind, "path", path)
		return metadata.NewSQLiteRepository(db), metadata.NewFileNotifier(path, log), db.Close, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store kind %q", c.StoreKind)
}
