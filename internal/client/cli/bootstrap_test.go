package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hrconsole/internal/client/config"
	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

func TestOpenStore_SQLiteCreatesProfileFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profiles", "work.db")

	c := &config.Config{StoreKind: config.StoreSQLite, DatabasePath: path}
	repo, notifier, closeFn, err := openStore(ctx, c, logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, notifier)
	t.Cleanup(func() { _ = closeFn() })

	require.NoError(t, repo.Set(ctx, common.SessionStorageKey, []byte(`{"accessToken":"A"}`)))
	got, err := repo.Get(ctx, common.SessionStorageKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"accessToken":"A"}`, string(got))
	require.FileExists(t, path)
}

func TestOpenStore_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c := &config.Config{StoreKind: config.StoreRedis, RedisAddr: mr.Addr(), RedisPrefix: "team"}
	repo, _, closeFn, err := openStore(ctx, c, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	require.NoError(t, repo.Set(ctx, common.SessionStorageKey, []byte("{}")))
	require.True(t, mr.Exists("team:"+common.SessionStorageKey))
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := &config.Config{StoreKind: config.StoreRedis, RedisAddr: addr}
	_, _, _, err := openStore(context.Background(), c, logging.Discard())
	require.ErrorContains(t, err, "connect to redis")
}

func TestOpenStore_UnknownKind(t *testing.T) {
	_, _, _, err := openStore(context.Background(), &config.Config{StoreKind: "etcd"}, logging.Discard())
	require.ErrorContains(t, err, `unknown store kind "etcd"`)
}

func TestNewApp_WiresAndCloses(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabasePath = filepath.Join(t.TempDir(), "hr.db")

	a, err := NewApp(context.Background(), c, nil)
	require.NoError(t, err)
	require.NotNil(t, a.authService)
	require.NotNil(t, a.hrService)
	require.NotNil(t, a.sessions)
	require.False(t, a.hasSession(context.Background()))

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
