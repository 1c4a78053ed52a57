package metadata

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisClientForTest(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})
	return server, client
}

func TestRedisRepository_SetGetUsesPrefixedKey(t *testing.T) {
	server, rdb := newRedisClientForTest(t)
	r := NewRedisRepository(rdb, "team1")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "rh.auth", []byte(`{"accessToken":"A"}`)))

	raw, err := server.Get("team1:rh.auth")
	require.NoError(t, err)
	assert.Equal(t, `{"accessToken":"A"}`, raw)

	v, err := r.Get(ctx, "rh.auth")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"accessToken":"A"}`), v)
}

func TestRedisRepository_DefaultPrefix(t *testing.T) {
	server, rdb := newRedisClientForTest(t)
	r := NewRedisRepository(rdb, "")

	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))
	assert.True(t, server.Exists(DefaultRedisPrefix+":k"))
}

func TestRedisRepository_GetMissingReturnsNilNil(t *testing.T) {
	_, rdb := newRedisClientForTest(t)
	r := NewRedisRepository(rdb, "p")

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRedisRepository_DeleteIsIdempotent(t *testing.T) {
	_, rdb := newRedisClientForTest(t)
	r := NewRedisRepository(rdb, "p")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRedisRepository_ServerDownWrapsErrors(t *testing.T) {
	server, rdb := newRedisClientForTest(t)
	r := NewRedisRepository(rdb, "p")
	ctx := context.Background()
	server.Close()

	_, err := r.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete metadata[k]")
}
