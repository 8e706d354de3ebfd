package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/pkg/db/redis"
)

func newTestConfig(t *testing.T) *redis.Config {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	client, err := redis.NewClient(ctx, newTestConfig(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, client.Close()) }()

	_, err = client.Get(ctx, "missing")
	require.ErrorIs(t, err, redis.ErrKeyNotFound)

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))
	value, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(value))

	n, err := client.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = client.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, client.Delete(ctx, "k"))
	_, err = client.Get(ctx, "k")
	require.ErrorIs(t, err, redis.ErrKeyNotFound)
}

func TestNewClient_ConnectionFailure(t *testing.T) {
	cfg := redis.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.Timeout = 100 * time.Millisecond

	client, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
}
