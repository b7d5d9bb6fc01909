package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/config"
)

func TestNewRedisDisabledWithoutAddr(t *testing.T) {
	r, err := NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestNewRedisConnects(t *testing.T) {
	srv := miniredis.RunT(t)

	r, err := NewRedis(context.Background(), config.RedisConfig{Addr: srv.Addr()}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, r)
	defer r.Close()
	assert.NoError(t, r.Ping(context.Background()))

	srv.Close()
	assert.Error(t, r.Ping(context.Background()))
}

func TestNewRedisUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	r, err := NewRedis(context.Background(), config.RedisConfig{Addr: addr}, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, r)
}
