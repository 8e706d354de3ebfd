package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range []string{"debug", "info", "warn", "warning", "error", "bogus", ""} {
			t.Run(string(env)+"/"+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}

	t.Run("logging with request id does not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "req-1")
		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug", zap.Int("n", 1))
			log.Info(ctx, "info")
			log.Warn(ctx, "warn")
			log.Error(ctx, "error")
		})
	})

	t.Run("with returns a new instance", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		assert.NotSame(t, log, log.With(zap.String("k", "v")))
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		got, err := logger.FromContext(logger.NewContext(context.Background(), log))
		require.NoError(t, err)
		assert.Same(t, log, got)
	})

	t.Run("missing logger", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("log prefers context over global", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)
		local, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		logger.SetGlobalLogger(global)
		defer logger.SetGlobalLogger(nil)

		assert.Same(t, global, logger.Log(context.Background()))
		assert.Same(t, local, logger.Log(logger.NewContext(context.Background(), local)))
	})

	t.Run("fallback when nothing configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("init global keeps the first logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		defer logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLogger(logger.Production))
		first := logger.Log(context.Background())
		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
		assert.Same(t, first, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("generated id is a uuid v4", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("unsafe incoming id is replaced", func(t *testing.T) {
		for _, raw := range []string{"abc\nlevel=error", "a b", strings.Repeat("x", logger.MaxRequestIDLength+1)} {
			id, ok := logger.GetRequestID(logger.NewRequestIDContext(context.Background(), raw))
			require.True(t, ok)
			assert.NotEqual(t, raw, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err, raw)
		}
	})

	t.Run("validation", func(t *testing.T) {
		assert.True(t, logger.ValidRequestID("req-42"))
		assert.True(t, logger.ValidRequestID("trace_1.2:3"))
		assert.False(t, logger.ValidRequestID(""))
		assert.False(t, logger.ValidRequestID("<script>"))
	})

	t.Run("absent", func(t *testing.T) {
		id, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, id)
	})
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, logger.Production, logger.ParseEnvironment(" Production "))
	assert.Equal(t, logger.Development, logger.ParseEnvironment("development"))
	assert.Equal(t, logger.Development, logger.ParseEnvironment(""))
	assert.Equal(t, logger.Development, logger.ParseEnvironment("staging"))
}
