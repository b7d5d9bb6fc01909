package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/lawfirm-api/internal/config"
)

func TestLoggerConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		env       string
		wantLevel zapcore.Level
		wantDev   bool
	}{
		{name: "debug in development", level: "DEBUG", env: config.EnvDevelopment, wantLevel: zapcore.DebugLevel, wantDev: true},
		{name: "unknown level", level: "chatty", env: config.EnvDevelopment, wantLevel: zapcore.InfoLevel, wantDev: true},
		{name: "production", level: "warn", env: config.EnvProduction, wantLevel: zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loggerConfig(config.LoggerConfig{Level: tt.level}, tt.env)
			assert.Equal(t, tt.wantLevel, cfg.Level.Level())
			assert.Equal(t, tt.wantDev, cfg.Development)
			assert.Equal(t, !tt.wantDev, cfg.Sampling != nil)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "info"}, config.EnvDevelopment)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
