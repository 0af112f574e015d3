package logger

import (
	"testing"

	"github.com/deppfellow/drinks/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level zerolog.Level
		want  tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		assert.Equal(t, int(tt.want), GetPgxTraceLogLevel(tt.level), tt.level.String())
	}
}

func TestNewLoggerService_WithoutLicenseKey(t *testing.T) {
	t.Parallel()

	service, err := NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)
	assert.Nil(t, service.GetApplication())

	// Shutdown on a disabled service must be safe.
	service.Shutdown()
}

func TestNewLogger_UsesConfiguredLevel(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := NewLogger(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	t.Parallel()

	base := zerolog.Nop()
	got := WithTraceContext(base, nil)
	assert.Equal(t, base.GetLevel(), got.GetLevel())
}
