package logger_test

import (
	"context"
	"testing"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/config"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"unknown falls back to info", "loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.NewLogger(
				&config.LoggingConfig{Level: tt.level, Format: "json"},
				&config.AppConfig{Name: "test", Environment: "test"},
			)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			assert.False(t, log.Core().Enabled(tt.want-1))
		})
	}
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)
	fallback := zap.NewNop()

	assert.Same(t, fallback, logger.FromContext(context.Background(), fallback))

	reqLogger := logger.WithRequest(base, "POST", "/api/v1/offers", "req-1")
	ctx := logger.IntoContext(context.Background(), reqLogger)
	logger.WithQuote(logger.FromContext(ctx, fallback), "home-cleaning", "HH-1").Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "home-cleaning", fields["service_type"])
	assert.Equal(t, "HH-1", fields["order_id"])
}
