package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging_DefaultsToNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("no init yet", "key", "value")
	})
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	err := Init("development", "loud")
	require.Error(t, err)
}

func TestInit_Production(t *testing.T) {
	require.NoError(t, Init("production", "warn"))
	assert.False(t, GetLogger().Desugar().Core().Enabled(zap.InfoLevel))
	assert.True(t, GetLogger().Desugar().Core().Enabled(zap.WarnLevel))
}

func TestWithRequest_AddsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	WithRequest("req-1", "alice@example.com", "/patients/").Infow("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "alice@example.com", fields["user"])
	assert.Equal(t, "/patients/", fields["endpoint"])
}
