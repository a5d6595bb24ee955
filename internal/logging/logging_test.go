package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/logging"
)

func TestNew_LevelFiltering(t *testing.T) {
	log := logging.New("warn", "json")
	require.NotNil(t, log)

	ctx := context.Background()
	assert.False(t, log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, log.Enabled(ctx, slog.LevelWarn))
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	log := logging.New("verbose", "text")
	require.NotNil(t, log)

	ctx := context.Background()
	assert.True(t, log.Enabled(ctx, slog.LevelInfo))
	assert.False(t, log.Enabled(ctx, slog.LevelDebug))
}
