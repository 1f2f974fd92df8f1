package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/jobs"
	"github.com/sevigo/wizpro/internal/mockreview"
)

func TestNewReviewer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mockCfg := &config.Config{AI: config.AIConfig{LLMProvider: config.ProviderMock}}

	base, err := newProviderReviewer(context.Background(), mockCfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &mockreview.Reviewer{}, base)

	pool, stop, err := NewReviewer(context.Background(), mockCfg, logger)
	require.NoError(t, err)
	out, err := pool.Review(context.Background(), "console.log(1)", core.LanguageJavaScript)
	require.NoError(t, err)
	assert.Contains(t, out, "# Code Review")

	stop()
	_, err = pool.Review(context.Background(), "console.log(1)", core.LanguageJavaScript)
	assert.ErrorIs(t, err, jobs.ErrStopped)

	_, _, err = NewReviewer(context.Background(), &config.Config{AI: config.AIConfig{LLMProvider: config.ProviderGemini}}, logger)
	assert.Error(t, err)
}
