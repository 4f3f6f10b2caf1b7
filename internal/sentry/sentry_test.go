package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/logger"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	svc := NewSentryService(&config.Configuration{}, logger.NewNopLogger())

	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Init())

	svc.CaptureException(context.Background(), errors.New("boom"), nil)
}

func TestEnabledRequiresDSN(t *testing.T) {
	cfg := &config.Configuration{Sentry: config.SentryConfig{Enabled: true}}
	assert.False(t, NewSentryService(cfg, logger.NewNopLogger()).Enabled())

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
}
