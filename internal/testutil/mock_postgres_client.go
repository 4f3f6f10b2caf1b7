package testutil

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient runs transactional functions without a database
type MockPostgresClient struct {
	logger *logger.Logger
	// Calls counts WithTx invocations so tests can assert a flow ran in a transaction
	Calls int
}

func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{logger: logger}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.Calls++
	return fn(ctx)
}
