package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tutordesk/tutordesk/internal/document"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

var _ document.Generator = (*MockDocumentGenerator)(nil)

type MockDocumentGenerator struct {
	logger *logger.Logger
	mock.Mock
}

// Render implements document.Generator.
func (m *MockDocumentGenerator) Render(ctx context.Context, format types.DocumentFormat, data *document.InvoiceData) ([]byte, error) {
	args := m.Called(ctx, format, data)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func NewMockDocumentGenerator(logger *logger.Logger) *MockDocumentGenerator {
	return &MockDocumentGenerator{
		logger: logger,
	}
}
