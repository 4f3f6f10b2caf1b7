package invoice

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create stores a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID, with the student name joined in
	Get(ctx context.Context, id string) (*Invoice, error)

	// List retrieves invoices newest first based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices based on filter criteria
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)

	// SumBalance returns the sum of the balances of every stored invoice
	SumBalance(ctx context.Context) (decimal.Decimal, error)

	// Delete removes an invoice
	Delete(ctx context.Context, id string) error
}
