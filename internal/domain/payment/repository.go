package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Repository defines the interface for payment persistence operations
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// List returns payments newest date first
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	// Count ignores the filter's limit and offset
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
	// ListByStudent returns every payment of the student regardless of date
	ListByStudent(ctx context.Context, studentID string) ([]*Payment, error)
	// SumAmount totals every payment dated inside the range, bounds included
	SumAmount(ctx context.Context, period types.DateRange) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}
