package payment

import (
	"github.com/shopspring/decimal"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Payment is money received from a student (or their parent) on a date
type Payment struct {
	ID            string          `db:"id" json:"id"`
	StudentID     string          `db:"student_id" json:"student_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod *string         `db:"payment_method" json:"payment_method"`
	Date          types.Date      `db:"date" json:"date"`
	Notes         *string         `db:"notes" json:"notes"`

	// Read-only display field joined from students
	StudentName string `db:"student_name" json:"student_name,omitempty"`

	types.BaseModel
}

func (p *Payment) Validate() error {
	if p.StudentID == "" {
		return ierr.NewError("student_id is required").
			WithHint("Please select a student").
			Mark(ierr.ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return ierr.NewError("payment amount must be positive").
			WithHint("Payment amount must be greater than zero").
			WithReportableDetails(map[string]any{
				"amount": p.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if p.Date.IsZero() {
		return ierr.NewError("payment date is required").
			WithHint("Payment date is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
