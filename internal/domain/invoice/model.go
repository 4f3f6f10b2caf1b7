package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Invoice is a persisted invoice for one student and billing period
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	StudentID     string              `db:"student_id" json:"student_id"`
	StartDate     types.Date          `db:"start_date" json:"start_date"`
	EndDate       types.Date          `db:"end_date" json:"end_date"`
	TotalAmount   decimal.Decimal     `db:"total_amount" json:"total_amount"`
	PaidAmount    decimal.Decimal     `db:"paid_amount" json:"paid_amount"`
	Balance       decimal.Decimal     `db:"balance" json:"balance"`
	SessionCount  int                 `db:"session_count" json:"session_count"`
	Status        types.InvoiceStatus `db:"status" json:"status"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`

	// Read-only display field joined from students
	StudentName string `db:"student_name" json:"student_name,omitempty"`
}

// Period returns the invoice's billing period
func (i *Invoice) Period() types.DateRange {
	return types.DateRange{Start: i.StartDate, End: i.EndDate}
}

// FromResult builds an unsaved invoice from a computed result
func FromResult(id, number string, r *Result) *Invoice {
	return &Invoice{
		ID:            id,
		InvoiceNumber: number,
		StudentID:     r.StudentID,
		StartDate:     r.Period.Start,
		EndDate:       r.Period.End,
		TotalAmount:   r.TotalAmount,
		PaidAmount:    r.PaidAmount,
		Balance:       r.Balance,
		SessionCount:  r.SessionCount,
		Status:        r.Status(),
		CreatedAt:     time.Now().UTC(),
	}
}

func (i *Invoice) Validate() error {
	if i.InvoiceNumber == "" {
		return NewValidationError("invoice_number", "is required")
	}
	if i.StudentID == "" {
		return NewValidationError("student_id", "is required")
	}
	if i.StartDate.After(i.EndDate) {
		return NewValidationError("end_date", "must be on or after start_date")
	}
	if !i.TotalAmount.Sub(i.PaidAmount).Equal(i.Balance) {
		return NewValidationError("balance", "must equal total_amount - paid_amount")
	}
	return i.Status.Validate()
}
