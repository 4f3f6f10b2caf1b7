package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

// CreatePaymentRequest records money received. Date defaults to today.
type CreatePaymentRequest struct {
	StudentID     string          `json:"student_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod *string         `json:"payment_method,omitempty" validate:"omitempty,max=50"`
	Date          types.Date      `json:"date"`
	Notes         *string         `json:"notes,omitempty"`
}

type PaymentResponse struct {
	*payment.Payment
}

type ListPaymentsResponse = types.ListResponse[*PaymentResponse]

func (r *CreatePaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreatePaymentRequest) ToPayment(today types.Date) *payment.Payment {
	date := r.Date
	if date.IsZero() {
		date = today
	}
	return &payment.Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		StudentID:     r.StudentID,
		Amount:        r.Amount,
		PaymentMethod: blankToNil(r.PaymentMethod),
		Date:          date,
		Notes:         blankToNil(r.Notes),
		BaseModel:     types.GetDefaultBaseModel(),
	}
}
