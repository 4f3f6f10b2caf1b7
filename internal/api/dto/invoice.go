package dto

import (
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

// GenerateInvoiceRequest asks for an invoice over [StartDate, EndDate].
// A missing bound is taken from the current calendar month.
type GenerateInvoiceRequest struct {
	StudentID string      `json:"student_id" validate:"required"`
	StartDate *types.Date `json:"start_date,omitempty"`
	EndDate   *types.Date `json:"end_date,omitempty"`
}

func (r *GenerateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Period resolves the billing period relative to today. Start after end is
// left for the calculator to reject.
func (r *GenerateInvoiceRequest) Period(today types.Date) types.DateRange {
	period := types.CurrentMonth(today)
	if r.StartDate != nil && !r.StartDate.IsZero() {
		period.Start = *r.StartDate
	}
	if r.EndDate != nil && !r.EndDate.IsZero() {
		period.End = *r.EndDate
	}
	return period
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// InvoicePreviewResponse is a computed invoice that has not been stored
type InvoicePreviewResponse struct {
	*invoice.Result
	StudentName string              `json:"student_name"`
	Status      types.InvoiceStatus `json:"status"`
}

type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// InvoiceDocumentResponse points at an archived document
type InvoiceDocumentResponse struct {
	InvoiceNumber string               `json:"invoice_number"`
	Format        types.DocumentFormat `json:"format"`
	URL           string               `json:"url"`
}

// InvoiceDocument is a rendered invoice ready to be served as an attachment
type InvoiceDocument struct {
	FileName    string
	ContentType string
	Data        []byte
}
