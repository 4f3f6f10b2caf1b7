package document

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	defaultCurrencySymbol = "$"
	defaultDateLayout     = "02/01/2006"
	defaultFooterNote     = "Thank you for your business!"
)

// InvoiceData is everything printed on an exported invoice
type InvoiceData struct {
	InvoiceNumber string              `json:"invoice_number"`
	IssueDate     types.Date          `json:"issue_date"`
	StudentName   string              `json:"student_name"`
	Period        types.DateRange     `json:"period"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	Balance       decimal.Decimal     `json:"balance"`
	SessionCount  int                 `json:"session_count"`
	Status        types.InvoiceStatus `json:"status"`

	// Presentation
	BusinessName   string `json:"business_name,omitempty"`
	CurrencySymbol string `json:"currency_symbol"`
	FooterNote     string `json:"footer_note"`
	DateLayout     string `json:"date_layout"`
}

// NewInvoiceData builds the printable view of a stored invoice issued on issued
func NewInvoiceData(inv *invoice.Invoice, cfg config.InvoiceConfig, issued types.Date) *InvoiceData {
	data := &InvoiceData{
		InvoiceNumber:  inv.InvoiceNumber,
		IssueDate:      issued,
		StudentName:    inv.StudentName,
		Period:         inv.Period(),
		TotalAmount:    inv.TotalAmount,
		PaidAmount:     inv.PaidAmount,
		Balance:        inv.Balance,
		SessionCount:   inv.SessionCount,
		Status:         inv.Status,
		BusinessName:   cfg.BusinessName,
		CurrencySymbol: cfg.CurrencySymbol,
		FooterNote:     cfg.FooterNote,
		DateLayout:     cfg.DateLayout,
	}
	if data.CurrencySymbol == "" {
		data.CurrencySymbol = defaultCurrencySymbol
	}
	if data.FooterNote == "" {
		data.FooterNote = defaultFooterNote
	}
	if data.DateLayout == "" {
		data.DateLayout = defaultDateLayout
	}
	return data
}

// Money formats an amount with the currency symbol and two decimals, half away from zero.
// Negative amounts keep the sign in front of the symbol.
func (d *InvoiceData) Money(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + d.CurrencySymbol + amount.Neg().StringFixed(2)
	}
	return d.CurrencySymbol + amount.StringFixed(2)
}

// FormatDate prints a date with the configured layout
func (d *InvoiceData) FormatDate(date types.Date) string {
	return date.Format(d.DateLayout)
}

// PeriodLabel is the "start - end" line printed under the student
func (d *InvoiceData) PeriodLabel() string {
	return d.FormatDate(d.Period.Start) + " - " + d.FormatDate(d.Period.End)
}

// Line is one label/value row of the document body
type Line struct {
	Label string
	Value string
}

// HeaderLines are the identification rows in print order
func (d *InvoiceData) HeaderLines() []Line {
	return []Line{
		{Label: "Invoice Number", Value: d.InvoiceNumber},
		{Label: "Date", Value: d.FormatDate(d.IssueDate)},
		{Label: "Student", Value: d.StudentName},
		{Label: "Period", Value: d.PeriodLabel()},
	}
}

// AmountLines are the money rows in print order
func (d *InvoiceData) AmountLines() []Line {
	return []Line{
		{Label: "Sessions", Value: strconv.Itoa(d.SessionCount)},
		{Label: "Total Amount", Value: d.Money(d.TotalAmount)},
		{Label: "Amount Paid", Value: d.Money(d.PaidAmount)},
		{Label: "Balance Due", Value: d.Money(d.Balance)},
	}
}
