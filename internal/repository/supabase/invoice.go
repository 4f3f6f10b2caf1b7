package supabase

import (
	"context"
	"time"

	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	tableInvoices = "invoices"
	invoiceSelect = "*,students(student_name)"
)

type invoiceRow struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	StudentID     string              `json:"student_id"`
	StartDate     types.Date          `json:"start_date"`
	EndDate       types.Date          `json:"end_date"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	Balance       decimal.Decimal     `json:"balance"`
	SessionCount  int                 `json:"session_count"`
	Status        types.InvoiceStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	Students      *studentName        `json:"students,omitempty"`
}

func newInvoiceRow(inv *invoice.Invoice) invoiceRow {
	return invoiceRow{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		StudentID:     inv.StudentID,
		StartDate:     inv.StartDate,
		EndDate:       inv.EndDate,
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		Balance:       inv.Balance,
		SessionCount:  inv.SessionCount,
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
	}
}

func (row *invoiceRow) toDomain() *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            row.ID,
		InvoiceNumber: row.InvoiceNumber,
		StudentID:     row.StudentID,
		StartDate:     row.StartDate,
		EndDate:       row.EndDate,
		TotalAmount:   row.TotalAmount,
		PaidAmount:    row.PaidAmount,
		Balance:       row.Balance,
		SessionCount:  row.SessionCount,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
	}
	if row.Students != nil {
		inv.StudentName = row.Students.StudentName
	}
	return inv
}

type invoiceRepository struct {
	client *Client
	logger *logger.Logger
}

func NewInvoiceRepository(client *Client, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"student_id", inv.StudentID,
		"balance", inv.Balance,
	)

	var out []invoiceRow
	err := r.client.DB.From(tableInvoices).Insert(newInvoiceRow(inv)).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Invoice", map[string]any{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var rows []invoiceRow
	err := r.client.DB.From(tableInvoices).Select(invoiceSelect).Eq("id", id).ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, wrapError(err, "Invoice", map[string]any{"invoice_id": id})
	}
	if len(rows) == 0 {
		return nil, notFound("Invoice", map[string]any{"invoice_id": id})
	}
	return rows[0].toDomain(), nil
}

func invoiceWhere(filter *types.InvoiceFilter) func(q *postgrest.FilterRequestBuilder) {
	return func(q *postgrest.FilterRequestBuilder) {
		if filter.StudentID != "" {
			q.Eq("student_id", filter.StudentID)
		}
		if filter.Status != nil {
			q.Eq("status", string(*filter.Status))
		}
	}
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	q := r.client.DB.From(tableInvoices).Select(invoiceSelect)
	invoiceWhere(filter)(&q.FilterRequestBuilder)
	orderBy(q, "created_at.desc", "id.desc").LimitWithOffset(filter.GetLimit(), filter.GetOffset())

	var rows []invoiceRow
	if err := q.ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Invoice", nil)
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for i := range rows {
		invoices = append(invoices, rows[i].toDomain())
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	n, err := r.client.count(ctx, tableInvoices, invoiceWhere(filter))
	if err != nil {
		return 0, wrapError(err, "Invoice", nil)
	}
	return n, nil
}

func (r *invoiceRepository) SumBalance(ctx context.Context) (decimal.Decimal, error) {
	sum, err := r.client.sumColumn(ctx, tableInvoices, "balance", nil)
	if err != nil {
		return decimal.Zero, wrapError(err, "Invoice", nil)
	}
	return sum, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	r.logger.Debugw("deleting invoice", "invoice_id", id)

	var out []invoiceRow
	err := r.client.DB.From(tableInvoices).Delete().Eq("id", id).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Invoice", map[string]any{"invoice_id": id})
}
