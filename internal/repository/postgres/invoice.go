package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	"github.com/tutordesk/tutordesk/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceSelect = `
	SELECT i.id, i.invoice_number, i.student_id, i.start_date, i.end_date,
		i.total_amount, i.paid_amount, i.balance, i.session_count, i.status, i.created_at,
		st.student_name
	FROM invoices i
	JOIN students st ON st.id = i.student_id`

const invoiceWhere = `
	WHERE ($1::text = '' OR i.student_id = $1::text)
	AND ($2::text = '' OR i.status = $2::text)`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, invoice_number, student_id, start_date, end_date,
			total_amount, paid_amount, balance, session_count, status, created_at
		) VALUES (
			:id, :invoice_number, :student_id, :start_date, :end_date,
			:total_amount, :paid_amount, :balance, :session_count, :status, :created_at
		)`

	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"student_id", inv.StudentID,
		"balance", inv.Balance,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, inv)
	return wrapError(err, "Invoice", map[string]any{
		"invoice_id":     inv.ID,
		"invoice_number": inv.InvoiceNumber,
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.GetQuerier(ctx).GetContext(ctx, &inv, invoiceSelect+` WHERE i.id = $1`, id)
	if err != nil {
		return nil, wrapError(err, "Invoice", map[string]any{"invoice_id": id})
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	query := invoiceSelect + invoiceWhere + `
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT $3 OFFSET $4`

	invoices := make([]*invoice.Invoice, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, query,
		filter.StudentID, statusParam(filter.Status), filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, wrapError(err, "Invoice", nil)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM invoices i`+invoiceWhere,
		filter.StudentID, statusParam(filter.Status))
	if err != nil {
		return 0, wrapError(err, "Invoice", nil)
	}
	return count, nil
}

func (r *invoiceRepository) SumBalance(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetQuerier(ctx).GetContext(ctx, &sum, `SELECT COALESCE(SUM(balance), 0) FROM invoices`)
	if err != nil {
		return decimal.Zero, wrapError(err, "Invoice", nil)
	}
	return sum, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting invoice", "invoice_id", id)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Invoice", map[string]any{"invoice_id": id})
	}
	return expectAffected(res, "Invoice", map[string]any{"invoice_id": id})
}

func statusParam(s *types.InvoiceStatus) string {
	if s == nil {
		return ""
	}
	return string(*s)
}
