package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	"github.com/tutordesk/tutordesk/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

const paymentSelect = `
	SELECT p.id, p.student_id, p.amount, p.payment_method, p.date, p.notes,
		p.created_at, p.updated_at, st.student_name
	FROM payments p
	JOIN students st ON st.id = p.student_id`

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			id, student_id, amount, payment_method, date, notes, created_at, updated_at
		) VALUES (
			:id, :student_id, :amount, :payment_method, :date, :notes, :created_at, :updated_at
		)`

	r.logger.Debugw("recording payment",
		"payment_id", p.ID,
		"student_id", p.StudentID,
		"amount", p.Amount,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	return wrapError(err, "Payment", map[string]any{"payment_id": p.ID})
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, paymentSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, wrapError(err, "Payment", map[string]any{"payment_id": id})
	}
	return &p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	query := paymentSelect + `
		WHERE ($1::text = '' OR p.student_id = $1::text)
		AND ($2::date IS NULL OR p.date >= $2::date)
		AND ($3::date IS NULL OR p.date <= $3::date)
		ORDER BY p.date DESC, p.created_at DESC
		LIMIT $4 OFFSET $5`

	payments := make([]*payment.Payment, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &payments, query,
		filter.StudentID, optionalDate(filter.StartDate), optionalDate(filter.EndDate),
		filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, wrapError(err, "Payment", nil)
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	query := `
		SELECT COUNT(*) FROM payments
		WHERE ($1::text = '' OR student_id = $1::text)
		AND ($2::date IS NULL OR date >= $2::date)
		AND ($3::date IS NULL OR date <= $3::date)`

	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query,
		filter.StudentID, optionalDate(filter.StartDate), optionalDate(filter.EndDate))
	if err != nil {
		return 0, wrapError(err, "Payment", nil)
	}
	return count, nil
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID string) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &payments,
		paymentSelect+` WHERE p.student_id = $1 ORDER BY p.date ASC`, studentID)
	if err != nil {
		return nil, wrapError(err, "Payment", map[string]any{"student_id": studentID})
	}
	return payments, nil
}

func (r *paymentRepository) SumAmount(ctx context.Context, period types.DateRange) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetQuerier(ctx).GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE date >= $1 AND date <= $2`,
		period.Start, period.End)
	if err != nil {
		return decimal.Zero, wrapError(err, "Payment", nil)
	}
	return sum, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting payment", "payment_id", id)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Payment", map[string]any{"payment_id": id})
	}
	return expectAffected(res, "Payment", map[string]any{"payment_id": id})
}

// optionalDate maps an unset filter date to SQL NULL
func optionalDate(d *types.Date) interface{} {
	if d == nil || d.IsZero() {
		return nil
	}
	return *d
}
