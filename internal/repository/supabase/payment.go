package supabase

import (
	"context"
	"time"

	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	tablePayments = "payments"
	paymentSelect = "*,students(student_name)"
)

type paymentRow struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"student_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod *string         `json:"payment_method"`
	Date          types.Date      `json:"date"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Students      *studentName    `json:"students,omitempty"`
}

func (row *paymentRow) toDomain() *payment.Payment {
	p := &payment.Payment{
		ID:            row.ID,
		StudentID:     row.StudentID,
		Amount:        row.Amount,
		PaymentMethod: row.PaymentMethod,
		Date:          row.Date,
		Notes:         row.Notes,
		BaseModel:     types.BaseModel{CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt},
	}
	if row.Students != nil {
		p.StudentName = row.Students.StudentName
	}
	return p
}

type paymentRepository struct {
	client *Client
	logger *logger.Logger
}

func NewPaymentRepository(client *Client, logger *logger.Logger) payment.Repository {
	return &paymentRepository{client: client, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	r.logger.Debugw("recording payment",
		"payment_id", p.ID,
		"student_id", p.StudentID,
		"amount", p.Amount,
	)

	row := paymentRow{
		ID:            p.ID,
		StudentID:     p.StudentID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Date:          p.Date,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	var out []paymentRow
	err := r.client.DB.From(tablePayments).Insert(row).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Payment", map[string]any{"payment_id": p.ID})
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var rows []paymentRow
	err := r.client.DB.From(tablePayments).Select(paymentSelect).Eq("id", id).ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, wrapError(err, "Payment", map[string]any{"payment_id": id})
	}
	if len(rows) == 0 {
		return nil, notFound("Payment", map[string]any{"payment_id": id})
	}
	return rows[0].toDomain(), nil
}

func paymentWhere(filter *types.PaymentFilter) func(q *postgrest.FilterRequestBuilder) {
	return func(q *postgrest.FilterRequestBuilder) {
		if filter.StudentID != "" {
			q.Eq("student_id", filter.StudentID)
		}
		if filter.StartDate != nil && !filter.StartDate.IsZero() {
			q.Gte("date", filter.StartDate.String())
		}
		if filter.EndDate != nil && !filter.EndDate.IsZero() {
			q.Lte("date", filter.EndDate.String())
		}
	}
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	q := r.client.DB.From(tablePayments).Select(paymentSelect)
	paymentWhere(filter)(&q.FilterRequestBuilder)
	orderBy(q, "date.desc", "created_at.desc").LimitWithOffset(filter.GetLimit(), filter.GetOffset())

	var rows []paymentRow
	if err := q.ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Payment", nil)
	}
	return toPayments(rows), nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	n, err := r.client.count(ctx, tablePayments, paymentWhere(filter))
	if err != nil {
		return 0, wrapError(err, "Payment", nil)
	}
	return n, nil
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID string) ([]*payment.Payment, error) {
	q := r.client.DB.From(tablePayments).Select(paymentSelect)
	q.Eq("student_id", studentID)

	var rows []paymentRow
	if err := orderBy(q, "date.asc", "created_at.asc").ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Payment", map[string]any{"student_id": studentID})
	}
	return toPayments(rows), nil
}

func (r *paymentRepository) SumAmount(ctx context.Context, period types.DateRange) (decimal.Decimal, error) {
	sum, err := r.client.sumColumn(ctx, tablePayments, "amount", func(q *postgrest.FilterRequestBuilder) {
		q.Gte("date", period.Start.String())
		q.Lte("date", period.End.String())
	})
	if err != nil {
		return decimal.Zero, wrapError(err, "Payment", map[string]any{
			"start_date": period.Start.String(),
			"end_date":   period.End.String(),
		})
	}
	return sum, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	r.logger.Debugw("deleting payment", "payment_id", id)

	var out []paymentRow
	err := r.client.DB.From(tablePayments).Delete().Eq("id", id).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Payment", map[string]any{"payment_id": id})
}

func toPayments(rows []paymentRow) []*payment.Payment {
	payments := make([]*payment.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, rows[i].toDomain())
	}
	return payments
}
