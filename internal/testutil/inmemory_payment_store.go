package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	c := *p
	return &c
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyPayment(p))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}
	items, err := s.InMemoryStore.List(ctx, filter, paymentFilterFn, func(i, j *payment.Payment) bool {
		if !i.Date.Equal(j.Date) {
			return i.Date.After(j.Date)
		}
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, paymentFilterFn)
}

func (s *InMemoryPaymentStore) ListByStudent(ctx context.Context, studentID string) ([]*payment.Payment, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, p *payment.Payment, _ interface{}) bool {
		return p.StudentID == studentID
	}, func(i, j *payment.Payment) bool { return i.Date.Before(j.Date) })
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (s *InMemoryPaymentStore) SumAmount(ctx context.Context, period types.DateRange) (decimal.Decimal, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, p *payment.Payment, _ interface{}) bool {
		return period.Contains(p.Date)
	}, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return lo.Reduce(items, func(sum decimal.Decimal, p *payment.Payment, _ int) decimal.Decimal {
		return sum.Add(p.Amount)
	}, decimal.Zero), nil
}

func (s *InMemoryPaymentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func paymentFilterFn(ctx context.Context, p *payment.Payment, filter interface{}) bool {
	f, ok := filter.(*types.PaymentFilter)
	if !ok || f == nil {
		return true
	}
	if f.StudentID != "" && p.StudentID != f.StudentID {
		return false
	}
	if f.StartDate != nil && !f.StartDate.IsZero() && p.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !f.EndDate.IsZero() && p.Date.After(*f.EndDate) {
		return false
	}
	return true
}
