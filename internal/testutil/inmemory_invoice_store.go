package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	c := *inv
	return &c
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	dup, _ := s.InMemoryStore.Count(ctx, nil, func(_ context.Context, existing *invoice.Invoice, _ interface{}) bool {
		return existing.InvoiceNumber == inv.InvoiceNumber
	})
	if dup > 0 {
		return ierr.NewErrorf("invoice number %s already exists", inv.InvoiceNumber).
			WithHint("Invoice already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, func(i, j *invoice.Invoice) bool {
		if !i.CreatedAt.Equal(j.CreatedAt) {
			return i.CreatedAt.After(j.CreatedAt)
		}
		return i.ID > j.ID
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) SumBalance(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return lo.Reduce(items, func(sum decimal.Decimal, inv *invoice.Invoice, _ int) decimal.Decimal {
		return sum.Add(inv.Balance)
	}, decimal.Zero), nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}
	if f.StudentID != "" && inv.StudentID != f.StudentID {
		return false
	}
	if f.Status != nil && inv.Status != *f.Status {
		return false
	}
	return true
}
