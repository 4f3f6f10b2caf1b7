package service

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/types"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
	DeletePayment(ctx context.Context, id string) error
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPayment(types.Today())
	if err := p.Validate(); err != nil {
		return nil, err
	}

	st, err := s.StudentRepo.Get(ctx, p.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.StudentName = st.StudentName

	s.Logger.Infow("recorded payment",
		"payment_id", p.ID,
		"student_id", p.StudentID,
		"amount", p.Amount,
		"date", p.Date.String(),
	)
	s.invalidateDashboard(ctx)

	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		if err := (types.DateRange{Start: *filter.StartDate, End: *filter.EndDate}).Validate(); err != nil {
			return nil, err
		}
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, &dto.PaymentResponse{Payment: p})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	if err := s.PaymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted payment", "payment_id", id)
	s.invalidateDashboard(ctx)
	return nil
}
