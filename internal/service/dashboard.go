package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/cache"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/types"
)

const recentPaymentsLimit = 5

type DashboardService interface {
	// GetSummary reports totals for the calendar month containing today
	GetSummary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

func (s *dashboardService) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	period := types.CurrentMonth(types.Today())
	key := cache.GenerateKey(cache.PrefixDashboard, period.Start.String())

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, key); ok {
			if resp, ok := cached.(*dto.DashboardResponse); ok {
				return resp, nil
			}
		}
	}

	totalStudents, err := s.StudentRepo.Count(ctx, &types.StudentFilter{})
	if err != nil {
		return nil, err
	}

	revenue, err := s.PaymentRepo.SumAmount(ctx, period)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.InvoiceRepo.SumBalance(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.PaymentRepo.List(ctx, &types.PaymentFilter{
		QueryFilter: types.QueryFilter{Limit: recentPaymentsLimit},
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalStudents:      totalStudents,
		MonthlyRevenue:     revenue,
		OutstandingBalance: outstanding,
		Period:             period,
		RecentPayments: lo.Map(recent, func(p *payment.Payment, _ int) *dto.PaymentResponse {
			return &dto.PaymentResponse{Payment: p}
		}),
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, resp, 0)
	}
	return resp, nil
}
