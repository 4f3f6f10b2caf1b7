package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/types"
)

// DashboardResponse summarises the business for the current month
type DashboardResponse struct {
	TotalStudents      int                `json:"total_students"`
	MonthlyRevenue     decimal.Decimal    `json:"monthly_revenue"`
	OutstandingBalance decimal.Decimal    `json:"outstanding_balance"`
	Period             types.DateRange    `json:"period"`
	RecentPayments     []*PaymentResponse `json:"recent_payments"`
}
