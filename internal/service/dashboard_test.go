package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/testutil"
	"github.com/tutordesk/tutordesk/internal/types"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  DashboardService
	payments PaymentService
	student  *student.Student
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewDashboardService(params)
	s.payments = NewPaymentService(params)

	s.student = &student.Student{ID: "stu_ana", StudentName: "Ana", BaseModel: types.GetDefaultBaseModel()}
	s.NoError(s.GetStores().StudentRepo.Create(s.GetContext(), s.student))
}

func (s *DashboardServiceSuite) storeInvoice(number string, total, paid int64) {
	t, p := decimal.NewFromInt(total), decimal.NewFromInt(paid)
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: number,
		StudentID:     s.student.ID,
		StartDate:     types.MustParseDate("2024-03-01"),
		EndDate:       types.MustParseDate("2024-03-31"),
		TotalAmount:   t,
		PaidAmount:    p,
		Balance:       t.Sub(p),
		Status:        types.InvoiceStatusUnpaid,
		CreatedAt:     s.GetNow(),
	}))
}

func (s *DashboardServiceSuite) TestGetSummary() {
	today := s.GetToday()
	month := types.CurrentMonth(today)

	for _, amount := range []int64{25, 35} {
		_, err := s.payments.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
			StudentID: s.student.ID,
			Amount:    decimal.NewFromInt(amount),
			Date:      today,
		})
		s.Require().NoError(err)
	}
	// outside the month, counted in recent payments only
	s.NoError(s.GetStores().PaymentRepo.Create(s.GetContext(), &payment.Payment{
		ID:        "pay_old",
		StudentID: s.student.ID,
		Amount:    decimal.NewFromInt(100),
		Date:      month.Start.AddDays(-1),
		BaseModel: types.GetDefaultBaseModel(),
	}))

	s.storeInvoice("INV-1", 150, 60)
	s.storeInvoice("INV-2", 50, 80)

	resp, err := s.service.GetSummary(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, resp.TotalStudents)
	s.Equal("60", resp.MonthlyRevenue.String())
	s.Equal("60", resp.OutstandingBalance.String())
	s.True(resp.Period.Start.Equal(month.Start))
	s.True(resp.Period.End.Equal(month.End))
	s.Len(resp.RecentPayments, 3)
	s.Equal("pay_old", resp.RecentPayments[2].ID)
}

func (s *DashboardServiceSuite) TestGetSummaryIsCachedUntilPaymentRecorded() {
	first, err := s.service.GetSummary(s.GetContext())
	s.Require().NoError(err)
	s.True(first.MonthlyRevenue.IsZero())

	// writes that bypass the services do not refresh the cached summary
	s.NoError(s.GetStores().StudentRepo.Create(s.GetContext(), &student.Student{
		ID:          "stu_bruno",
		StudentName: "Bruno",
		BaseModel:   types.GetDefaultBaseModel(),
	}))
	cached, err := s.service.GetSummary(s.GetContext())
	s.Require().NoError(err)
	s.Equal(1, cached.TotalStudents)

	_, err = s.payments.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		StudentID: s.student.ID,
		Amount:    decimal.NewFromInt(40),
	})
	s.Require().NoError(err)

	fresh, err := s.service.GetSummary(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, fresh.TotalStudents)
	s.Equal("40", fresh.MonthlyRevenue.String())
}
