package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/testutil"
	"github.com/tutordesk/tutordesk/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
	student *student.Student
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.student = &student.Student{ID: "stu_ana", StudentName: "Ana", BaseModel: types.GetDefaultBaseModel()}
	s.NoError(s.GetStores().StudentRepo.Create(s.GetContext(), s.student))
}

func (s *PaymentServiceSuite) TestCreatePayment() {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		StudentID:     s.student.ID,
		Amount:        decimal.RequireFromString("60.00"),
		PaymentMethod: lo.ToPtr("Cash"),
		Date:          types.MustParseDate("2024-03-15"),
	})
	s.Require().NoError(err)
	s.Equal("Ana", resp.StudentName)
	s.Equal("2024-03-15", resp.Date.String())
	s.Nil(resp.Notes)

	got, err := s.service.GetPayment(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.True(got.Amount.Equal(decimal.NewFromInt(60)))
}

func (s *PaymentServiceSuite) TestCreatePaymentDefaultsToToday() {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		StudentID: s.student.ID,
		Amount:    decimal.NewFromInt(10),
	})
	s.Require().NoError(err)
	s.True(resp.Date.Equal(s.GetToday()))
}

func (s *PaymentServiceSuite) TestCreatePaymentErrors() {
	tests := []struct {
		name    string
		req     dto.CreatePaymentRequest
		isError func(error) bool
	}{
		{
			name:    "missing student",
			req:     dto.CreatePaymentRequest{Amount: decimal.NewFromInt(10)},
			isError: ierr.IsValidation,
		},
		{
			name:    "zero amount",
			req:     dto.CreatePaymentRequest{StudentID: s.student.ID},
			isError: ierr.IsValidation,
		},
		{
			name:    "negative amount",
			req:     dto.CreatePaymentRequest{StudentID: s.student.ID, Amount: decimal.NewFromInt(-5)},
			isError: ierr.IsValidation,
		},
		{
			name:    "unknown student",
			req:     dto.CreatePaymentRequest{StudentID: "stu_missing", Amount: decimal.NewFromInt(10)},
			isError: ierr.IsNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreatePayment(s.GetContext(), tt.req)
			s.Require().Error(err)
			s.True(tt.isError(err))
		})
	}
}

func (s *PaymentServiceSuite) TestListPayments() {
	for _, date := range []string{"2024-02-28", "2024-03-01", "2024-03-31", "2024-04-01"} {
		_, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
			StudentID: s.student.ID,
			Amount:    decimal.NewFromInt(10),
			Date:      types.MustParseDate(date),
		})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		StartDate: lo.ToPtr(types.MustParseDate("2024-03-01")),
		EndDate:   lo.ToPtr(types.MustParseDate("2024-03-31")),
	})
	s.Require().NoError(err)
	s.Equal([]string{"2024-03-31", "2024-03-01"}, lo.Map(resp.Items, func(p *dto.PaymentResponse, _ int) string {
		return p.Date.String()
	}))

	resp, err = s.service.ListPayments(s.GetContext(), &types.PaymentFilter{StudentID: "stu_other"})
	s.Require().NoError(err)
	s.Empty(resp.Items)

	_, err = s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		StartDate: lo.ToPtr(types.MustParseDate("2024-04-01")),
		EndDate:   lo.ToPtr(types.MustParseDate("2024-03-01")),
	})
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestListPaymentsTotalCountsEveryMatch() {
	start := types.MustParseDate("2024-03-01")
	for i := 0; i < 7; i++ {
		_, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
			StudentID: s.student.ID,
			Amount:    decimal.NewFromInt(10),
			Date:      start.AddDays(i),
		})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		QueryFilter: types.QueryFilter{Limit: 3},
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(7, resp.Pagination.Total)
	s.Equal("2024-03-07", resp.Items[0].Date.String())

	resp, err = s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		QueryFilter: types.QueryFilter{Limit: 3, Offset: 6},
		StudentID:   s.student.ID,
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(7, resp.Pagination.Total)
	s.Equal(6, resp.Pagination.Offset)
}

func (s *PaymentServiceSuite) TestDeletePayment() {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		StudentID: s.student.ID,
		Amount:    decimal.NewFromInt(10),
	})
	s.Require().NoError(err)

	s.NoError(s.service.DeletePayment(s.GetContext(), resp.ID))
	s.True(ierr.IsNotFound(s.service.DeletePayment(s.GetContext(), resp.ID)))
}
