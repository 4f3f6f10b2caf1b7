package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/testutil"
)

type SubjectServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SubjectService
}

func TestSubjectService(t *testing.T) {
	suite.Run(t, new(SubjectServiceSuite))
}

func (s *SubjectServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSubjectService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *SubjectServiceSuite) TestCreateSubject() {
	resp, err := s.service.CreateSubject(s.GetContext(), dto.CreateSubjectRequest{
		SubjectName: " Maths ",
		DefaultFee:  decimal.RequireFromString("45.50"),
	})
	s.Require().NoError(err)
	s.Equal("Maths", resp.SubjectName)
	s.True(resp.DefaultFee.Equal(decimal.RequireFromString("45.5")))

	got, err := s.service.GetSubject(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.ID, got.ID)
}

func (s *SubjectServiceSuite) TestCreateSubjectValidation() {
	tests := []struct {
		name string
		req  dto.CreateSubjectRequest
	}{
		{name: "missing name", req: dto.CreateSubjectRequest{DefaultFee: decimal.NewFromInt(10)}},
		{name: "negative fee", req: dto.CreateSubjectRequest{SubjectName: "Maths", DefaultFee: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateSubject(s.GetContext(), tt.req)
			s.True(ierr.IsValidation(err))
		})
	}

	// zero is a valid default fee
	_, err := s.service.CreateSubject(s.GetContext(), dto.CreateSubjectRequest{SubjectName: "Free trial"})
	s.NoError(err)
}

func (s *SubjectServiceSuite) TestUpdateSubject() {
	created, err := s.service.CreateSubject(s.GetContext(), dto.CreateSubjectRequest{
		SubjectName: "Maths",
		DefaultFee:  decimal.NewFromInt(50),
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateSubject(s.GetContext(), created.ID, dto.UpdateSubjectRequest{
		DefaultFee: lo.ToPtr(decimal.NewFromInt(55)),
	})
	s.Require().NoError(err)
	s.Equal("Maths", updated.SubjectName)
	s.Equal("55", updated.DefaultFee.String())

	_, err = s.service.UpdateSubject(s.GetContext(), created.ID, dto.UpdateSubjectRequest{
		DefaultFee: lo.ToPtr(decimal.NewFromInt(-5)),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateSubject(s.GetContext(), "sub_missing", dto.UpdateSubjectRequest{})
	s.True(ierr.IsNotFound(err))
}

func (s *SubjectServiceSuite) TestListAndDeleteSubjects() {
	for _, name := range []string{"Science", "Maths"} {
		_, err := s.service.CreateSubject(s.GetContext(), dto.CreateSubjectRequest{SubjectName: name})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListSubjects(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, resp.Pagination.Total)
	s.Equal([]string{"Maths", "Science"}, lo.Map(resp.Items, func(r *dto.SubjectResponse, _ int) string {
		return r.SubjectName
	}))

	s.NoError(s.service.DeleteSubject(s.GetContext(), resp.Items[0].ID))
	s.True(ierr.IsNotFound(s.service.DeleteSubject(s.GetContext(), resp.Items[0].ID)))

	resp, err = s.service.ListSubjects(s.GetContext())
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
}
