package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/testutil"
	"github.com/tutordesk/tutordesk/internal/types"
)

type StudentSubjectServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  StudentSubjectService
	testData struct {
		student *student.Student
		maths   *subject.Subject
	}
}

func TestStudentSubjectService(t *testing.T) {
	suite.Run(t, new(StudentSubjectServiceSuite))
}

func (s *StudentSubjectServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewStudentSubjectService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.testData.student = &student.Student{ID: "stu_ana", StudentName: "Ana", BaseModel: types.GetDefaultBaseModel()}
	s.testData.maths = &subject.Subject{
		ID:          "sub_maths",
		SubjectName: "Maths",
		DefaultFee:  decimal.NewFromInt(50),
		BaseModel:   types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().StudentRepo.Create(s.GetContext(), s.testData.student))
	s.NoError(s.GetStores().SubjectRepo.Create(s.GetContext(), s.testData.maths))
}

func (s *StudentSubjectServiceSuite) TestAssignSubject() {
	tests := []struct {
		name          string
		customFee     *decimal.Decimal
		wantEffective string
	}{
		{name: "default fee", customFee: nil, wantEffective: "50"},
		{name: "custom fee", customFee: lo.ToPtr(decimal.NewFromInt(30)), wantEffective: "30"},
		{name: "zero custom fee", customFee: lo.ToPtr(decimal.Zero), wantEffective: "0"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.service.AssignSubject(s.GetContext(), s.testData.student.ID, dto.AssignSubjectRequest{
				SubjectID: s.testData.maths.ID,
				CustomFee: tt.customFee,
			})
			s.Require().NoError(err)
			s.Equal("Maths", resp.SubjectName)
			s.Equal(tt.wantEffective, resp.EffectiveFee.String())

			// reassigning updates the single assignment
			list, err := s.service.ListStudentSubjects(s.GetContext(), s.testData.student.ID)
			s.Require().NoError(err)
			s.Require().Len(list, 1)
			s.Equal(tt.wantEffective, list[0].EffectiveFee.String())
		})
	}
}

func (s *StudentSubjectServiceSuite) TestAssignSubjectErrors() {
	_, err := s.service.AssignSubject(s.GetContext(), s.testData.student.ID, dto.AssignSubjectRequest{})
	s.True(ierr.IsValidation(err))

	_, err = s.service.AssignSubject(s.GetContext(), s.testData.student.ID, dto.AssignSubjectRequest{
		SubjectID: s.testData.maths.ID,
		CustomFee: lo.ToPtr(decimal.NewFromInt(-1)),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.AssignSubject(s.GetContext(), "stu_missing", dto.AssignSubjectRequest{SubjectID: s.testData.maths.ID})
	s.True(ierr.IsNotFound(err))

	_, err = s.service.AssignSubject(s.GetContext(), s.testData.student.ID, dto.AssignSubjectRequest{SubjectID: "sub_missing"})
	s.True(ierr.IsNotFound(err))
}

func (s *StudentSubjectServiceSuite) TestRemoveSubject() {
	_, err := s.service.AssignSubject(s.GetContext(), s.testData.student.ID, dto.AssignSubjectRequest{
		SubjectID: s.testData.maths.ID,
	})
	s.Require().NoError(err)

	s.NoError(s.service.RemoveSubject(s.GetContext(), s.testData.student.ID, s.testData.maths.ID))

	list, err := s.service.ListStudentSubjects(s.GetContext(), s.testData.student.ID)
	s.Require().NoError(err)
	s.Empty(list)

	err = s.service.RemoveSubject(s.GetContext(), s.testData.student.ID, s.testData.maths.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.ListStudentSubjects(s.GetContext(), "stu_missing")
	s.True(ierr.IsNotFound(err))
}
