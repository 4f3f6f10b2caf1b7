package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/testutil"
	"github.com/tutordesk/tutordesk/internal/types"
)

type StudentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  StudentService
	testData struct {
		maths   *subject.Subject
		science *subject.Subject
	}
}

func TestStudentService(t *testing.T) {
	suite.Run(t, new(StudentServiceSuite))
}

func (s *StudentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewStudentService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.testData.maths = &subject.Subject{
		ID:          "sub_maths",
		SubjectName: "Maths",
		DefaultFee:  decimal.NewFromInt(50),
		BaseModel:   types.GetDefaultBaseModel(),
	}
	s.testData.science = &subject.Subject{
		ID:          "sub_science",
		SubjectName: "Science",
		DefaultFee:  decimal.NewFromInt(40),
		BaseModel:   types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().SubjectRepo.Create(s.GetContext(), s.testData.maths))
	s.NoError(s.GetStores().SubjectRepo.Create(s.GetContext(), s.testData.science))
}

func subjectIDs(items []*studentsubject.StudentSubject) []string {
	return lo.Map(items, func(a *studentsubject.StudentSubject, _ int) string {
		return a.SubjectID
	})
}

func (s *StudentServiceSuite) TestCreateStudent() {
	resp, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
		StudentName: "  Ana Lima ",
		ParentName:  lo.ToPtr("Rui Lima"),
		Email:       lo.ToPtr("rui@example.com"),
		Grade:       lo.ToPtr(" "),
		SubjectIDs:  []string{s.testData.maths.ID, s.testData.maths.ID, ""},
	})
	s.Require().NoError(err)

	s.NotEmpty(resp.ID)
	s.Equal("Ana Lima", resp.StudentName)
	s.Equal("Rui Lima", lo.FromPtr(resp.ParentName))
	s.Nil(resp.Grade)
	s.Equal([]string{s.testData.maths.ID}, subjectIDs(resp.Subjects))
	s.Equal("Maths", resp.Subjects[0].SubjectName)
	s.Equal(1, s.GetDB().Calls)
}

func (s *StudentServiceSuite) TestCreateStudentValidation() {
	tests := []struct {
		name string
		req  dto.CreateStudentRequest
	}{
		{name: "missing name", req: dto.CreateStudentRequest{}},
		{name: "blank name", req: dto.CreateStudentRequest{StudentName: "   "}},
		{name: "bad email", req: dto.CreateStudentRequest{StudentName: "Ana", Email: lo.ToPtr("not-an-email")}},
		{name: "unknown subject", req: dto.CreateStudentRequest{StudentName: "Ana", SubjectIDs: []string{"sub_missing"}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateStudent(s.GetContext(), tt.req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *StudentServiceSuite) TestUpdateStudentReplacesSubjects() {
	created, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{
		StudentName: "Ana Lima",
		SubjectIDs:  []string{s.testData.maths.ID},
	})
	s.Require().NoError(err)

	// give maths a custom fee, then replace the set keeping maths
	assignments := s.GetStores().StudentSubjectRepo.(*testutil.InMemoryStudentSubjectStore)
	assignments.Assign(s.GetContext(), created.ID, s.testData.maths.ID, lo.ToPtr(decimal.NewFromInt(20)))

	updated, err := s.service.UpdateStudent(s.GetContext(), created.ID, dto.UpdateStudentRequest{
		Phone:      lo.ToPtr("555-0101"),
		SubjectIDs: &[]string{s.testData.maths.ID, s.testData.science.ID},
	})
	s.Require().NoError(err)
	s.Equal("Ana Lima", updated.StudentName)
	s.Equal("555-0101", lo.FromPtr(updated.Phone))
	s.ElementsMatch([]string{s.testData.maths.ID, s.testData.science.ID}, subjectIDs(updated.Subjects))
	for _, a := range updated.Subjects {
		s.Nil(a.CustomFee)
	}

	// nil subject ids keeps the set
	updated, err = s.service.UpdateStudent(s.GetContext(), created.ID, dto.UpdateStudentRequest{
		StudentName: lo.ToPtr("Ana L."),
	})
	s.Require().NoError(err)
	s.Equal("Ana L.", updated.StudentName)
	s.Len(updated.Subjects, 2)

	// an empty list clears it
	updated, err = s.service.UpdateStudent(s.GetContext(), created.ID, dto.UpdateStudentRequest{
		SubjectIDs: &[]string{},
	})
	s.Require().NoError(err)
	s.Empty(updated.Subjects)
}

func (s *StudentServiceSuite) TestUpdateStudentErrors() {
	_, err := s.service.UpdateStudent(s.GetContext(), "stu_missing", dto.UpdateStudentRequest{})
	s.True(ierr.IsNotFound(err))

	created, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{StudentName: "Ana"})
	s.Require().NoError(err)

	_, err = s.service.UpdateStudent(s.GetContext(), created.ID, dto.UpdateStudentRequest{
		StudentName: lo.ToPtr(""),
	})
	s.True(ierr.IsValidation(err))
}

func (s *StudentServiceSuite) TestListStudents() {
	for _, name := range []string{"Ana Lima", "Bruno Costa", "Carla Lima"} {
		_, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{StudentName: name})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListStudents(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Len(resp.Items, 3)

	resp, err = s.service.ListStudents(s.GetContext(), &types.StudentFilter{Search: "lima"})
	s.Require().NoError(err)
	s.Equal(2, resp.Pagination.Total)

	_, err = s.service.ListStudents(s.GetContext(), &types.StudentFilter{
		QueryFilter: types.QueryFilter{Limit: -1},
	})
	s.True(ierr.IsValidation(err))
}

func (s *StudentServiceSuite) TestDeleteStudent() {
	created, err := s.service.CreateStudent(s.GetContext(), dto.CreateStudentRequest{StudentName: "Ana"})
	s.Require().NoError(err)

	s.NoError(s.service.DeleteStudent(s.GetContext(), created.ID))

	_, err = s.service.GetStudent(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))

	s.True(ierr.IsNotFound(s.service.DeleteStudent(s.GetContext(), created.ID)))

	_, err = s.service.GetStudent(s.GetContext(), "")
	s.True(ierr.IsValidation(err))
}
