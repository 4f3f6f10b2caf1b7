package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/testutil"
	"github.com/tutordesk/tutordesk/internal/types"
)

type AttendanceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AttendanceService
	testData struct {
		ana     *student.Student
		bruno   *student.Student
		maths   *subject.Subject
		science *subject.Subject
	}
}

func TestAttendanceService(t *testing.T) {
	suite.Run(t, new(AttendanceServiceSuite))
}

func (s *AttendanceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAttendanceService(newTestServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *AttendanceServiceSuite) setupTestData() {
	ctx := s.GetContext()
	stores := s.GetStores()

	s.testData.ana = &student.Student{ID: "stu_ana", StudentName: "Ana", BaseModel: types.GetDefaultBaseModel()}
	s.testData.bruno = &student.Student{ID: "stu_bruno", StudentName: "Bruno", BaseModel: types.GetDefaultBaseModel()}
	s.NoError(stores.StudentRepo.Create(ctx, s.testData.ana))
	s.NoError(stores.StudentRepo.Create(ctx, s.testData.bruno))

	s.testData.maths = &subject.Subject{ID: "sub_maths", SubjectName: "Maths", DefaultFee: decimal.NewFromInt(50)}
	s.testData.science = &subject.Subject{ID: "sub_science", SubjectName: "Science", DefaultFee: decimal.NewFromInt(40)}
	s.NoError(stores.SubjectRepo.Create(ctx, s.testData.maths))
	s.NoError(stores.SubjectRepo.Create(ctx, s.testData.science))

	assignments := stores.StudentSubjectRepo.(*testutil.InMemoryStudentSubjectStore)
	assignments.Assign(ctx, s.testData.ana.ID, s.testData.maths.ID, nil)
	assignments.Assign(ctx, s.testData.ana.ID, s.testData.science.ID, nil)
	assignments.Assign(ctx, s.testData.bruno.ID, s.testData.maths.ID, nil)
}

func (s *AttendanceServiceSuite) TestMarkAttendanceUpserts() {
	req := dto.MarkAttendanceRequest{
		StudentID: s.testData.ana.ID,
		SubjectID: s.testData.maths.ID,
		Date:      types.MustParseDate("2024-03-05"),
		Status:    types.AttendanceStatusPresent,
	}

	first, err := s.service.MarkAttendance(s.GetContext(), req)
	s.Require().NoError(err)
	s.Equal("Ana", first.StudentName)
	s.Equal("Maths", first.SubjectName)

	req.Status = types.AttendanceStatusAbsent
	second, err := s.service.MarkAttendance(s.GetContext(), req)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	got, err := s.service.GetAttendance(s.GetContext(), first.ID)
	s.Require().NoError(err)
	s.Equal(types.AttendanceStatusAbsent, got.Status)

	history, err := s.service.ListAttendance(s.GetContext(), &types.AttendanceFilter{StudentID: s.testData.ana.ID})
	s.Require().NoError(err)
	s.Len(history.Items, 1)
}

func (s *AttendanceServiceSuite) TestMarkAttendanceErrors() {
	date := types.MustParseDate("2024-03-05")
	tests := []struct {
		name    string
		req     dto.MarkAttendanceRequest
		isError func(error) bool
	}{
		{
			name:    "missing date",
			req:     dto.MarkAttendanceRequest{StudentID: s.testData.ana.ID, SubjectID: s.testData.maths.ID, Status: types.AttendanceStatusPresent},
			isError: ierr.IsValidation,
		},
		{
			name:    "unknown status",
			req:     dto.MarkAttendanceRequest{StudentID: s.testData.ana.ID, SubjectID: s.testData.maths.ID, Date: date, Status: "Late"},
			isError: ierr.IsValidation,
		},
		{
			name:    "unknown student",
			req:     dto.MarkAttendanceRequest{StudentID: "stu_missing", SubjectID: s.testData.maths.ID, Date: date, Status: types.AttendanceStatusPresent},
			isError: ierr.IsNotFound,
		},
		{
			name:    "not enrolled",
			req:     dto.MarkAttendanceRequest{StudentID: s.testData.bruno.ID, SubjectID: s.testData.science.ID, Date: date, Status: types.AttendanceStatusPresent},
			isError: ierr.IsInvalidOperation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.MarkAttendance(s.GetContext(), tt.req)
			s.Require().Error(err)
			s.True(tt.isError(err))
		})
	}
}

func (s *AttendanceServiceSuite) TestBulkMarkAttendance() {
	date := types.MustParseDate("2024-03-05")
	resp, err := s.service.BulkMarkAttendance(s.GetContext(), dto.BulkMarkAttendanceRequest{
		Date: date,
		Records: []dto.BulkAttendanceRecord{
			{StudentID: s.testData.ana.ID, SubjectID: s.testData.maths.ID, Status: types.AttendanceStatusPresent},
			{StudentID: s.testData.ana.ID, SubjectID: s.testData.science.ID, Status: types.AttendanceStatusAbsent},
			{StudentID: s.testData.bruno.ID, SubjectID: s.testData.maths.ID, Status: types.AttendanceStatusPresent},
		},
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(1, s.GetDB().Calls)

	day, err := s.service.ListAttendance(s.GetContext(), &types.AttendanceFilter{Date: &date})
	s.Require().NoError(err)
	s.Len(day.Items, 3)

	_, err = s.service.BulkMarkAttendance(s.GetContext(), dto.BulkMarkAttendanceRequest{Date: date})
	s.True(ierr.IsValidation(err))

	_, err = s.service.BulkMarkAttendance(s.GetContext(), dto.BulkMarkAttendanceRequest{
		Date: date,
		Records: []dto.BulkAttendanceRecord{
			{StudentID: s.testData.bruno.ID, SubjectID: s.testData.science.ID, Status: types.AttendanceStatusPresent},
		},
	})
	s.True(ierr.IsInvalidOperation(err))
}

func (s *AttendanceServiceSuite) TestListAttendanceDefaultsToToday() {
	today := s.GetToday()
	for _, date := range []types.Date{today, today.AddDays(-1)} {
		_, err := s.service.MarkAttendance(s.GetContext(), dto.MarkAttendanceRequest{
			StudentID: s.testData.ana.ID,
			SubjectID: s.testData.maths.ID,
			Date:      date,
			Status:    types.AttendanceStatusPresent,
		})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListAttendance(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.True(resp.Items[0].Date.Equal(today))

	resp, err = s.service.ListAttendance(s.GetContext(), &types.AttendanceFilter{StudentID: s.testData.ana.ID})
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
}

func (s *AttendanceServiceSuite) TestListAttendanceTotalCountsEveryMatch() {
	today := s.GetToday()
	for i := 0; i < 7; i++ {
		_, err := s.service.MarkAttendance(s.GetContext(), dto.MarkAttendanceRequest{
			StudentID: s.testData.ana.ID,
			SubjectID: s.testData.maths.ID,
			Date:      today.AddDays(-i),
			Status:    types.AttendanceStatusPresent,
		})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListAttendance(s.GetContext(), &types.AttendanceFilter{
		QueryFilter: types.QueryFilter{Limit: 3},
		StudentID:   s.testData.ana.ID,
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(7, resp.Pagination.Total)

	// the today default narrows the count as well as the page
	resp, err = s.service.ListAttendance(s.GetContext(), &types.AttendanceFilter{
		QueryFilter: types.QueryFilter{Limit: 3},
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(1, resp.Pagination.Total)
}

func (s *AttendanceServiceSuite) TestDeleteAttendance() {
	rec, err := s.service.MarkAttendance(s.GetContext(), dto.MarkAttendanceRequest{
		StudentID: s.testData.ana.ID,
		SubjectID: s.testData.maths.ID,
		Date:      types.MustParseDate("2024-03-05"),
		Status:    types.AttendanceStatusPresent,
	})
	s.Require().NoError(err)

	s.NoError(s.service.DeleteAttendance(s.GetContext(), rec.ID))

	_, err = s.service.GetAttendance(s.GetContext(), rec.ID)
	s.True(ierr.IsNotFound(err))
}
