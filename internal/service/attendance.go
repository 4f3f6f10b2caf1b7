package service

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

type AttendanceService interface {
	MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error)
	BulkMarkAttendance(ctx context.Context, req dto.BulkMarkAttendanceRequest) (*dto.ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	// ListAttendance lists one day's register, today when the filter has no date,
	// or a student's full history when the filter names a student and no date
	ListAttendance(ctx context.Context, filter *types.AttendanceFilter) (*dto.ListAttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error
}

type attendanceService struct {
	ServiceParams
}

func NewAttendanceService(params ServiceParams) AttendanceService {
	return &attendanceService{
		ServiceParams: params,
	}
}

func (s *attendanceService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.mark(ctx, &req)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceResponse{Attendance: rec}, nil
}

func (s *attendanceService) BulkMarkAttendance(ctx context.Context, req dto.BulkMarkAttendanceRequest) (*dto.ListAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := make([]*dto.AttendanceResponse, 0, len(req.Records))
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		for _, mark := range req.ToMarkRequests() {
			rec, err := s.mark(txCtx, mark)
			if err != nil {
				return err
			}
			items = append(items, &dto.AttendanceResponse{Attendance: rec})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("marked attendance register",
		"date", req.Date.String(),
		"records", len(items),
	)

	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

// mark upserts one record. Attendance is only accepted for subjects the student takes.
func (s *attendanceService) mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*attendance.Attendance, error) {
	st, err := s.StudentRepo.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.StudentSubjectRepo.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	var subjectName string
	enrolled := false
	for _, a := range assignments {
		if a.SubjectID == req.SubjectID {
			enrolled = true
			subjectName = a.SubjectName
			break
		}
	}
	if !enrolled {
		return nil, ierr.NewError("student is not enrolled in subject").
			WithHint("The student does not take this subject").
			WithReportableDetails(map[string]any{
				"student_id": req.StudentID,
				"subject_id": req.SubjectID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	rec := req.ToAttendance()
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := s.AttendanceRepo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	rec.StudentName = st.StudentName
	rec.SubjectName = subjectName

	s.Logger.Debugw("marked attendance",
		"attendance_id", rec.ID,
		"student_id", rec.StudentID,
		"subject_id", rec.SubjectID,
		"date", rec.Date.String(),
		"status", rec.Status,
	)
	return rec, nil
}

func (s *attendanceService) GetAttendance(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	rec, err := s.AttendanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceResponse{Attendance: rec}, nil
}

func (s *attendanceService) ListAttendance(ctx context.Context, filter *types.AttendanceFilter) (*dto.ListAttendanceResponse, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.Date == nil && filter.StudentID == "" {
		today := types.Today()
		filter.Date = &today
	}

	records, err := s.AttendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.AttendanceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, &dto.AttendanceResponse{Attendance: rec})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *attendanceService) DeleteAttendance(ctx context.Context, id string) error {
	if err := s.AttendanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted attendance", "attendance_id", id)
	return nil
}
