package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

type StudentService interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
	ListStudents(ctx context.Context, filter *types.StudentFilter) (*dto.ListStudentsResponse, error)
	UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id string) error
}

type studentService struct {
	ServiceParams
}

func NewStudentService(params ServiceParams) StudentService {
	return &studentService{
		ServiceParams: params,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st := req.ToStudent()
	subjectIDs := lo.Uniq(lo.Compact(req.SubjectIDs))

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.StudentRepo.Create(txCtx, st); err != nil {
			return err
		}
		if len(subjectIDs) == 0 {
			return nil
		}
		if err := s.ensureSubjectsExist(txCtx, subjectIDs); err != nil {
			return err
		}
		return s.StudentSubjectRepo.ReplaceForStudent(txCtx, st.ID, subjectIDs)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created student",
		"student_id", st.ID,
		"subjects", len(subjectIDs),
	)
	s.invalidateDashboard(ctx)

	return s.GetStudent(ctx, st.ID)
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("student_id is required").
			WithHint("Student ID is required").
			Mark(ierr.ErrValidation)
	}

	st, err := s.StudentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	subjects, err := s.StudentSubjectRepo.ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.StudentResponse{Student: st, Subjects: subjects}, nil
}

func (s *studentService) ListStudents(ctx context.Context, filter *types.StudentFilter) (*dto.ListStudentsResponse, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	students, err := s.StudentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.StudentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.StudentResponse, 0, len(students))
	for _, st := range students {
		subjects, err := s.StudentSubjectRepo.ListByStudent(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &dto.StudentResponse{Student: st, Subjects: subjects})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.StudentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(st)
	if err := st.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.StudentRepo.Update(txCtx, st); err != nil {
			return err
		}
		if req.SubjectIDs == nil {
			return nil
		}
		subjectIDs := lo.Uniq(lo.Compact(*req.SubjectIDs))
		if err := s.ensureSubjectsExist(txCtx, subjectIDs); err != nil {
			return err
		}
		// replacing the set drops custom fees of kept subjects too
		return s.StudentSubjectRepo.ReplaceForStudent(txCtx, id, subjectIDs)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("updated student", "student_id", id)
	return s.GetStudent(ctx, id)
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.StudentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted student", "student_id", id)
	s.invalidateDashboard(ctx)
	return nil
}

func (s *studentService) ensureSubjectsExist(ctx context.Context, subjectIDs []string) error {
	for _, id := range subjectIDs {
		if _, err := s.SubjectRepo.Get(ctx, id); err != nil {
			if ierr.IsNotFound(err) {
				return ierr.NewErrorf("subject %s not found", id).
					WithHintf("Subject %s does not exist", id).
					WithReportableDetails(map[string]any{"subject_id": id}).
					Mark(ierr.ErrValidation)
			}
			return err
		}
	}
	return nil
}

var _ StudentService = (*studentService)(nil)
