package service

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/api/dto"
)

// StudentSubjectService manages which subjects a student takes and at what fee
type StudentSubjectService interface {
	ListStudentSubjects(ctx context.Context, studentID string) ([]*dto.StudentSubjectResponse, error)
	AssignSubject(ctx context.Context, studentID string, req dto.AssignSubjectRequest) (*dto.StudentSubjectResponse, error)
	RemoveSubject(ctx context.Context, studentID, subjectID string) error
}

type studentSubjectService struct {
	ServiceParams
}

func NewStudentSubjectService(params ServiceParams) StudentSubjectService {
	return &studentSubjectService{
		ServiceParams: params,
	}
}

func (s *studentSubjectService) ListStudentSubjects(ctx context.Context, studentID string) ([]*dto.StudentSubjectResponse, error) {
	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}

	assignments, err := s.StudentSubjectRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.StudentSubjectResponse, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, dto.NewStudentSubjectResponse(a))
	}
	return items, nil
}

func (s *studentSubjectService) AssignSubject(ctx context.Context, studentID string, req dto.AssignSubjectRequest) (*dto.StudentSubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.StudentRepo.Get(ctx, studentID); err != nil {
		return nil, err
	}
	sub, err := s.SubjectRepo.Get(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	assignment := req.ToStudentSubject(studentID)
	if err := assignment.Validate(); err != nil {
		return nil, err
	}
	if err := s.StudentSubjectRepo.Upsert(ctx, assignment); err != nil {
		return nil, err
	}

	assignment.SubjectName = sub.SubjectName
	defaultFee := sub.DefaultFee
	assignment.DefaultFee = &defaultFee

	s.Logger.Infow("assigned subject to student",
		"student_id", studentID,
		"subject_id", req.SubjectID,
		"custom_fee", assignment.CustomFee,
		"effective_fee", assignment.EffectiveFee(),
	)
	return dto.NewStudentSubjectResponse(assignment), nil
}

func (s *studentSubjectService) RemoveSubject(ctx context.Context, studentID, subjectID string) error {
	if err := s.StudentSubjectRepo.Delete(ctx, studentID, subjectID); err != nil {
		return err
	}
	s.Logger.Infow("removed subject from student",
		"student_id", studentID,
		"subject_id", subjectID,
	)
	return nil
}
