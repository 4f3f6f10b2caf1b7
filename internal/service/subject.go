package service

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/types"
)

type SubjectService interface {
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetSubject(ctx context.Context, id string) (*dto.SubjectResponse, error)
	ListSubjects(ctx context.Context) (*dto.ListSubjectsResponse, error)
	UpdateSubject(ctx context.Context, id string, req dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, id string) error
}

type subjectService struct {
	ServiceParams
}

func NewSubjectService(params ServiceParams) SubjectService {
	return &subjectService{
		ServiceParams: params,
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub := req.ToSubject()
	if err := s.SubjectRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subject",
		"subject_id", sub.ID,
		"default_fee", sub.DefaultFee,
	)
	return &dto.SubjectResponse{Subject: sub}, nil
}

func (s *subjectService) GetSubject(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	sub, err := s.SubjectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SubjectResponse{Subject: sub}, nil
}

func (s *subjectService) ListSubjects(ctx context.Context) (*dto.ListSubjectsResponse, error) {
	subjects, err := s.SubjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		items = append(items, &dto.SubjectResponse{Subject: sub})
	}

	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

func (s *subjectService) UpdateSubject(ctx context.Context, id string, req dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubjectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(sub)
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.SubjectRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated subject",
		"subject_id", id,
		"default_fee", sub.DefaultFee,
	)
	return &dto.SubjectResponse{Subject: sub}, nil
}

// DeleteSubject removes the subject along with its fee assignments and attendance
func (s *subjectService) DeleteSubject(ctx context.Context, id string) error {
	if err := s.SubjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted subject", "subject_id", id)
	return nil
}
