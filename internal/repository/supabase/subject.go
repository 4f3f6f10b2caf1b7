package supabase

import (
	"context"
	"time"

	"github.com/tutordesk/tutordesk/internal/domain/subject"
	"github.com/tutordesk/tutordesk/internal/logger"
)

const tableSubjects = "subjects"

type subjectRepository struct {
	client *Client
	logger *logger.Logger
}

func NewSubjectRepository(client *Client, logger *logger.Logger) subject.Repository {
	return &subjectRepository{client: client, logger: logger}
}

func (r *subjectRepository) Create(ctx context.Context, s *subject.Subject) error {
	r.logger.Debugw("creating subject", "subject_id", s.ID, "default_fee", s.DefaultFee)

	var out []subject.Subject
	err := r.client.DB.From(tableSubjects).Insert(s).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Subject", map[string]any{"subject_id": s.ID})
}

func (r *subjectRepository) Get(ctx context.Context, id string) (*subject.Subject, error) {
	var rows []*subject.Subject
	if err := r.client.DB.From(tableSubjects).Select("*").Eq("id", id).ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Subject", map[string]any{"subject_id": id})
	}
	if len(rows) == 0 {
		return nil, notFound("Subject", map[string]any{"subject_id": id})
	}
	return rows[0], nil
}

func (r *subjectRepository) List(ctx context.Context) ([]*subject.Subject, error) {
	q := r.client.DB.From(tableSubjects).Select("*")

	rows := make([]*subject.Subject, 0)
	if err := orderBy(q, "subject_name.asc", "id.asc").ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Subject", nil)
	}
	return rows, nil
}

func (r *subjectRepository) Update(ctx context.Context, s *subject.Subject) error {
	if _, err := r.Get(ctx, s.ID); err != nil {
		return err
	}

	r.logger.Debugw("updating subject", "subject_id", s.ID)

	s.UpdatedAt = time.Now().UTC()
	patch := map[string]any{
		"subject_name": s.SubjectName,
		"default_fee":  s.DefaultFee,
		"updated_at":   s.UpdatedAt,
	}

	var out []subject.Subject
	if err := r.client.DB.From(tableSubjects).Update(patch).Eq("id", s.ID).ExecuteWithContext(ctx, &out); err != nil {
		return wrapError(err, "Subject", map[string]any{"subject_id": s.ID})
	}
	return nil
}

func (r *subjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	r.logger.Debugw("deleting subject", "subject_id", id)

	var out []subject.Subject
	if err := r.client.DB.From(tableSubjects).Delete().Eq("id", id).ExecuteWithContext(ctx, &out); err != nil {
		return wrapError(err, "Subject", map[string]any{"subject_id": id})
	}
	return nil
}
