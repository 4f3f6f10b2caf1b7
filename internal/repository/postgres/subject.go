package postgres

import (
	"context"
	"time"

	"github.com/tutordesk/tutordesk/internal/domain/subject"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
)

type subjectRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubjectRepository(db *postgres.DB, logger *logger.Logger) subject.Repository {
	return &subjectRepository{db: db, logger: logger}
}

func (r *subjectRepository) Create(ctx context.Context, s *subject.Subject) error {
	query := `
		INSERT INTO subjects (id, subject_name, default_fee, created_at, updated_at)
		VALUES (:id, :subject_name, :default_fee, :created_at, :updated_at)`

	r.logger.Debugw("creating subject", "subject_id", s.ID, "default_fee", s.DefaultFee)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	return wrapError(err, "Subject", map[string]any{"subject_id": s.ID})
}

func (r *subjectRepository) Get(ctx context.Context, id string) (*subject.Subject, error) {
	var s subject.Subject
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, `SELECT * FROM subjects WHERE id = $1`, id)
	if err != nil {
		return nil, wrapError(err, "Subject", map[string]any{"subject_id": id})
	}
	return &s, nil
}

func (r *subjectRepository) List(ctx context.Context) ([]*subject.Subject, error) {
	subjects := make([]*subject.Subject, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &subjects,
		`SELECT * FROM subjects ORDER BY subject_name ASC, id ASC`)
	if err != nil {
		return nil, wrapError(err, "Subject", nil)
	}
	return subjects, nil
}

func (r *subjectRepository) Update(ctx context.Context, s *subject.Subject) error {
	query := `
		UPDATE subjects SET
			subject_name = :subject_name,
			default_fee = :default_fee,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating subject", "subject_id", s.ID)

	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		return wrapError(err, "Subject", map[string]any{"subject_id": s.ID})
	}
	return expectAffected(res, "Subject", map[string]any{"subject_id": s.ID})
}

func (r *subjectRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting subject", "subject_id", id)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Subject", map[string]any{"subject_id": id})
	}
	return expectAffected(res, "Subject", map[string]any{"subject_id": id})
}
