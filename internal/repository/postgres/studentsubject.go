package postgres

import (
	"context"
	"time"

	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	"github.com/tutordesk/tutordesk/internal/types"
)

type studentSubjectRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStudentSubjectRepository(db *postgres.DB, logger *logger.Logger) studentsubject.Repository {
	return &studentSubjectRepository{db: db, logger: logger}
}

func (r *studentSubjectRepository) ListByStudent(ctx context.Context, studentID string) ([]*studentsubject.StudentSubject, error) {
	query := `
		SELECT ss.id, ss.student_id, ss.subject_id, ss.custom_fee, ss.created_at,
			s.subject_name, s.default_fee
		FROM student_subjects ss
		JOIN subjects s ON s.id = ss.subject_id
		WHERE ss.student_id = $1
		ORDER BY s.subject_name ASC`

	assignments := make([]*studentsubject.StudentSubject, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &assignments, query, studentID); err != nil {
		return nil, wrapError(err, "Subject assignment", map[string]any{"student_id": studentID})
	}
	return assignments, nil
}

func (r *studentSubjectRepository) Upsert(ctx context.Context, a *studentsubject.StudentSubject) error {
	query := `
		INSERT INTO student_subjects (id, student_id, subject_id, custom_fee, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, subject_id) DO UPDATE SET custom_fee = EXCLUDED.custom_fee
		RETURNING id`

	if a.ID == "" {
		a.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	r.logger.Debugw("upserting subject assignment",
		"student_id", a.StudentID,
		"subject_id", a.SubjectID,
		"custom_fee", a.CustomFee,
	)

	var id string
	err := r.db.GetQuerier(ctx).GetContext(ctx, &id, query,
		a.ID, a.StudentID, a.SubjectID, a.CustomFee, a.CreatedAt)
	if err != nil {
		return wrapError(err, "Subject assignment", map[string]any{
			"student_id": a.StudentID,
			"subject_id": a.SubjectID,
		})
	}
	a.ID = id
	return nil
}

func (r *studentSubjectRepository) Delete(ctx context.Context, studentID, subjectID string) error {
	details := map[string]any{"student_id": studentID, "subject_id": subjectID}

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`DELETE FROM student_subjects WHERE student_id = $1 AND subject_id = $2`, studentID, subjectID)
	if err != nil {
		return wrapError(err, "Subject assignment", details)
	}
	return expectAffected(res, "Subject assignment", details)
}

func (r *studentSubjectRepository) ReplaceForStudent(ctx context.Context, studentID string, subjectIDs []string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)

		if _, err := q.ExecContext(ctx, `DELETE FROM student_subjects WHERE student_id = $1`, studentID); err != nil {
			return wrapError(err, "Subject assignment", map[string]any{"student_id": studentID})
		}

		now := time.Now().UTC()
		for _, subjectID := range subjectIDs {
			_, err := q.ExecContext(ctx, `
				INSERT INTO student_subjects (id, student_id, subject_id, created_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (student_id, subject_id) DO NOTHING`,
				types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT), studentID, subjectID, now)
			if err != nil {
				return wrapError(err, "Subject assignment", map[string]any{
					"student_id": studentID,
					"subject_id": subjectID,
				})
			}
		}

		r.logger.Debugw("replaced subject assignments", "student_id", studentID, "count", len(subjectIDs))
		return nil
	})
}
