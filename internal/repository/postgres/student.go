package postgres

import (
	"context"
	"time"

	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	"github.com/tutordesk/tutordesk/internal/types"
)

type studentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStudentRepository(db *postgres.DB, logger *logger.Logger) student.Repository {
	return &studentRepository{db: db, logger: logger}
}

func (r *studentRepository) Create(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (
			id, student_name, parent_name, phone, email, grade, notes, created_at, updated_at
		) VALUES (
			:id, :student_name, :parent_name, :phone, :email, :grade, :notes, :created_at, :updated_at
		)`

	r.logger.Debugw("creating student", "student_id", s.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	return wrapError(err, "Student", map[string]any{"student_id": s.ID})
}

func (r *studentRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	var s student.Student
	err := r.db.GetQuerier(ctx).GetContext(ctx, &s, `SELECT * FROM students WHERE id = $1`, id)
	if err != nil {
		return nil, wrapError(err, "Student", map[string]any{"student_id": id})
	}
	return &s, nil
}

func (r *studentRepository) List(ctx context.Context, filter *types.StudentFilter) ([]*student.Student, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}

	query := `
		SELECT * FROM students
		WHERE ($1::text = '' OR student_name ILIKE '%' || $1::text || '%' OR parent_name ILIKE '%' || $1::text || '%')
		ORDER BY student_name ASC, id ASC
		LIMIT $2 OFFSET $3`

	students := make([]*student.Student, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &students, query,
		filter.Search, filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, wrapError(err, "Student", nil)
	}
	return students, nil
}

func (r *studentRepository) Count(ctx context.Context, filter *types.StudentFilter) (int, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}

	query := `
		SELECT COUNT(*) FROM students
		WHERE ($1::text = '' OR student_name ILIKE '%' || $1::text || '%' OR parent_name ILIKE '%' || $1::text || '%')`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, filter.Search); err != nil {
		return 0, wrapError(err, "Student", nil)
	}
	return count, nil
}

func (r *studentRepository) Update(ctx context.Context, s *student.Student) error {
	query := `
		UPDATE students SET
			student_name = :student_name,
			parent_name = :parent_name,
			phone = :phone,
			email = :email,
			grade = :grade,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating student", "student_id", s.ID)

	s.UpdatedAt = time.Now().UTC()
	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		return wrapError(err, "Student", map[string]any{"student_id": s.ID})
	}
	return expectAffected(res, "Student", map[string]any{"student_id": s.ID})
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting student", "student_id", id)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Student", map[string]any{"student_id": id})
	}
	return expectAffected(res, "Student", map[string]any{"student_id": id})
}
