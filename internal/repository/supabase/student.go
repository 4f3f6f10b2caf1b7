package supabase

import (
	"context"
	"strings"
	"time"

	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

const tableStudents = "students"

type studentRepository struct {
	client *Client
	logger *logger.Logger
}

func NewStudentRepository(client *Client, logger *logger.Logger) student.Repository {
	return &studentRepository{client: client, logger: logger}
}

func (r *studentRepository) Create(ctx context.Context, s *student.Student) error {
	r.logger.Debugw("creating student", "student_id", s.ID)

	var out []student.Student
	err := r.client.DB.From(tableStudents).Insert(s).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Student", map[string]any{"student_id": s.ID})
}

func (r *studentRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	var rows []*student.Student
	if err := r.client.DB.From(tableStudents).Select("*").Eq("id", id).ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Student", map[string]any{"student_id": id})
	}
	if len(rows) == 0 {
		return nil, notFound("Student", map[string]any{"student_id": id})
	}
	return rows[0], nil
}

func studentWhere(filter *types.StudentFilter) func(q *postgrest.FilterRequestBuilder) {
	return func(q *postgrest.FilterRequestBuilder) {
		if strings.TrimSpace(filter.Search) == "" {
			return
		}
		pattern := containsPattern(filter.Search)
		anyOf(q, "student_name.ilike."+pattern, "parent_name.ilike."+pattern)
	}
}

func (r *studentRepository) List(ctx context.Context, filter *types.StudentFilter) ([]*student.Student, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}

	q := r.client.DB.From(tableStudents).Select("*")
	studentWhere(filter)(&q.FilterRequestBuilder)
	orderBy(q, "student_name.asc", "id.asc").LimitWithOffset(filter.GetLimit(), filter.GetOffset())

	rows := make([]*student.Student, 0)
	if err := q.ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Student", nil)
	}
	return rows, nil
}

func (r *studentRepository) Count(ctx context.Context, filter *types.StudentFilter) (int, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}

	n, err := r.client.count(ctx, tableStudents, studentWhere(filter))
	if err != nil {
		return 0, wrapError(err, "Student", nil)
	}
	return n, nil
}

func (r *studentRepository) Update(ctx context.Context, s *student.Student) error {
	if _, err := r.Get(ctx, s.ID); err != nil {
		return err
	}

	r.logger.Debugw("updating student", "student_id", s.ID)

	s.UpdatedAt = time.Now().UTC()
	patch := map[string]any{
		"student_name": s.StudentName,
		"parent_name":  s.ParentName,
		"phone":        s.Phone,
		"email":        s.Email,
		"grade":        s.Grade,
		"notes":        s.Notes,
		"updated_at":   s.UpdatedAt,
	}

	var out []student.Student
	if err := r.client.DB.From(tableStudents).Update(patch).Eq("id", s.ID).ExecuteWithContext(ctx, &out); err != nil {
		return wrapError(err, "Student", map[string]any{"student_id": s.ID})
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	r.logger.Debugw("deleting student", "student_id", id)

	var out []student.Student
	if err := r.client.DB.From(tableStudents).Delete().Eq("id", id).ExecuteWithContext(ctx, &out); err != nil {
		return wrapError(err, "Student", map[string]any{"student_id": id})
	}
	return nil
}
