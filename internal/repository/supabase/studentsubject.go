package supabase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

const tableStudentSubjects = "student_subjects"

// studentSubjectRow is the stored shape with the subject embedded by PostgREST
type studentSubjectRow struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	SubjectID string           `json:"subject_id"`
	CustomFee *decimal.Decimal `json:"custom_fee"`
	CreatedAt time.Time        `json:"created_at"`
	Subjects  *struct {
		SubjectName string          `json:"subject_name"`
		DefaultFee  decimal.Decimal `json:"default_fee"`
	} `json:"subjects,omitempty"`
}

func (row *studentSubjectRow) toDomain() *studentsubject.StudentSubject {
	a := &studentsubject.StudentSubject{
		ID:        row.ID,
		StudentID: row.StudentID,
		SubjectID: row.SubjectID,
		CustomFee: row.CustomFee,
		CreatedAt: row.CreatedAt,
	}
	if row.Subjects != nil {
		a.SubjectName = row.Subjects.SubjectName
		fee := row.Subjects.DefaultFee
		a.DefaultFee = &fee
	}
	return a
}

type studentSubjectRepository struct {
	client *Client
	logger *logger.Logger
}

func NewStudentSubjectRepository(client *Client, logger *logger.Logger) studentsubject.Repository {
	return &studentSubjectRepository{client: client, logger: logger}
}

func (r *studentSubjectRepository) ListByStudent(ctx context.Context, studentID string) ([]*studentsubject.StudentSubject, error) {
	q := r.client.DB.From(tableStudentSubjects).Select("*,subjects(subject_name,default_fee)")
	q.Eq("student_id", studentID)

	var rows []studentSubjectRow
	if err := orderBy(q, "subjects(subject_name).asc").ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Subject assignment", map[string]any{"student_id": studentID})
	}

	assignments := make([]*studentsubject.StudentSubject, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, rows[i].toDomain())
	}
	return assignments, nil
}

func (r *studentSubjectRepository) find(ctx context.Context, studentID, subjectID string) (*studentSubjectRow, error) {
	var rows []studentSubjectRow
	err := r.client.DB.From(tableStudentSubjects).Select("*").
		Eq("student_id", studentID).
		Eq("subject_id", subjectID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, wrapError(err, "Subject assignment", map[string]any{
			"student_id": studentID,
			"subject_id": subjectID,
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *studentSubjectRepository) Upsert(ctx context.Context, a *studentsubject.StudentSubject) error {
	details := map[string]any{"student_id": a.StudentID, "subject_id": a.SubjectID}

	existing, err := r.find(ctx, a.StudentID, a.SubjectID)
	if err != nil {
		return err
	}

	r.logger.Debugw("upserting subject assignment",
		"student_id", a.StudentID,
		"subject_id", a.SubjectID,
		"custom_fee", a.CustomFee,
	)

	var out []studentSubjectRow
	if existing != nil {
		err = r.client.DB.From(tableStudentSubjects).
			Update(map[string]any{"custom_fee": a.CustomFee}).
			Eq("id", existing.ID).
			ExecuteWithContext(ctx, &out)
		if err != nil {
			return wrapError(err, "Subject assignment", details)
		}
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		return nil
	}

	if a.ID == "" {
		a.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	row := studentSubjectRow{
		ID:        a.ID,
		StudentID: a.StudentID,
		SubjectID: a.SubjectID,
		CustomFee: a.CustomFee,
		CreatedAt: a.CreatedAt,
	}
	err = r.client.DB.From(tableStudentSubjects).Insert(row).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Subject assignment", details)
}

func (r *studentSubjectRepository) Delete(ctx context.Context, studentID, subjectID string) error {
	details := map[string]any{"student_id": studentID, "subject_id": subjectID}

	existing, err := r.find(ctx, studentID, subjectID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("Subject assignment", details)
	}

	var out []studentSubjectRow
	err = r.client.DB.From(tableStudentSubjects).Delete().Eq("id", existing.ID).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Subject assignment", details)
}

func (r *studentSubjectRepository) ReplaceForStudent(ctx context.Context, studentID string, subjectIDs []string) error {
	var out []studentSubjectRow
	if err := r.client.DB.From(tableStudentSubjects).Delete().Eq("student_id", studentID).ExecuteWithContext(ctx, &out); err != nil {
		return wrapError(err, "Subject assignment", map[string]any{"student_id": studentID})
	}
	if len(subjectIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]studentSubjectRow, 0, len(subjectIDs))
	seen := make(map[string]struct{}, len(subjectIDs))
	for _, subjectID := range subjectIDs {
		if _, dup := seen[subjectID]; dup {
			continue
		}
		seen[subjectID] = struct{}{}
		rows = append(rows, studentSubjectRow{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT),
			StudentID: studentID,
			SubjectID: subjectID,
			CreatedAt: now,
		})
	}

	r.logger.Debugw("replacing subject assignments", "student_id", studentID, "count", len(rows))

	err := r.client.DB.From(tableStudentSubjects).Insert(rows).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Subject assignment", map[string]any{"student_id": studentID})
}
