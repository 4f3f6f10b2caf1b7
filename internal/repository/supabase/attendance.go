package supabase

import (
	"context"
	"time"

	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	tableAttendance  = "attendance"
	attendanceSelect = "*,students(student_name),subjects(subject_name)"
)

type attendanceRow struct {
	ID        string                 `json:"id"`
	StudentID string                 `json:"student_id"`
	SubjectID string                 `json:"subject_id"`
	Date      types.Date             `json:"date"`
	Status    types.AttendanceStatus `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Students  *studentName           `json:"students,omitempty"`
	Subjects  *struct {
		SubjectName string `json:"subject_name"`
	} `json:"subjects,omitempty"`
}

type studentName struct {
	StudentName string `json:"student_name"`
}

func (row *attendanceRow) toDomain() *attendance.Attendance {
	rec := &attendance.Attendance{
		ID:        row.ID,
		StudentID: row.StudentID,
		SubjectID: row.SubjectID,
		Date:      row.Date,
		Status:    row.Status,
		BaseModel: types.BaseModel{CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt},
	}
	if row.Students != nil {
		rec.StudentName = row.Students.StudentName
	}
	if row.Subjects != nil {
		rec.SubjectName = row.Subjects.SubjectName
	}
	return rec
}

type attendanceRepository struct {
	client *Client
	logger *logger.Logger
}

func NewAttendanceRepository(client *Client, logger *logger.Logger) attendance.Repository {
	return &attendanceRepository{client: client, logger: logger}
}

func (r *attendanceRepository) Upsert(ctx context.Context, rec *attendance.Attendance) error {
	details := map[string]any{
		"student_id": rec.StudentID,
		"subject_id": rec.SubjectID,
		"date":       rec.Date.String(),
	}

	var existing []attendanceRow
	err := r.client.DB.From(tableAttendance).Select("*").
		Eq("student_id", rec.StudentID).
		Eq("subject_id", rec.SubjectID).
		Eq("date", rec.Date.String()).
		ExecuteWithContext(ctx, &existing)
	if err != nil {
		return wrapError(err, "Attendance", details)
	}

	r.logger.Debugw("marking attendance",
		"student_id", rec.StudentID,
		"subject_id", rec.SubjectID,
		"date", rec.Date.String(),
		"status", rec.Status,
	)

	now := time.Now().UTC()
	var out []attendanceRow
	if len(existing) > 0 {
		err = r.client.DB.From(tableAttendance).
			Update(map[string]any{"status": rec.Status, "updated_at": now}).
			Eq("id", existing[0].ID).
			ExecuteWithContext(ctx, &out)
		if err != nil {
			return wrapError(err, "Attendance", details)
		}
		rec.ID = existing[0].ID
		rec.CreatedAt = existing[0].CreatedAt
		rec.UpdatedAt = now
		return nil
	}

	if rec.ID == "" {
		rec.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ATTENDANCE)
	}
	rec.CreatedAt, rec.UpdatedAt = now, now
	row := attendanceRow{
		ID:        rec.ID,
		StudentID: rec.StudentID,
		SubjectID: rec.SubjectID,
		Date:      rec.Date,
		Status:    rec.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = r.client.DB.From(tableAttendance).Insert(row).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Attendance", details)
}

func (r *attendanceRepository) Get(ctx context.Context, id string) (*attendance.Attendance, error) {
	var rows []attendanceRow
	err := r.client.DB.From(tableAttendance).Select(attendanceSelect).Eq("id", id).ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, wrapError(err, "Attendance", map[string]any{"attendance_id": id})
	}
	if len(rows) == 0 {
		return nil, notFound("Attendance", map[string]any{"attendance_id": id})
	}
	return rows[0].toDomain(), nil
}

func attendanceWhere(filter *types.AttendanceFilter) func(q *postgrest.FilterRequestBuilder) {
	return func(q *postgrest.FilterRequestBuilder) {
		if filter.StudentID != "" {
			q.Eq("student_id", filter.StudentID)
		}
		if filter.Date != nil && !filter.Date.IsZero() {
			q.Eq("date", filter.Date.String())
		}
	}
}

func (r *attendanceRepository) List(ctx context.Context, filter *types.AttendanceFilter) ([]*attendance.Attendance, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}

	q := r.client.DB.From(tableAttendance).Select(attendanceSelect)
	attendanceWhere(filter)(&q.FilterRequestBuilder)
	orderBy(q, "date.desc", "students(student_name).asc", "subjects(subject_name).asc").
		LimitWithOffset(filter.GetLimit(), filter.GetOffset())

	var rows []attendanceRow
	if err := q.ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Attendance", nil)
	}
	return toAttendance(rows), nil
}

func (r *attendanceRepository) Count(ctx context.Context, filter *types.AttendanceFilter) (int, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}

	n, err := r.client.count(ctx, tableAttendance, attendanceWhere(filter))
	if err != nil {
		return 0, wrapError(err, "Attendance", nil)
	}
	return n, nil
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]*attendance.Attendance, error) {
	q := r.client.DB.From(tableAttendance).Select(attendanceSelect)
	q.Eq("student_id", studentID)

	var rows []attendanceRow
	if err := orderBy(q, "date.asc").ExecuteWithContext(ctx, &rows); err != nil {
		return nil, wrapError(err, "Attendance", map[string]any{"student_id": studentID})
	}
	return toAttendance(rows), nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	r.logger.Debugw("deleting attendance", "attendance_id", id)

	var out []attendanceRow
	err := r.client.DB.From(tableAttendance).Delete().Eq("id", id).ExecuteWithContext(ctx, &out)
	return wrapError(err, "Attendance", map[string]any{"attendance_id": id})
}

func toAttendance(rows []attendanceRow) []*attendance.Attendance {
	records := make([]*attendance.Attendance, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toDomain())
	}
	return records
}
