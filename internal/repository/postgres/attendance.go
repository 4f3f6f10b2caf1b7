package postgres

import (
	"context"
	"time"

	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	"github.com/tutordesk/tutordesk/internal/types"
)

type attendanceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAttendanceRepository(db *postgres.DB, logger *logger.Logger) attendance.Repository {
	return &attendanceRepository{db: db, logger: logger}
}

const attendanceSelect = `
	SELECT a.id, a.student_id, a.subject_id, a.date, a.status, a.created_at, a.updated_at,
		st.student_name, sb.subject_name
	FROM attendance a
	JOIN students st ON st.id = a.student_id
	JOIN subjects sb ON sb.id = a.subject_id`

func (r *attendanceRepository) Upsert(ctx context.Context, rec *attendance.Attendance) error {
	query := `
		INSERT INTO attendance (id, student_id, subject_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (student_id, subject_id, date)
		DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		RETURNING id`

	if rec.ID == "" {
		rec.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ATTENDANCE)
	}
	now := time.Now().UTC()

	r.logger.Debugw("marking attendance",
		"student_id", rec.StudentID,
		"subject_id", rec.SubjectID,
		"date", rec.Date.String(),
		"status", rec.Status,
	)

	var id string
	err := r.db.GetQuerier(ctx).GetContext(ctx, &id, query,
		rec.ID, rec.StudentID, rec.SubjectID, rec.Date, rec.Status, now)
	if err != nil {
		return wrapError(err, "Attendance", map[string]any{
			"student_id": rec.StudentID,
			"subject_id": rec.SubjectID,
			"date":       rec.Date.String(),
		})
	}
	rec.ID = id
	rec.UpdatedAt = now
	return nil
}

func (r *attendanceRepository) Get(ctx context.Context, id string) (*attendance.Attendance, error) {
	var rec attendance.Attendance
	err := r.db.GetQuerier(ctx).GetContext(ctx, &rec, attendanceSelect+` WHERE a.id = $1`, id)
	if err != nil {
		return nil, wrapError(err, "Attendance", map[string]any{"attendance_id": id})
	}
	return &rec, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter *types.AttendanceFilter) ([]*attendance.Attendance, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}

	query := attendanceSelect + `
		WHERE ($1::text = '' OR a.student_id = $1::text)
		AND ($2::date IS NULL OR a.date = $2::date)
		ORDER BY a.date DESC, st.student_name ASC, sb.subject_name ASC
		LIMIT $3 OFFSET $4`

	records := make([]*attendance.Attendance, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &records, query,
		filter.StudentID, optionalDate(filter.Date), filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, wrapError(err, "Attendance", nil)
	}
	return records, nil
}

func (r *attendanceRepository) Count(ctx context.Context, filter *types.AttendanceFilter) (int, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}

	query := `
		SELECT COUNT(*) FROM attendance
		WHERE ($1::text = '' OR student_id = $1::text)
		AND ($2::date IS NULL OR date = $2::date)`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, filter.StudentID, optionalDate(filter.Date)); err != nil {
		return 0, wrapError(err, "Attendance", nil)
	}
	return count, nil
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]*attendance.Attendance, error) {
	records := make([]*attendance.Attendance, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &records,
		attendanceSelect+` WHERE a.student_id = $1 ORDER BY a.date ASC`, studentID)
	if err != nil {
		return nil, wrapError(err, "Attendance", map[string]any{"student_id": studentID})
	}
	return records, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting attendance", "attendance_id", id)

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Attendance", map[string]any{"attendance_id": id})
	}
	return expectAffected(res, "Attendance", map[string]any{"attendance_id": id})
}
