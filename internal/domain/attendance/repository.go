package attendance

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/types"
)

// Repository defines the interface for attendance persistence operations
type Repository interface {
	// Upsert inserts the record or overwrites the status of the existing
	// (student, subject, date) record. The stored id is written back to record.ID.
	Upsert(ctx context.Context, record *Attendance) error
	Get(ctx context.Context, id string) (*Attendance, error)
	List(ctx context.Context, filter *types.AttendanceFilter) ([]*Attendance, error)
	Count(ctx context.Context, filter *types.AttendanceFilter) (int, error)
	// ListByStudent returns every record of the student regardless of date or status
	ListByStudent(ctx context.Context, studentID string) ([]*Attendance, error)
	Delete(ctx context.Context, id string) error
}
