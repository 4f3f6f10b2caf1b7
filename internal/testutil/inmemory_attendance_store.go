package testutil

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/types"
)

// InMemoryAttendanceStore implements attendance.Repository
type InMemoryAttendanceStore struct {
	*InMemoryStore[*attendance.Attendance]
}

func NewInMemoryAttendanceStore() *InMemoryAttendanceStore {
	return &InMemoryAttendanceStore{
		InMemoryStore: NewInMemoryStore[*attendance.Attendance](),
	}
}

func copyAttendance(a *attendance.Attendance) *attendance.Attendance {
	c := *a
	return &c
}

func (s *InMemoryAttendanceStore) Upsert(ctx context.Context, rec *attendance.Attendance) error {
	now := time.Now().UTC()

	existing, _ := s.InMemoryStore.List(ctx, nil, func(_ context.Context, a *attendance.Attendance, _ interface{}) bool {
		return a.StudentID == rec.StudentID && a.SubjectID == rec.SubjectID && a.Date.Equal(rec.Date)
	}, nil)
	if len(existing) > 0 {
		stored := existing[0]
		stored.Status = rec.Status
		stored.UpdatedAt = now
		rec.ID = stored.ID
		rec.CreatedAt = stored.CreatedAt
		rec.UpdatedAt = now
		return nil
	}

	if rec.ID == "" {
		rec.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ATTENDANCE)
	}
	rec.CreatedAt, rec.UpdatedAt = now, now
	return s.InMemoryStore.Create(ctx, rec.ID, copyAttendance(rec))
}

func (s *InMemoryAttendanceStore) Get(ctx context.Context, id string) (*attendance.Attendance, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyAttendance(a), nil
}

func (s *InMemoryAttendanceStore) List(ctx context.Context, filter *types.AttendanceFilter) ([]*attendance.Attendance, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}
	items, err := s.InMemoryStore.List(ctx, filter, attendanceFilterFn, func(i, j *attendance.Attendance) bool {
		if !i.Date.Equal(j.Date) {
			return i.Date.After(j.Date)
		}
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(a *attendance.Attendance, _ int) *attendance.Attendance {
		return copyAttendance(a)
	}), nil
}

func (s *InMemoryAttendanceStore) Count(ctx context.Context, filter *types.AttendanceFilter) (int, error) {
	if filter == nil {
		filter = &types.AttendanceFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, attendanceFilterFn)
}

func (s *InMemoryAttendanceStore) ListByStudent(ctx context.Context, studentID string) ([]*attendance.Attendance, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, a *attendance.Attendance, _ interface{}) bool {
		return a.StudentID == studentID
	}, func(i, j *attendance.Attendance) bool { return i.Date.Before(j.Date) })
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(a *attendance.Attendance, _ int) *attendance.Attendance {
		return copyAttendance(a)
	}), nil
}

func (s *InMemoryAttendanceStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func attendanceFilterFn(ctx context.Context, a *attendance.Attendance, filter interface{}) bool {
	f, ok := filter.(*types.AttendanceFilter)
	if !ok || f == nil {
		return true
	}
	if f.StudentID != "" && a.StudentID != f.StudentID {
		return false
	}
	if f.Date != nil && !f.Date.IsZero() && !a.Date.Equal(*f.Date) {
		return false
	}
	return true
}
