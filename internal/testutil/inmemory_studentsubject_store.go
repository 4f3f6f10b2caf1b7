package testutil

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// InMemoryStudentSubjectStore implements studentsubject.Repository.
// Items are keyed by student and subject so the pair stays unique.
type InMemoryStudentSubjectStore struct {
	*InMemoryStore[*studentsubject.StudentSubject]
	subjects subject.Repository
}

// NewInMemoryStudentSubjectStore joins subject names and default fees from subjects
func NewInMemoryStudentSubjectStore(subjects subject.Repository) *InMemoryStudentSubjectStore {
	return &InMemoryStudentSubjectStore{
		InMemoryStore: NewInMemoryStore[*studentsubject.StudentSubject](),
		subjects:      subjects,
	}
}

func pairKey(studentID, subjectID string) string {
	return studentID + "/" + subjectID
}

func copyStudentSubject(a *studentsubject.StudentSubject) *studentsubject.StudentSubject {
	c := *a
	if a.CustomFee != nil {
		fee := *a.CustomFee
		c.CustomFee = &fee
	}
	c.DefaultFee = nil
	c.SubjectName = ""
	return &c
}

func (s *InMemoryStudentSubjectStore) ListByStudent(ctx context.Context, studentID string) ([]*studentsubject.StudentSubject, error) {
	items, err := s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, a *studentsubject.StudentSubject, _ interface{}) bool {
			return a.StudentID == studentID
		},
		func(i, j *studentsubject.StudentSubject) bool { return i.SubjectID < j.SubjectID },
	)
	if err != nil {
		return nil, err
	}

	out := make([]*studentsubject.StudentSubject, 0, len(items))
	for _, item := range items {
		a := copyStudentSubject(item)
		if s.subjects != nil {
			if sub, err := s.subjects.Get(ctx, a.SubjectID); err == nil {
				a.SubjectName = sub.SubjectName
				fee := sub.DefaultFee
				a.DefaultFee = &fee
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *InMemoryStudentSubjectStore) Upsert(ctx context.Context, a *studentsubject.StudentSubject) error {
	key := pairKey(a.StudentID, a.SubjectID)
	if existing, err := s.InMemoryStore.Get(ctx, key); err == nil {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		if a.ID == "" {
			a.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT)
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
	}
	s.InMemoryStore.Put(ctx, key, copyStudentSubject(a))
	return nil
}

func (s *InMemoryStudentSubjectStore) Delete(ctx context.Context, studentID, subjectID string) error {
	if err := s.InMemoryStore.Delete(ctx, pairKey(studentID, subjectID)); err != nil {
		return ierr.WithError(err).
			WithHint("Subject assignment not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryStudentSubjectStore) ReplaceForStudent(ctx context.Context, studentID string, subjectIDs []string) error {
	s.InMemoryStore.DeleteWhere(func(a *studentsubject.StudentSubject) bool {
		return a.StudentID == studentID
	})
	now := time.Now().UTC()
	for _, subjectID := range subjectIDs {
		s.InMemoryStore.Put(ctx, pairKey(studentID, subjectID), &studentsubject.StudentSubject{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT),
			StudentID: studentID,
			SubjectID: subjectID,
			CreatedAt: now,
		})
	}
	return nil
}

// Assign is a test helper storing an assignment with an optional custom fee
func (s *InMemoryStudentSubjectStore) Assign(ctx context.Context, studentID, subjectID string, customFee *decimal.Decimal) {
	_ = s.Upsert(ctx, &studentsubject.StudentSubject{
		StudentID: studentID,
		SubjectID: subjectID,
		CustomFee: customFee,
	})
}
