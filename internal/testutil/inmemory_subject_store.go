package testutil

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
)

// InMemorySubjectStore implements subject.Repository
type InMemorySubjectStore struct {
	*InMemoryStore[*subject.Subject]
}

func NewInMemorySubjectStore() *InMemorySubjectStore {
	return &InMemorySubjectStore{
		InMemoryStore: NewInMemoryStore[*subject.Subject](),
	}
}

func copySubject(s *subject.Subject) *subject.Subject {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (s *InMemorySubjectStore) Create(ctx context.Context, sub *subject.Subject) error {
	return s.InMemoryStore.Create(ctx, sub.ID, copySubject(sub))
}

func (s *InMemorySubjectStore) Get(ctx context.Context, id string) (*subject.Subject, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copySubject(sub), nil
}

func (s *InMemorySubjectStore) List(ctx context.Context) ([]*subject.Subject, error) {
	items, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *subject.Subject) bool {
		return strings.ToLower(i.SubjectName) < strings.ToLower(j.SubjectName)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(sub *subject.Subject, _ int) *subject.Subject {
		return copySubject(sub)
	}), nil
}

func (s *InMemorySubjectStore) Update(ctx context.Context, sub *subject.Subject) error {
	return s.InMemoryStore.Update(ctx, sub.ID, copySubject(sub))
}

func (s *InMemorySubjectStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
