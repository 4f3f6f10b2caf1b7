package testutil

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/types"
)

// InMemoryStudentStore implements student.Repository
type InMemoryStudentStore struct {
	*InMemoryStore[*student.Student]
}

func NewInMemoryStudentStore() *InMemoryStudentStore {
	return &InMemoryStudentStore{
		InMemoryStore: NewInMemoryStore[*student.Student](),
	}
}

func copyStudent(s *student.Student) *student.Student {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (s *InMemoryStudentStore) Create(ctx context.Context, st *student.Student) error {
	return s.InMemoryStore.Create(ctx, st.ID, copyStudent(st))
}

func (s *InMemoryStudentStore) Get(ctx context.Context, id string) (*student.Student, error) {
	st, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyStudent(st), nil
}

func (s *InMemoryStudentStore) List(ctx context.Context, filter *types.StudentFilter) ([]*student.Student, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}
	items, err := s.InMemoryStore.List(ctx, filter, studentFilterFn, studentSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(st *student.Student, _ int) *student.Student {
		return copyStudent(st)
	}), nil
}

func (s *InMemoryStudentStore) Count(ctx context.Context, filter *types.StudentFilter) (int, error) {
	if filter == nil {
		filter = &types.StudentFilter{}
	}
	return s.InMemoryStore.Count(ctx, filter, studentFilterFn)
}

func (s *InMemoryStudentStore) Update(ctx context.Context, st *student.Student) error {
	return s.InMemoryStore.Update(ctx, st.ID, copyStudent(st))
}

func (s *InMemoryStudentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func studentFilterFn(ctx context.Context, st *student.Student, filter interface{}) bool {
	f, ok := filter.(*types.StudentFilter)
	if !ok || f == nil {
		return true
	}
	return st.MatchesSearch(f.Search)
}

func studentSortFn(i, j *student.Student) bool {
	a, b := strings.ToLower(i.StudentName), strings.ToLower(j.StudentName)
	if a == b {
		return i.ID < j.ID
	}
	return a < b
}
