package student

import (
	"strings"

	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Student is a learner enrolled with the tutoring business
type Student struct {
	ID          string  `db:"id" json:"id"`
	StudentName string  `db:"student_name" json:"student_name"`
	ParentName  *string `db:"parent_name" json:"parent_name"`
	Phone       *string `db:"phone" json:"phone"`
	Email       *string `db:"email" json:"email"`
	Grade       *string `db:"grade" json:"grade"`
	Notes       *string `db:"notes" json:"notes"`
	types.BaseModel
}

func (s *Student) Validate() error {
	if strings.TrimSpace(s.StudentName) == "" {
		return ierr.NewError("student name is required").
			WithHint("Student name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MatchesSearch reports whether the student or parent name contains q, ignoring case
func (s *Student) MatchesSearch(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.StudentName), q) {
		return true
	}
	return s.ParentName != nil && strings.Contains(strings.ToLower(*s.ParentName), q)
}
