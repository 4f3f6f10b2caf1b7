package studentsubject

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

// StudentSubject assigns a subject to a student, optionally overriding the subject's default fee.
// There is at most one assignment per (StudentID, SubjectID).
type StudentSubject struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"student_id"`
	SubjectID string           `db:"subject_id" json:"subject_id"`
	CustomFee *decimal.Decimal `db:"custom_fee" json:"custom_fee"`

	// Read-only fields joined from subjects
	SubjectName string           `db:"subject_name" json:"subject_name,omitempty"`
	DefaultFee  *decimal.Decimal `db:"default_fee" json:"default_fee,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EffectiveFee is the per-session fee: the custom fee when set, else the
// subject default, else zero.
func (s *StudentSubject) EffectiveFee() decimal.Decimal {
	if s.CustomFee != nil {
		return *s.CustomFee
	}
	if s.DefaultFee != nil {
		return *s.DefaultFee
	}
	return decimal.Zero
}

func (s *StudentSubject) Validate() error {
	if s.StudentID == "" || s.SubjectID == "" {
		return ierr.NewError("student_id and subject_id are required").
			WithHint("Both student and subject are required").
			Mark(ierr.ErrValidation)
	}
	if s.CustomFee != nil && s.CustomFee.IsNegative() {
		return ierr.NewError("custom fee must be non negative").
			WithHint("Custom fee cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
