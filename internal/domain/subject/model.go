package subject

import (
	"strings"

	"github.com/shopspring/decimal"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Subject is something taught, billed per session at DefaultFee unless a student has a custom fee
type Subject struct {
	ID          string          `db:"id" json:"id"`
	SubjectName string          `db:"subject_name" json:"subject_name"`
	DefaultFee  decimal.Decimal `db:"default_fee" json:"default_fee"`
	types.BaseModel
}

func (s *Subject) Validate() error {
	if strings.TrimSpace(s.SubjectName) == "" {
		return ierr.NewError("subject name is required").
			WithHint("Subject name is required").
			Mark(ierr.ErrValidation)
	}
	if s.DefaultFee.IsNegative() {
		return ierr.NewError("default fee must be non negative").
			WithHint("Default fee cannot be negative").
			WithReportableDetails(map[string]any{
				"default_fee": s.DefaultFee.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
