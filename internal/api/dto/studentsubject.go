package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

// AssignSubjectRequest enrolls a student in a subject. A nil CustomFee bills the
// subject's default fee; zero is a valid custom fee.
type AssignSubjectRequest struct {
	SubjectID string           `json:"subject_id" validate:"required"`
	CustomFee *decimal.Decimal `json:"custom_fee,omitempty"`
}

type StudentSubjectResponse struct {
	*studentsubject.StudentSubject
	EffectiveFee decimal.Decimal `json:"effective_fee"`
}

func NewStudentSubjectResponse(ss *studentsubject.StudentSubject) *StudentSubjectResponse {
	return &StudentSubjectResponse{StudentSubject: ss, EffectiveFee: ss.EffectiveFee()}
}

func (r *AssignSubjectRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.CustomFee != nil && r.CustomFee.IsNegative() {
		return ierr.NewError("custom fee must be non negative").
			WithHint("Custom fee cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *AssignSubjectRequest) ToStudentSubject(studentID string) *studentsubject.StudentSubject {
	return &studentsubject.StudentSubject{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENROLLMENT),
		StudentID: studentID,
		SubjectID: r.SubjectID,
		CustomFee: r.CustomFee,
	}
}
