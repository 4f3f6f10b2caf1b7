package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

type CreateSubjectRequest struct {
	SubjectName string          `json:"subject_name" validate:"required,max=255"`
	DefaultFee  decimal.Decimal `json:"default_fee"`
}

type UpdateSubjectRequest struct {
	SubjectName *string          `json:"subject_name,omitempty" validate:"omitempty,max=255"`
	DefaultFee  *decimal.Decimal `json:"default_fee,omitempty"`
}

type SubjectResponse struct {
	*subject.Subject
}

type ListSubjectsResponse = types.ListResponse[*SubjectResponse]

func (r *CreateSubjectRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToSubject().Validate()
}

func (r *CreateSubjectRequest) ToSubject() *subject.Subject {
	return &subject.Subject{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBJECT),
		SubjectName: strings.TrimSpace(r.SubjectName),
		DefaultFee:  r.DefaultFee,
		BaseModel:   types.GetDefaultBaseModel(),
	}
}

func (r *UpdateSubjectRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto s. The caller validates the result.
func (r *UpdateSubjectRequest) Apply(s *subject.Subject) {
	if r.SubjectName != nil {
		s.SubjectName = strings.TrimSpace(*r.SubjectName)
	}
	if r.DefaultFee != nil {
		s.DefaultFee = *r.DefaultFee
	}
}
