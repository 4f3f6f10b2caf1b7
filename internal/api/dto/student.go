package dto

import (
	"strings"

	"github.com/samber/lo"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

type CreateStudentRequest struct {
	StudentName string  `json:"student_name" validate:"required,max=255"`
	ParentName  *string `json:"parent_name,omitempty" validate:"omitempty,max=255"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Grade       *string `json:"grade,omitempty" validate:"omitempty,max=50"`
	Notes       *string `json:"notes,omitempty"`
	// SubjectIDs becomes the student's subject set
	SubjectIDs []string `json:"subject_ids,omitempty"`
}

// UpdateStudentRequest patches a student. A nil SubjectIDs leaves the subject set alone,
// an empty list clears it.
type UpdateStudentRequest struct {
	StudentName *string   `json:"student_name,omitempty" validate:"omitempty,max=255"`
	ParentName  *string   `json:"parent_name,omitempty" validate:"omitempty,max=255"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Grade       *string   `json:"grade,omitempty" validate:"omitempty,max=50"`
	Notes       *string   `json:"notes,omitempty"`
	SubjectIDs  *[]string `json:"subject_ids,omitempty"`
}

type StudentResponse struct {
	*student.Student
	Subjects []*studentsubject.StudentSubject `json:"subjects"`
}

// ListStudentsResponse represents the response for listing students
type ListStudentsResponse = types.ListResponse[*StudentResponse]

func (r *CreateStudentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToStudent().Validate()
}

func (r *CreateStudentRequest) ToStudent() *student.Student {
	return &student.Student{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STUDENT),
		StudentName: strings.TrimSpace(r.StudentName),
		ParentName:  blankToNil(r.ParentName),
		Phone:       blankToNil(r.Phone),
		Email:       blankToNil(r.Email),
		Grade:       blankToNil(r.Grade),
		Notes:       blankToNil(r.Notes),
		BaseModel:   types.GetDefaultBaseModel(),
	}
}

func (r *UpdateStudentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto s
func (r *UpdateStudentRequest) Apply(s *student.Student) {
	if r.StudentName != nil {
		s.StudentName = strings.TrimSpace(*r.StudentName)
	}
	if r.ParentName != nil {
		s.ParentName = blankToNil(r.ParentName)
	}
	if r.Phone != nil {
		s.Phone = blankToNil(r.Phone)
	}
	if r.Email != nil {
		s.Email = blankToNil(r.Email)
	}
	if r.Grade != nil {
		s.Grade = blankToNil(r.Grade)
	}
	if r.Notes != nil {
		s.Notes = blankToNil(r.Notes)
	}
}

// blankToNil stores empty form fields as NULL
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return lo.ToPtr(v)
}
