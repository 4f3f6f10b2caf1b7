package dto

import (
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

type MarkAttendanceRequest struct {
	StudentID string                 `json:"student_id" validate:"required"`
	SubjectID string                 `json:"subject_id" validate:"required"`
	Date      types.Date             `json:"date"`
	Status    types.AttendanceStatus `json:"status" validate:"required"`
}

// BulkMarkAttendanceRequest marks a whole day's register in one call
type BulkMarkAttendanceRequest struct {
	Date    types.Date             `json:"date"`
	Records []BulkAttendanceRecord `json:"records" validate:"required,min=1,dive"`
}

type BulkAttendanceRecord struct {
	StudentID string                 `json:"student_id" validate:"required"`
	SubjectID string                 `json:"subject_id" validate:"required"`
	Status    types.AttendanceStatus `json:"status" validate:"required"`
}

type AttendanceResponse struct {
	*attendance.Attendance
}

type ListAttendanceResponse = types.ListResponse[*AttendanceResponse]

func (r *MarkAttendanceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return ierr.NewError("date is required").
			WithHint("Attendance date is required").
			Mark(ierr.ErrValidation)
	}
	return r.Status.Validate()
}

func (r *MarkAttendanceRequest) ToAttendance() *attendance.Attendance {
	return &attendance.Attendance{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ATTENDANCE),
		StudentID: r.StudentID,
		SubjectID: r.SubjectID,
		Date:      r.Date,
		Status:    r.Status,
		BaseModel: types.GetDefaultBaseModel(),
	}
}

func (r *BulkMarkAttendanceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return ierr.NewError("date is required").
			WithHint("Attendance date is required").
			Mark(ierr.ErrValidation)
	}
	for _, rec := range r.Records {
		if err := rec.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToMarkRequests splits the register into single marks sharing the date
func (r *BulkMarkAttendanceRequest) ToMarkRequests() []*MarkAttendanceRequest {
	reqs := make([]*MarkAttendanceRequest, 0, len(r.Records))
	for _, rec := range r.Records {
		reqs = append(reqs, &MarkAttendanceRequest{
			StudentID: rec.StudentID,
			SubjectID: rec.SubjectID,
			Date:      r.Date,
			Status:    rec.Status,
		})
	}
	return reqs
}
