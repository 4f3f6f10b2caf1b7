package attendance

import (
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Attendance is one student's presence or absence at a subject session on a date.
// There is at most one record per (StudentID, SubjectID, Date).
type Attendance struct {
	ID        string                 `db:"id" json:"id"`
	StudentID string                 `db:"student_id" json:"student_id"`
	SubjectID string                 `db:"subject_id" json:"subject_id"`
	Date      types.Date             `db:"date" json:"date"`
	Status    types.AttendanceStatus `db:"status" json:"status"`

	// Read-only display fields joined from students and subjects
	StudentName string `db:"student_name" json:"student_name,omitempty"`
	SubjectName string `db:"subject_name" json:"subject_name,omitempty"`

	types.BaseModel
}

// IsBillable reports whether the record is a present session inside the period
func (a *Attendance) IsBillable(period types.DateRange) bool {
	return a.Status == types.AttendanceStatusPresent && period.Contains(a.Date)
}

func (a *Attendance) Validate() error {
	if a.StudentID == "" || a.SubjectID == "" {
		return ierr.NewError("student_id and subject_id are required").
			WithHint("Please select both student and subject").
			Mark(ierr.ErrValidation)
	}
	if a.Date.IsZero() {
		return ierr.NewError("date is required").
			WithHint("Attendance date is required").
			Mark(ierr.ErrValidation)
	}
	return a.Status.Validate()
}
