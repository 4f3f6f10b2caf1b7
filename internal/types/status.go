package types

import (
	"github.com/samber/lo"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

// AttendanceStatus records whether a student attended a session
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
)

func (s AttendanceStatus) String() string {
	return string(s)
}

func (s AttendanceStatus) Validate() error {
	allowed := []AttendanceStatus{
		AttendanceStatusPresent,
		AttendanceStatusAbsent,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid attendance status").
			WithHint("Attendance status must be Present or Absent").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceStatus is derived from the balance when the invoice is stored
type InvoiceStatus string

const (
	InvoiceStatusPaid   InvoiceStatus = "Paid"
	InvoiceStatusUnpaid InvoiceStatus = "Unpaid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusPaid,
		InvoiceStatusUnpaid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Invoice status must be Paid or Unpaid").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
