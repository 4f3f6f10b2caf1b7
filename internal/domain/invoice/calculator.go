package invoice

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// FeeSchedule maps a subject id to the effective per-session fee for one student
type FeeSchedule map[string]decimal.Decimal

// NewFeeSchedule builds a schedule from a student's subject assignments
func NewFeeSchedule(assignments []*studentsubject.StudentSubject) FeeSchedule {
	fees := make(FeeSchedule, len(assignments))
	for _, a := range assignments {
		if a == nil {
			continue
		}
		fees[a.SubjectID] = a.EffectiveFee()
	}
	return fees
}

// FeeFor returns the subject's fee and whether the student has an assignment for it.
// Unassigned subjects bill at zero.
func (f FeeSchedule) FeeFor(subjectID string) (decimal.Decimal, bool) {
	fee, ok := f[subjectID]
	if !ok {
		return decimal.Zero, false
	}
	return fee, true
}

// Result is the outcome of an invoice computation. It is not persisted as is.
type Result struct {
	StudentID    string          `json:"student_id"`
	Period       types.DateRange `json:"period"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Balance      decimal.Decimal `json:"balance"`
	SessionCount int             `json:"session_count"`
	// UnpricedSubjects lists subjects that had billable sessions but no fee assignment
	UnpricedSubjects []string `json:"unpriced_subjects,omitempty"`
}

// Status is Paid when nothing is owed (including credit), Unpaid otherwise
func (r *Result) Status() types.InvoiceStatus {
	if r.Balance.LessThanOrEqual(decimal.Zero) {
		return types.InvoiceStatusPaid
	}
	return types.InvoiceStatusUnpaid
}

// ComputeInvoice totals a student's billable sessions in period and nets them
// against the payments received in the same period.
//
// attendance and payments must already belong to the student but may span any
// dates; only Present sessions and payments dated inside [Start, End] count.
// Every present session bills the effective fee of its subject once. A session
// for a subject without a fee assignment bills zero but is still counted.
// Amounts are summed exactly; nothing is rounded here.
func ComputeInvoice(
	studentID string,
	period types.DateRange,
	fees FeeSchedule,
	records []*attendance.Attendance,
	payments []*payment.Payment,
) (*Result, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}

	result := &Result{
		StudentID:   studentID,
		Period:      period,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
	}

	unpriced := make(map[string]struct{})
	for _, rec := range records {
		if rec == nil || !rec.IsBillable(period) {
			continue
		}
		fee, ok := fees.FeeFor(rec.SubjectID)
		if !ok {
			if _, seen := unpriced[rec.SubjectID]; !seen {
				unpriced[rec.SubjectID] = struct{}{}
				result.UnpricedSubjects = append(result.UnpricedSubjects, rec.SubjectID)
			}
		}
		result.TotalAmount = result.TotalAmount.Add(fee)
		result.SessionCount++
	}

	for _, p := range payments {
		if p == nil || !period.Contains(p.Date) {
			continue
		}
		result.PaidAmount = result.PaidAmount.Add(p.Amount)
	}

	result.Balance = result.TotalAmount.Sub(result.PaidAmount)
	return result, nil
}

// ValidatePeriod rejects a missing bound, and a start after the end with ErrInvalidRange
func ValidatePeriod(period types.DateRange) error {
	if period.Start.IsZero() || period.End.IsZero() {
		return ierr.NewError("billing period bounds are required").
			WithHint("Both start_date and end_date are required").
			Mark(ierr.ErrValidation)
	}
	if period.Start.After(period.End) {
		err := ierr.NewErrorf("billing period starts %s after it ends %s", period.Start, period.End).
			WithHint("start_date must be on or before end_date").
			WithReportableDetails(map[string]any{
				"start_date": period.Start.String(),
				"end_date":   period.End.String(),
			}).
			Mark(ierr.ErrValidation)
		return errors.Mark(err, ErrInvalidRange)
	}
	return nil
}
