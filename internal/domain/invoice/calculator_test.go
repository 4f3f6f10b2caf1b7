package invoice

import (
	"fmt"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	studentID = "stu_1"
	math      = "sub_math"
	english   = "sub_english"
)

var march = types.DateRange{
	Start: types.MustParseDate("2024-03-01"),
	End:   types.MustParseDate("2024-03-31"),
}

func present(subjectID, date string) *attendance.Attendance {
	return &attendance.Attendance{
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      types.MustParseDate(date),
		Status:    types.AttendanceStatusPresent,
	}
}

func absent(subjectID, date string) *attendance.Attendance {
	rec := present(subjectID, date)
	rec.Status = types.AttendanceStatusAbsent
	return rec
}

func paid(amount, date string) *payment.Payment {
	return &payment.Payment{
		StudentID: studentID,
		Amount:    decimal.RequireFromString(amount),
		Date:      types.MustParseDate(date),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeInvoice_WorkedExample(t *testing.T) {
	fees := NewFeeSchedule([]*studentsubject.StudentSubject{
		{StudentID: studentID, SubjectID: math, DefaultFee: lo.ToPtr(dec("50"))},
	})
	records := []*attendance.Attendance{
		present(math, "2024-03-04"),
		present(math, "2024-03-11"),
		present(math, "2024-03-18"),
		absent(math, "2024-03-25"),
		present(math, "2024-04-01"),
	}
	payments := []*payment.Payment{paid("60", "2024-03-15")}

	got, err := ComputeInvoice(studentID, march, fees, records, payments)
	require.NoError(t, err)

	assert.True(t, dec("150").Equal(got.TotalAmount), "total %s", got.TotalAmount)
	assert.True(t, dec("60").Equal(got.PaidAmount), "paid %s", got.PaidAmount)
	assert.True(t, dec("90").Equal(got.Balance), "balance %s", got.Balance)
	assert.Equal(t, 3, got.SessionCount)
	assert.Equal(t, types.InvoiceStatusUnpaid, got.Status())
	assert.Empty(t, got.UnpricedSubjects)
}

func TestComputeInvoice_EmptyInputs(t *testing.T) {
	got, err := ComputeInvoice(studentID, march, FeeSchedule{}, nil, nil)
	require.NoError(t, err)

	assert.True(t, got.TotalAmount.IsZero())
	assert.True(t, got.PaidAmount.IsZero())
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, 0, got.SessionCount)
	assert.Equal(t, types.InvoiceStatusPaid, got.Status())
}

func TestComputeInvoice_InvalidRange(t *testing.T) {
	period := types.DateRange{
		Start: types.MustParseDate("2024-03-10"),
		End:   types.MustParseDate("2024-03-01"),
	}

	got, err := ComputeInvoice(studentID, period, FeeSchedule{}, []*attendance.Attendance{present(math, "2024-03-05")}, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsInvalidRange(err))
	assert.True(t, ierr.IsValidation(err))
}

func TestComputeInvoice_MissingBounds(t *testing.T) {
	_, err := ComputeInvoice(studentID, types.DateRange{Start: march.Start}, FeeSchedule{}, nil, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.False(t, IsInvalidRange(err))
}

func TestComputeInvoice_SingleDayPeriod(t *testing.T) {
	day := types.MustParseDate("2024-03-05")
	period := types.DateRange{Start: day, End: day}
	fees := FeeSchedule{math: dec("40")}

	got, err := ComputeInvoice(studentID, period, fees, []*attendance.Attendance{
		present(math, "2024-03-04"),
		present(math, "2024-03-05"),
		present(math, "2024-03-06"),
	}, []*payment.Payment{paid("40", "2024-03-05"), paid("10", "2024-03-06")})
	require.NoError(t, err)

	assert.Equal(t, 1, got.SessionCount)
	assert.True(t, dec("40").Equal(got.TotalAmount))
	assert.True(t, dec("40").Equal(got.PaidAmount))
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, types.InvoiceStatusPaid, got.Status())
}

func TestComputeInvoice_BoundaryInclusivity(t *testing.T) {
	fees := FeeSchedule{math: dec("25")}

	tests := []struct {
		name         string
		date         string
		wantSessions int
		wantTotal    string
		wantPaid     string
	}{
		{"on start date", "2024-03-01", 1, "25", "5"},
		{"on end date", "2024-03-31", 1, "25", "5"},
		{"day before start", "2024-02-29", 0, "0", "0"},
		{"day after end", "2024-04-01", 0, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeInvoice(studentID, march, fees,
				[]*attendance.Attendance{present(math, tt.date)},
				[]*payment.Payment{paid("5", tt.date)},
			)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSessions, got.SessionCount)
			assert.True(t, dec(tt.wantTotal).Equal(got.TotalAmount), "total %s", got.TotalAmount)
			assert.True(t, dec(tt.wantPaid).Equal(got.PaidAmount), "paid %s", got.PaidAmount)
		})
	}
}

func TestComputeInvoice_CustomFeePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		assignment *studentsubject.StudentSubject
		want       string
	}{
		{
			name:       "custom overrides default",
			assignment: &studentsubject.StudentSubject{SubjectID: math, CustomFee: lo.ToPtr(dec("35")), DefaultFee: lo.ToPtr(dec("50"))},
			want:       "70",
		},
		{
			name:       "custom fee of zero still overrides default",
			assignment: &studentsubject.StudentSubject{SubjectID: math, CustomFee: lo.ToPtr(decimal.Zero), DefaultFee: lo.ToPtr(dec("50"))},
			want:       "0",
		},
		{
			name:       "default when no custom fee",
			assignment: &studentsubject.StudentSubject{SubjectID: math, DefaultFee: lo.ToPtr(dec("50"))},
			want:       "100",
		},
		{
			name:       "zero when neither fee is set",
			assignment: &studentsubject.StudentSubject{SubjectID: math},
			want:       "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := NewFeeSchedule([]*studentsubject.StudentSubject{tt.assignment})
			got, err := ComputeInvoice(studentID, march, fees, []*attendance.Attendance{
				present(math, "2024-03-02"),
				present(math, "2024-03-09"),
			}, nil)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got.TotalAmount), "total %s", got.TotalAmount)
			assert.Equal(t, 2, got.SessionCount)
		})
	}
}

func TestComputeInvoice_MissingFeeAssignment(t *testing.T) {
	fees := FeeSchedule{math: dec("50")}

	got, err := ComputeInvoice(studentID, march, fees, []*attendance.Attendance{
		present(math, "2024-03-02"),
		present(english, "2024-03-03"),
		present(english, "2024-03-10"),
	}, nil)
	require.NoError(t, err)

	assert.True(t, dec("50").Equal(got.TotalAmount))
	assert.Equal(t, 3, got.SessionCount)
	assert.Equal(t, []string{english}, got.UnpricedSubjects)
}

func TestComputeInvoice_RepeatedSessionsBillSeparately(t *testing.T) {
	fees := FeeSchedule{math: dec("45.50"), english: dec("30")}

	got, err := ComputeInvoice(studentID, march, fees, []*attendance.Attendance{
		present(math, "2024-03-02"),
		present(math, "2024-03-03"),
		present(english, "2024-03-03"),
	}, nil)
	require.NoError(t, err)

	assert.True(t, dec("121").Equal(got.TotalAmount), "total %s", got.TotalAmount)
	assert.Equal(t, 3, got.SessionCount)
}

func TestComputeInvoice_Monotonicity(t *testing.T) {
	fee := dec("37.25")
	fees := FeeSchedule{math: fee}
	records := []*attendance.Attendance{
		present(math, "2024-03-02"),
		absent(math, "2024-03-03"),
	}
	payments := []*payment.Payment{paid("20", "2024-03-04")}

	before, err := ComputeInvoice(studentID, march, fees, records, payments)
	require.NoError(t, err)

	after, err := ComputeInvoice(studentID, march, fees, append(records, present(math, "2024-03-20")), payments)
	require.NoError(t, err)

	assert.True(t, after.TotalAmount.Sub(before.TotalAmount).Equal(fee))
	assert.Equal(t, before.SessionCount+1, after.SessionCount)
	assert.True(t, after.PaidAmount.Equal(before.PaidAmount))
}

func TestComputeInvoice_Overpayment(t *testing.T) {
	got, err := ComputeInvoice(studentID, march, FeeSchedule{math: dec("50")},
		[]*attendance.Attendance{present(math, "2024-03-02")},
		[]*payment.Payment{paid("80", "2024-03-02")},
	)
	require.NoError(t, err)

	assert.True(t, dec("-30").Equal(got.Balance), "balance %s", got.Balance)
	assert.Equal(t, types.InvoiceStatusPaid, got.Status())
}

func TestComputeInvoice_ExactDecimalArithmetic(t *testing.T) {
	// 0.1 + 0.2 style amounts drift with binary floats
	fees := FeeSchedule{math: dec("0.1"), english: dec("0.2")}
	var records []*attendance.Attendance
	for day := 1; day <= 30; day++ {
		records = append(records, present(math, fmt.Sprintf("2024-03-%02d", day)))
		records = append(records, present(english, fmt.Sprintf("2024-03-%02d", day)))
	}
	payments := []*payment.Payment{
		paid("1.000001", "2024-03-05"),
		paid("2.333333", "2024-03-06"),
	}

	got, err := ComputeInvoice(studentID, march, fees, records, payments)
	require.NoError(t, err)

	assert.Equal(t, "9", got.TotalAmount.String())
	assert.Equal(t, "3.333334", got.PaidAmount.String())
	assert.Equal(t, "5.666666", got.Balance.String())
	assert.True(t, got.Balance.Equal(got.TotalAmount.Sub(got.PaidAmount)))
}

func TestComputeInvoice_IgnoresNilRecords(t *testing.T) {
	got, err := ComputeInvoice(studentID, march, FeeSchedule{math: dec("10")},
		[]*attendance.Attendance{nil, present(math, "2024-03-02")},
		[]*payment.Payment{nil},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SessionCount)
	assert.True(t, got.PaidAmount.IsZero())
}

func TestFromResult(t *testing.T) {
	r := &Result{
		StudentID:    studentID,
		Period:       march,
		TotalAmount:  dec("150"),
		PaidAmount:   dec("60"),
		Balance:      dec("90"),
		SessionCount: 3,
	}

	inv := FromResult("inv_1", "INV-202403-ABCDE", r)
	require.NoError(t, inv.Validate())
	assert.Equal(t, types.InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, march, inv.Period())

	inv.Balance = dec("1")
	err := inv.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
