package types

import (
	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

const (
	FILTER_DEFAULT_LIMIT = 50
	FILTER_MAX_LIMIT     = 1000

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// QueryFilter holds the paging options shared by list endpoints
type QueryFilter struct {
	Limit  int `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset int `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
}

func (f QueryFilter) GetLimit() int {
	if f.Limit <= 0 {
		return FILTER_DEFAULT_LIMIT
	}
	if f.Limit > FILTER_MAX_LIMIT {
		return FILTER_MAX_LIMIT
	}
	return f.Limit
}

func (f QueryFilter) GetOffset() int {
	if f.Offset < 0 {
		return 0
	}
	return f.Offset
}

func (f QueryFilter) Validate() error {
	if f.Limit < 0 || f.Offset < 0 {
		return ierr.NewError("invalid pagination").
			WithHint("limit and offset must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// StudentFilter narrows the student list
type StudentFilter struct {
	QueryFilter
	// Search matches student or parent name, case insensitive
	Search string `json:"search,omitempty" form:"search"`
}

// AttendanceFilter narrows attendance listings. Date and StudentID are optional.
type AttendanceFilter struct {
	QueryFilter
	StudentID string `json:"student_id,omitempty" form:"student_id"`
	Date      *Date  `json:"date,omitempty" form:"-"`
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	QueryFilter
	StudentID string `json:"student_id,omitempty" form:"student_id"`
	StartDate *Date  `json:"start_date,omitempty" form:"-"`
	EndDate   *Date  `json:"end_date,omitempty" form:"-"`
}

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	QueryFilter
	StudentID string         `json:"student_id,omitempty" form:"student_id"`
	Status    *InvoiceStatus `json:"status,omitempty" form:"status"`
}

func (f InvoiceFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.Status != nil {
		return f.Status.Validate()
	}
	return nil
}
