package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

// DateLayout is the wire and storage format of a calendar date
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day. The zero value is the zero date.
// Internally it is always midnight UTC so that comparisons ignore time zones.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current UTC date
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string. RFC3339 timestamps are accepted and truncated.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, ierr.NewErrorf("invalid date %q", s).
		WithHint("Dates must be in YYYY-MM-DD format").
		Mark(ierr.ErrValidation)
}

// MustParseDate is ParseDate for constants and tests
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Between reports whether d lies in [start, end], both ends inclusive
func (d Date) Between(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// AddDays returns the date n days later (or earlier for negative n)
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Format formats the date with a time layout
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

// MonthBounds returns the first and last day of the month containing d
func (d Date) MonthBounds() (Date, Date) {
	y, m, _ := d.t.Date()
	first := NewDate(y, m, 1)
	last := Date{t: first.t.AddDate(0, 1, -1)}
	return first, last
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements the sql.Scanner interface for DATE columns
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case []byte:
		return d.UnmarshalText(v)
	case string:
		return d.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// DateRange is an inclusive calendar period
type DateRange struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

// Validate rejects ranges with a missing bound or a start after the end
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ierr.NewError("date range bounds are required").
			WithHint("Both start_date and end_date are required").
			Mark(ierr.ErrValidation)
	}
	if r.Start.After(r.End) {
		return ierr.NewError("start date is after end date").
			WithHint("start_date must be on or before end_date").
			WithReportableDetails(map[string]any{
				"start_date": r.Start.String(),
				"end_date":   r.End.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Contains reports whether d falls inside the range, bounds included
func (r DateRange) Contains(d Date) bool {
	return d.Between(r.Start, r.End)
}

// CurrentMonth returns the range covering the month of the given date
func CurrentMonth(d Date) DateRange {
	start, end := d.MonthBounds()
	return DateRange{Start: start, End: end}
}
