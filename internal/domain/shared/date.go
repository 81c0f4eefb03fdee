package shared

import (
	"encoding/json"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ErrInvalidDate is returned for values that are not a calendar day
var ErrInvalidDate = NewDomainError("INVALID_INPUT", "Invalid date, expected YYYY-MM-DD")

// Date is a calendar day. It marshals as "YYYY-MM-DD" and is stored as
// midnight UTC.
type Date struct {
	civil.Date
}

// NewDate takes the calendar day of t in t's own location
func NewDate(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

// ParseDate accepts YYYY-MM-DD and, leniently, a full RFC 3339 timestamp
// whose day part is kept
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if d, err := civil.ParseDate(s); err == nil {
		return Date{d}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t), nil
	}
	return Date{}, ErrInvalidDate
}

// Time returns midnight UTC of the day
func (d Date) Time() time.Time {
	return d.In(time.UTC)
}

// UnmarshalJSON reads a quoted calendar day
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
