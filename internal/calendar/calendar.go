// Package calendar holds the start-date policy and the other rules that work
// on calendar days rather than instants.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

var ErrInvalidDate = errors.New("invalid date")

// Category decides how much lead time a service needs.
type Category string

const (
	CategoryHourly    Category = "hourly"
	CategoryRecurring Category = "recurring"
)

const (
	hourlyLeadDays    = 1
	recurringLeadDays = 10
)

// LeadDays returns the minimum number of days between today and the first
// service day.
func (c Category) LeadDays() int {
	if c == CategoryHourly {
		return hourlyLeadDays
	}
	return recurringLeadDays
}

// Policy computes start dates relative to "today" in a fixed time zone.
type Policy struct {
	now      func() time.Time
	location *time.Location
}

// NewPolicy returns a policy for the given location. A nil clock means time.Now.
func NewPolicy(location *time.Location, now func() time.Time) *Policy {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Policy{now: now, location: location}
}

// Today is the current calendar day in the policy's location.
func (p *Policy) Today() civil.Date {
	return civil.DateOf(p.now().In(p.location))
}

// MinimumStartDate returns the earliest allowed first service day.
func (p *Policy) MinimumStartDate(category Category) civil.Date {
	return p.Today().AddDays(category.LeadDays())
}

// EnforceMinimumDelay raises a too-early date to the minimum and returns
// any other date unchanged. A zero or invalid date is treated as too early.
func (p *Policy) EnforceMinimumDelay(candidate civil.Date, category Category) civil.Date {
	minimum := p.MinimumStartDate(category)
	if !candidate.IsValid() || candidate.Before(minimum) {
		return minimum
	}
	return candidate
}

// Location is the time zone the policy counts days in.
func (p *Policy) Location() *time.Location { return p.location }

var czechDate = regexp.MustCompile(`^(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})$`)

// ParseDate reads a calendar day from ISO (2006-01-02), Czech (2. 1. 2006)
// or RFC 3339 input. Timestamps are converted to the day in loc.
func ParseDate(s string, loc *time.Location) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, ErrInvalidDate
	}

	if d, err := civil.ParseDate(s); err == nil && d.IsValid() {
		return d, nil
	}

	if m := czechDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		d := civil.Date{Year: year, Month: time.Month(month), Day: day}
		if !d.IsValid() {
			return civil.Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
		}
		return d, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		if loc == nil {
			loc = time.UTC
		}
		return civil.DateOf(t.In(loc)), nil
	}

	return civil.Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
}

// FormatISO renders the wire format.
func FormatISO(d civil.Date) string {
	return d.String()
}

// FormatCzech renders a date for documents, e.g. "5. 3. 2025".
func FormatCzech(d civil.Date) string {
	return fmt.Sprintf("%d. %d. %d", d.Day, int(d.Month), d.Year)
}

// IsWinterBillable reports whether winter maintenance is billed on the day:
// from 15 November to 15 March inclusive.
func IsWinterBillable(d civil.Date) bool {
	switch d.Month {
	case time.December, time.January, time.February:
		return true
	case time.November:
		return d.Day >= 15
	case time.March:
		return d.Day <= 15
	default:
		return false
	}
}

// CategoryOf maps the billing kind of a service onto its lead-time category.
func CategoryOf(hourly bool) Category {
	if hourly {
		return CategoryHourly
	}
	return CategoryRecurring
}
