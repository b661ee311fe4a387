package service

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidRange is returned when the requested start is after the end.
var ErrInvalidRange = errors.New("invalid date range")

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) FromString() string { return r.From.Format(dateLayout) }
func (r DateRange) ToString() string   { return r.To.Format(dateLayout) }

// RangeDefaults controls how missing bounds are filled in.
//
// Fields:
//   - LookbackDays: span between the default start and the end date.
//   - DelayDays: days the default end date is moved back, for plans that
//     only serve history older than that. An explicit end is never moved.
type RangeDefaults struct {
	LookbackDays int
	DelayDays    int
}

// ResolveRange fills in missing bounds relative to today (in loc):
// end defaults to today minus DelayDays, start to today minus LookbackDays.
func ResolveRange(now time.Time, loc *time.Location, from, to *time.Time, d RangeDefaults) (DateRange, error) {
	today := truncateToDate(now.In(loc))

	end := today.AddDate(0, 0, -d.DelayDays)
	if to != nil {
		end = dateIn(*to, loc)
	}
	start := today.AddDate(0, 0, -d.LookbackDays)
	if from != nil {
		start = dateIn(*from, loc)
	}

	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
	}
	return DateRange{From: start, To: end}, nil
}

// ParseDate parses an optional YYYY-MM-DD value; "" yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return &t, nil
}

func truncateToDate(t time.Time) time.Time {
	return dateIn(t, t.Location())
}

// dateIn keeps the calendar date of t as written and places it at
// midnight in loc, so dates parsed in UTC compare with dates in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
