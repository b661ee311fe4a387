package volume

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Session describes the trading session window and how it is cut into
// fixed-width intervals. Minutes are counted from local midnight of the
// exchange calendar.
//
// The zero value is not usable; see DefaultOptions for the U.S. equities
// schedule (09:30–16:00 in 30-minute buckets, 13 intervals).
type Session struct {
	StartMinute     int `default:"570" validate:"gte=0,lt=1440"`
	EndMinute       int `default:"960" validate:"gtfield=StartMinute,lte=1440"`
	IntervalMinutes int `default:"30" validate:"gt=0"`
}

// Len returns the number of intervals in the session. A trailing partial
// interval counts as a full bucket.
func (s Session) Len() int {
	if s.IntervalMinutes <= 0 || s.EndMinute <= s.StartMinute {
		return 0
	}
	span := s.EndMinute - s.StartMinute
	return (span + s.IntervalMinutes - 1) / s.IntervalMinutes
}

// Labels returns the interval start times as "HH:MM", in session order.
func (s Session) Labels() []string {
	n := s.Len()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		m := s.StartMinute + i*s.IntervalMinutes
		out[i] = fmt.Sprintf("%02d:%02d", m/60, m%60)
	}
	return out
}

// Index maps a minute of day to its interval. Minutes outside
// [StartMinute, EndMinute) are rejected.
func (s Session) Index(minute int) (int, bool) {
	if s.IntervalMinutes <= 0 || minute < s.StartMinute || minute >= s.EndMinute {
		return 0, false
	}
	return (minute - s.StartMinute) / s.IntervalMinutes, true
}

// ParseClock converts "HH:MM" into minutes after midnight. "24:00" is
// accepted as the end of the day.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return minutesPerDay, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q, expected HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// minuteOfDay returns the wall-clock minute of t in its own location.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
