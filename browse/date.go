package browse

import (
	"strings"
	"time"

	"github.com/fwojciec/pagekeep"
)

// DayLayout is the date format accepted by filter inputs.
const DayLayout = "2006-01-02"

// ParseRange parses optional YYYY-MM-DD bounds in UTC. The upper bound
// covers the whole day it names. Empty strings yield zero bounds.
func ParseRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse(DayLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, pagekeep.Errorf(pagekeep.EINVALID, "invalid from date %q, expected YYYY-MM-DD", from)
		}
		start = t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse(DayLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, pagekeep.Errorf(pagekeep.EINVALID, "invalid to date %q, expected YYYY-MM-DD", to)
		}
		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, pagekeep.Errorf(pagekeep.EINVALID, "from date is after to date")
	}
	return start, end, nil
}

// FormatDay formats a bound for a date input; zero yields "".
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DayLayout)
}
