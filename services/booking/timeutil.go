package booking

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the calendar-date format used across bookings and windows.
const DateLayout = "2006-01-02"

var (
	timePattern  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// MinutesOfDay converts a "HH:MM" wall-clock string to minutes since
// midnight. All interval arithmetic happens in this representation.
func MinutesOfDay(hhmm string) (int, error) {
	if !timePattern.MatchString(hhmm) {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	var h, m int
	fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m, nil
}

// FormatMinutes renders minutes since midnight back to "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// Overlaps reports whether the half-open minute intervals [s1,e1) and
// [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}
