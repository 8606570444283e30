// Package schedule holds the pure scheduling rules: clock parsing, weekday
// normalization, timetable conflict detection and slot/auto-assign helpers.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ClockPattern is the accepted shape of an "HH:MM" value.
var ClockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ValidClock reports whether s is a well-formed 24-hour "HH:MM" time.
func ValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !ClockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hh, mm, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return hours*60 + minutes, nil
}

// Interval is a span of minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval parses a start/end pair of "HH:MM" values.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps is the half-open test: touching intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Touches is the inclusive test: shared boundaries count.
func (i Interval) Touches(o Interval) bool {
	return i.Start <= o.End && i.End >= o.Start
}

// Overlaps reports whether [start1,end1) and [start2,end2) intersect.
// Malformed times never overlap; callers validate with ValidClock first.
func Overlaps(start1, end1, start2, end2 string) bool {
	a, err := NewInterval(start1, end1)
	if err != nil {
		return false
	}
	b, err := NewInterval(start2, end2)
	if err != nil {
		return false
	}
	return a.Overlaps(b)
}
