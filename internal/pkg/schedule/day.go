package schedule

import (
	"fmt"
	"strings"
	"time"
)

var dayCodes = map[string]string{
	"MON": "Monday",
	"TUE": "Tuesday",
	"WED": "Wednesday",
	"THU": "Thursday",
	"FRI": "Friday",
	"SAT": "Saturday",
	"SUN": "Sunday",
}

// NormalizeDay maps three-letter day codes to full weekday names and fixes
// the casing of full names. Anything else is returned trimmed but unchanged.
func NormalizeDay(day string) string {
	day = strings.TrimSpace(day)
	if full, ok := dayCodes[strings.ToUpper(day)]; ok {
		return full
	}
	for _, full := range dayCodes {
		if strings.EqualFold(full, day) {
			return full
		}
	}
	return day
}

// ValidDay reports whether day normalizes to a weekday name.
func ValidDay(day string) bool {
	n := NormalizeDay(day)
	for _, full := range dayCodes {
		if n == full {
			return true
		}
	}
	return false
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses an exam date in either YYYY-MM-DD or RFC 3339 form.
func ParseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
}

// Weekday returns the long weekday name ("Monday") of an exam date.
func Weekday(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// At combines an exam date and an "HH:MM" clock into an instant in loc.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}
