package schedule

import (
	"strings"

	"github.com/yigit/invigilate/internal/app/models"
)

// DefaultClassLength is used when a time slot carries no usable end time.
const DefaultClassLength = 60

// ParseTimeSlot parses "HH:MM - HH:MM". A missing or malformed end time
// yields a one hour class; a malformed start time is an error.
func ParseTimeSlot(slot string) (Interval, error) {
	startStr, endStr, _ := strings.Cut(slot, "-")
	start, err := ParseClock(startStr)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endStr)
	if err != nil {
		end = start + DefaultClassLength
	}
	return Interval{Start: start, End: end}, nil
}

// FindConflict returns the first timetable entry on examDay whose slot meets
// the exam window. Boundaries are inclusive: a class ending at 09:00 clashes
// with an exam starting at 09:00.
func FindConflict(entries []models.TimetableEntry, examDay, examStart, examEnd string) (models.TimetableEntry, bool) {
	exam, err := NewInterval(examStart, examEnd)
	if err != nil {
		return models.TimetableEntry{}, false
	}
	day := NormalizeDay(examDay)

	for _, entry := range entries {
		if !strings.EqualFold(NormalizeDay(entry.Day), day) {
			continue
		}
		class, err := ParseTimeSlot(entry.TimeSlot)
		if err != nil {
			continue
		}
		if exam.Touches(class) {
			return entry, true
		}
	}
	return models.TimetableEntry{}, false
}

// HasConflict reports whether any entry clashes with the exam window.
func HasConflict(entries []models.TimetableEntry, examDay, examStart, examEnd string) bool {
	_, found := FindConflict(entries, examDay, examStart, examEnd)
	return found
}
