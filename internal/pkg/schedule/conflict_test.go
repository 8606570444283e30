package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/invigilate/internal/app/models"
)

func entry(day, slot string) models.TimetableEntry {
	return models.TimetableEntry{FacultyID: 1, Day: day, TimeSlot: slot, Subject: "Algorithms"}
}

func TestParseTimeSlot(t *testing.T) {
	iv, err := ParseTimeSlot("09:00 - 10:30")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 540, End: 630}, iv)

	iv, err = ParseTimeSlot("14:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 840, End: 900}, iv, "missing end defaults to one hour")

	iv, err = ParseTimeSlot("14:00 - later")
	require.NoError(t, err)
	assert.Equal(t, 900, iv.End)

	_, err = ParseTimeSlot("noon - 13:00")
	assert.Error(t, err)
}

func TestHasConflict(t *testing.T) {
	tests := []struct {
		name      string
		entries   []models.TimetableEntry
		day       string
		start     string
		end       string
		wantClash bool
	}{
		{
			name:      "overlapping class on same day",
			entries:   []models.TimetableEntry{entry("Monday", "09:00 - 10:00")},
			day:       "Monday",
			start:     "09:30",
			end:       "10:30",
			wantClash: true,
		},
		{
			name:      "touching boundary is a conflict",
			entries:   []models.TimetableEntry{entry("Monday", "09:00 - 10:00")},
			day:       "Monday",
			start:     "10:00",
			end:       "11:00",
			wantClash: true,
		},
		{
			name:      "class on another day",
			entries:   []models.TimetableEntry{entry("Tuesday", "09:00 - 10:00")},
			day:       "Monday",
			start:     "09:30",
			end:       "10:30",
			wantClash: false,
		},
		{
			name:      "abbreviated day code is normalized",
			entries:   []models.TimetableEntry{entry("MON", "09:00 - 10:00")},
			day:       "Monday",
			start:     "09:30",
			end:       "10:30",
			wantClash: true,
		},
		{
			name:      "case insensitive day",
			entries:   []models.TimetableEntry{entry("monday", "09:00 - 10:00")},
			day:       "MONDAY",
			start:     "09:30",
			end:       "10:30",
			wantClash: true,
		},
		{
			name:      "missing end assumes one hour",
			entries:   []models.TimetableEntry{entry("Friday", "13:00")},
			day:       "Friday",
			start:     "13:45",
			end:       "15:00",
			wantClash: true,
		},
		{
			name:      "clear gap",
			entries:   []models.TimetableEntry{entry("Friday", "08:00 - 09:00"), entry("Friday", "15:00 - 16:00")},
			day:       "Friday",
			start:     "10:00",
			end:       "12:00",
			wantClash: false,
		},
		{
			name:      "malformed entry is ignored",
			entries:   []models.TimetableEntry{entry("Friday", "TBA")},
			day:       "Friday",
			start:     "10:00",
			end:       "12:00",
			wantClash: false,
		},
		{
			name:      "empty timetable",
			day:       "Friday",
			start:     "10:00",
			end:       "12:00",
			wantClash: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantClash, HasConflict(tt.entries, tt.day, tt.start, tt.end))
		})
	}
}

func TestBoundaryAsymmetry(t *testing.T) {
	// the plain overlap check is half-open, the timetable check is inclusive
	assert.False(t, Overlaps("09:00", "10:00", "10:00", "11:00"))
	assert.True(t, HasConflict([]models.TimetableEntry{entry("Monday", "09:00 - 10:00")}, "Monday", "10:00", "11:00"))
}

func TestFindConflict_ReturnsFirstClash(t *testing.T) {
	entries := []models.TimetableEntry{
		{ID: 1, Day: "Monday", TimeSlot: "08:00 - 08:30"},
		{ID: 2, Day: "Monday", TimeSlot: "09:00 - 10:00"},
		{ID: 3, Day: "Monday", TimeSlot: "09:30 - 11:00"},
	}
	got, ok := FindConflict(entries, "Monday", "09:15", "09:45")
	require.True(t, ok)
	assert.Equal(t, int64(2), got.ID)
}
