package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDay(t *testing.T) {
	tests := map[string]string{
		"MON":       "Monday",
		"tue":       "Tuesday",
		"WED":       "Wednesday",
		"THU":       "Thursday",
		"FRI":       "Friday",
		"SAT":       "Saturday",
		"SUN":       "Sunday",
		"monday":    "Monday",
		" Friday ":  "Friday",
		"Holiday":   "Holiday",
		"":          "",
		"WEDNESDAY": "Wednesday",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDay(in), "NormalizeDay(%q)", in)
	}
	assert.True(t, ValidDay("sat"))
	assert.False(t, ValidDay("Holiday"))
}

func TestWeekday(t *testing.T) {
	day, err := Weekday("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Monday", day)

	day, err = Weekday("2025-03-15T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "Saturday", day)

	_, err = Weekday("10/03/2025")
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	got, err := At("2025-03-10", "14:45", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 10, 14, 45, 0, 0, loc), got)

	_, err = At("10/03/2025", "14:45", loc)
	assert.Error(t, err)
	_, err = At("2025-03-10", "2pm", loc)
	assert.Error(t, err)
}
