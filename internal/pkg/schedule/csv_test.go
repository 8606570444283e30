package schedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimetable = `Faculty,Day,Time Slot,Subject
Dr. Asha Rao,MON,09:00 - 10:00,Data Structures
Dr. Asha Rao,Wednesday,11:00 - 12:00,Algorithms

Prof. K. Iyer,fri,14:00 - 15:00,Networks
,MON,09:00 - 10:00,Orphan
`

func TestParseTimetableCSV(t *testing.T) {
	rows, err := ParseTimetableCSV(strings.NewReader(sampleTimetable))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, TimetableRow{Faculty: "Dr. Asha Rao", Day: "Monday", TimeSlot: "09:00 - 10:00", Subject: "Data Structures"}, rows[0])
	assert.Equal(t, "Friday", rows[2].Day)
	assert.Equal(t, []string{"Dr. Asha Rao", "Prof. K. Iyer"}, FacultyNames(rows))
}

func TestParseTimetableCSV_ColumnOrderAndErrors(t *testing.T) {
	rows, err := ParseTimetableCSV(strings.NewReader("Subject,Time Slot,Day,Faculty\nPhysics,10:00 - 11:00,TUE,Dr. Roy\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tuesday", rows[0].Day)
	assert.Equal(t, "Physics", rows[0].Subject)

	_, err = ParseTimetableCSV(strings.NewReader("Faculty,Day,Subject\nx,MON,y\n"))
	assert.ErrorContains(t, err, "time slot")

	_, err = ParseTimetableCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestBuildEntries(t *testing.T) {
	rows := []TimetableRow{
		{Faculty: "A", Day: "Monday", TimeSlot: "09:00 - 10:00", Subject: "X"},
		{Faculty: "B", Day: "Tuesday", TimeSlot: "10:00 - 11:00", Subject: "Y"},
	}
	entries, err := BuildEntries(rows, map[string]int64{"A": 3, "B": 7})
	require.NoError(t, err)
	assert.Equal(t, int64(3), entries[0].FacultyID)
	assert.Equal(t, int64(7), entries[1].FacultyID)

	_, err = BuildEntries(rows, map[string]int64{"A": 3})
	assert.Error(t, err)
}

func TestUsername(t *testing.T) {
	assert.Equal(t, "drasharao", Username("Dr. Asha Rao"))
	assert.Equal(t, "profkiyer2", Username("Prof. K. Iyer (2)"))
}
