package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yigit/invigilate/internal/app/models"
)

// TimetableRow is one parsed line of the timetable CSV.
type TimetableRow struct {
	Faculty  string
	Day      string
	TimeSlot string
	Subject  string
}

var timetableColumns = []string{"faculty", "day", "time slot", "subject"}

// ParseTimetableCSV reads a "Faculty,Day,Time Slot,Subject" file. Columns are
// located by header name; blank lines and rows without a faculty are skipped.
// Days are normalized with NormalizeDay.
func ParseTimetableCSV(r io.Reader) ([]TimetableRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("timetable csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read timetable csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}
	for _, col := range timetableColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("timetable csv is missing column %q", col)
		}
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []TimetableRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read timetable csv: %w", err)
		}
		row := TimetableRow{
			Faculty:  field(record, "faculty"),
			Day:      NormalizeDay(field(record, "day")),
			TimeSlot: field(record, "time slot"),
			Subject:  field(record, "subject"),
		}
		if row.Faculty == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FacultyNames returns the distinct faculty names in first-seen order.
func FacultyNames(rows []TimetableRow) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range rows {
		if _, ok := seen[row.Faculty]; ok {
			continue
		}
		seen[row.Faculty] = struct{}{}
		names = append(names, row.Faculty)
	}
	return names
}

// BuildEntries turns rows into timetable entries using the name to id
// mapping produced by the import.
func BuildEntries(rows []TimetableRow, ids map[string]int64) ([]models.TimetableEntry, error) {
	entries := make([]models.TimetableEntry, 0, len(rows))
	for _, row := range rows {
		id, ok := ids[row.Faculty]
		if !ok {
			return nil, fmt.Errorf("no faculty id for %q", row.Faculty)
		}
		entries = append(entries, models.TimetableEntry{
			FacultyID: id,
			Day:       row.Day,
			TimeSlot:  row.TimeSlot,
			Subject:   row.Subject,
		})
	}
	return entries, nil
}

// Username derives a login handle from a display name by keeping lowercase
// letters and digits only.
func Username(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
