package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

var timetableColumns = []string{"id", "faculty_id", "day", "time_slot", "subject"}

func scanTimetableEntry(row scanner) (*models.TimetableEntry, error) {
	e := &models.TimetableEntry{}
	err := row.Scan(&e.ID, &e.FacultyID, &e.Day, &e.TimeSlot, &e.Subject)
	return e, err
}

// CreateTimetableEntry inserts a single class
func (s *PostgresStore) CreateTimetableEntry(ctx context.Context, entry *models.TimetableEntry) (*models.TimetableEntry, error) {
	b := s.sb.Insert("timetable").
		Columns("faculty_id", "day", "time_slot", "subject").
		Values(entry.FacultyID, entry.Day, entry.TimeSlot, entry.Subject).
		Suffix("RETURNING " + joinColumns(timetableColumns))
	return queryOne(ctx, s.pg.Pool, b, "timetable entry", scanTimetableEntry)
}

// GetTimetableForFaculty lists one faculty member's classes
func (s *PostgresStore) GetTimetableForFaculty(ctx context.Context, facultyID int64) ([]*models.TimetableEntry, error) {
	b := s.sb.Select(timetableColumns...).
		From("timetable").
		Where(squirrel.Eq{"faculty_id": facultyID}).
		OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "timetable entry", scanTimetableEntry)
}

// ListTimetable lists every class
func (s *PostgresStore) ListTimetable(ctx context.Context) ([]*models.TimetableEntry, error) {
	b := s.sb.Select(timetableColumns...).From("timetable").OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "timetable entry", scanTimetableEntry)
}

// ReplaceTimetable clears the table and bulk-loads entries with COPY inside
// one transaction.
func (s *PostgresStore) ReplaceTimetable(ctx context.Context, entries []models.TimetableEntry) (int, error) {
	var copied int64
	err := s.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM timetable"); err != nil {
			return fmt.Errorf("error clearing timetable: %w", err)
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"timetable"},
			[]string{"faculty_id", "day", "time_slot", "subject"},
			pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
				e := entries[i]
				return []any{e.FacultyID, e.Day, e.TimeSlot, e.Subject}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("error copying timetable entries: %w", err)
		}
		copied = n
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int("entries", len(entries)).Msg("Error replacing timetable")
		return 0, err
	}
	return int(copied), nil
}
