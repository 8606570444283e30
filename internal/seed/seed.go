package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/config"
)

// CreateDefaultData creates the administrator account and imports the
// configured timetable CSV, if one exists. Failures are collected so one
// step does not prevent the other.
func CreateDefaultData(ctx context.Context, cfg *config.Config, faculty services.FacultyService, timetable services.TimetableService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin account, timetable)...")
	var finalErr error

	admin, err := faculty.EnsureAdmin(ctx, cfg.Scheduling.AdminUsername, cfg.Scheduling.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Str("username", cfg.Scheduling.AdminUsername).Msg("Error creating admin account")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Int64("facultyID", admin.ID).Str("username", admin.Username).Msg("Admin account ready")
	}

	if path := cfg.Scheduling.TimetableCSV; path != "" {
		if err := importTimetable(ctx, path, timetable, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func importTimetable(ctx context.Context, path string, timetable services.TimetableService, lgr zerolog.Logger) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		lgr.Warn().Str("path", path).Msg("Timetable CSV not found, skipping import")
		return nil
	}
	if err != nil {
		return fmt.Errorf("open timetable %s: %w", path, err)
	}
	defer f.Close()

	result, err := timetable.ImportCSV(ctx, f)
	if err != nil {
		lgr.Error().Err(err).Str("path", path).Msg("Error importing timetable")
		return fmt.Errorf("import timetable %s: %w", path, err)
	}

	lgr.Info().
		Str("path", path).
		Int("entries", result.Entries).
		Int("faculty", result.Faculty).
		Strs("createdFaculty", result.CreatedFaculty).
		Msg("Timetable imported")
	return nil
}
