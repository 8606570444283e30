package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/auth"
	"github.com/yigit/invigilate/internal/pkg/schedule"
)

// ImportResult summarizes a timetable import.
type ImportResult struct {
	Entries        int      `json:"entries"`
	Faculty        int      `json:"faculty"`
	CreatedFaculty []string `json:"createdFaculty"`
}

// TimetableService manages teaching timetables
type TimetableService interface {
	GetTimetableForFaculty(ctx context.Context, facultyID int64) ([]*models.TimetableEntry, error)
	// ImportCSV replaces the whole timetable with the rows of a
	// "Faculty,Day,Time Slot,Subject" CSV. Faculty named in the file that do
	// not exist yet are created with default attributes.
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type timetableServiceImpl struct {
	store interface {
		repositories.FacultyStore
		repositories.TimetableStore
	}
	hash            PasswordHasher
	defaultPassword string
	logger          zerolog.Logger
}

// NewTimetableService creates a new timetable service. defaultPassword is
// given to faculty created by an import.
func NewTimetableService(store repositories.Store, hash PasswordHasher, defaultPassword string, logger zerolog.Logger) TimetableService {
	if hash == nil {
		hash = auth.HashPassword
	}
	return &timetableServiceImpl{
		store:           store,
		hash:            hash,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

func (s *timetableServiceImpl) GetTimetableForFaculty(ctx context.Context, facultyID int64) ([]*models.TimetableEntry, error) {
	if err := validID(facultyID, "faculty"); err != nil {
		return nil, err
	}
	if _, err := s.store.GetFaculty(ctx, facultyID); err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving faculty")
	}

	entries, err := s.store.GetTimetableForFaculty(ctx, facultyID)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving timetable")
	}
	return entries, nil
}

func (s *timetableServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, err := schedule.ParseTimetableCSV(r)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	ids, created, err := s.resolveFaculty(ctx, schedule.FacultyNames(rows))
	if err != nil {
		return nil, err
	}

	entries, err := schedule.BuildEntries(rows, ids)
	if err != nil {
		return nil, fmt.Errorf("error building timetable: %w", err)
	}

	n, err := s.store.ReplaceTimetable(ctx, entries)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "replacing timetable")
	}

	s.logger.Info().
		Int("entries", n).
		Int("faculty", len(ids)).
		Int("createdFaculty", len(created)).
		Msg("Timetable imported")

	return &ImportResult{Entries: n, Faculty: len(ids), CreatedFaculty: created}, nil
}

// resolveFaculty maps every name to a faculty id, creating missing members.
func (s *timetableServiceImpl) resolveFaculty(ctx context.Context, names []string) (map[string]int64, []string, error) {
	ids := make(map[string]int64, len(names))
	created := []string{}

	var hashed string
	for _, name := range names {
		username := schedule.Username(name)
		if username == "" {
			return nil, nil, validationf("faculty name %q yields an empty username", name)
		}

		existing, err := s.store.GetFacultyByUsername(ctx, username)
		if err == nil {
			ids[name] = existing.ID
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, translate(err, apperrors.ErrFacultyNotFound, "looking up faculty")
		}

		if hashed == "" {
			if hashed, err = s.hash(s.defaultPassword); err != nil {
				return nil, nil, err
			}
		}
		faculty, err := s.store.CreateFaculty(ctx, &models.Faculty{
			Name:       name,
			Username:   username,
			Password:   hashed,
			Department: DefaultDepartment,
			Role:       DefaultRole,
		})
		if err != nil {
			return nil, nil, translate(err, apperrors.ErrFacultyNotFound, "creating faculty")
		}
		ids[name] = faculty.ID
		created = append(created, name)
	}
	return ids, created, nil
}
