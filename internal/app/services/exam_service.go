package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/schedule"
)

// ExamService defines exam management operations
type ExamService interface {
	CreateExam(ctx context.Context, exam *models.Exam) (*models.Exam, error)
	GetExam(ctx context.Context, id int64) (*models.Exam, error)
	ListExams(ctx context.Context) ([]*models.Exam, error)
	UpdateExam(ctx context.Context, id int64, patch models.ExamPatch) (*models.Exam, error)
	DeleteExam(ctx context.Context, id int64) error
	// CompleteElapsedExams marks ready exams whose end time has passed as
	// completed, along with their assigned duties. It returns how many
	// exams were completed.
	CompleteElapsedExams(ctx context.Context, now time.Time) (int, error)
}

type examServiceImpl struct {
	store interface {
		repositories.ExamStore
		repositories.DutyStore
	}
	loc    *time.Location
	logger zerolog.Logger
}

// NewExamService creates a new exam service. Exam dates and times are read
// in loc.
func NewExamService(store repositories.Store, loc *time.Location, logger zerolog.Logger) ExamService {
	if loc == nil {
		loc = time.Local
	}
	return &examServiceImpl{store: store, loc: loc, logger: logger}
}

// validateExam checks a complete exam record
func validateExam(exam *models.Exam) error {
	if strings.TrimSpace(exam.Name) == "" {
		return apperrors.NewValidationError("name cannot be empty")
	}
	if strings.TrimSpace(exam.CourseCode) == "" {
		return apperrors.NewValidationError("course code cannot be empty")
	}
	if !exam.ExamType.Valid() {
		return validationf("unknown exam type %q", exam.ExamType)
	}
	if _, err := schedule.ParseDate(exam.Date); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if !schedule.ValidClock(exam.StartTime) || !schedule.ValidClock(exam.EndTime) {
		return apperrors.NewValidationError("start and end times must be HH:MM")
	}
	window, err := schedule.NewInterval(exam.StartTime, exam.EndTime)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if window.End <= window.Start {
		return apperrors.NewValidationError("end time must be after start time")
	}
	if exam.InvigilatorsPerRoom < 0 {
		return apperrors.NewValidationError("invigilators per room cannot be negative")
	}
	if exam.TotalRooms < 0 {
		return apperrors.NewValidationError("total rooms cannot be negative")
	}

	seen := make(map[string]struct{}, len(exam.Rooms))
	for _, room := range exam.Rooms {
		if strings.TrimSpace(room) == "" {
			return apperrors.NewValidationError("room names cannot be empty")
		}
		if _, dup := seen[room]; dup {
			return validationf("room %q is listed twice", room)
		}
		seen[room] = struct{}{}
	}
	if len(exam.Rooms) > 0 && exam.TotalRooms > 0 && exam.TotalRooms != len(exam.Rooms) {
		return validationf("total rooms is %d but %d rooms are listed", exam.TotalRooms, len(exam.Rooms))
	}
	if exam.Status != "" && !exam.Status.Valid() {
		return validationf("unknown exam status %q", exam.Status)
	}
	return nil
}

func normalizeRooms(rooms []string) []string {
	if rooms == nil {
		return nil
	}
	out := make([]string, len(rooms))
	for i, room := range rooms {
		out[i] = strings.TrimSpace(room)
	}
	return out
}

func (s *examServiceImpl) CreateExam(ctx context.Context, exam *models.Exam) (*models.Exam, error) {
	if exam == nil {
		return nil, apperrors.NewValidationError("exam is nil")
	}
	row := exam.Clone()
	row.Rooms = normalizeRooms(row.Rooms)
	if err := validateExam(row); err != nil {
		return nil, err
	}

	created, err := s.store.CreateExam(ctx, row)
	if err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "creating exam")
	}

	s.logger.Info().Int64("examID", created.ID).Str("courseCode", created.CourseCode).Str("examType", string(created.ExamType)).Msg("Exam created")
	return created, nil
}

func (s *examServiceImpl) GetExam(ctx context.Context, id int64) (*models.Exam, error) {
	if err := validID(id, "exam"); err != nil {
		return nil, err
	}
	exam, err := s.store.GetExam(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving exam")
	}
	return exam, nil
}

func (s *examServiceImpl) ListExams(ctx context.Context) ([]*models.Exam, error) {
	exams, err := s.store.ListExams(ctx)
	if err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving exams")
	}
	return exams, nil
}

// UpdateExam validates the merged record before writing the patch
func (s *examServiceImpl) UpdateExam(ctx context.Context, id int64, patch models.ExamPatch) (*models.Exam, error) {
	current, err := s.GetExam(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Rooms = normalizeRooms(patch.Rooms)
	merged := current.Clone()
	patch.Apply(merged)
	if patch.Rooms != nil && patch.TotalRooms == nil {
		total := len(merged.Rooms)
		patch.TotalRooms = &total
		merged.TotalRooms = total
	}
	if err := validateExam(merged); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateExam(ctx, id, patch)
	if err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "updating exam")
	}
	return updated, nil
}

// DeleteExam removes the exam. Duties and requests that refer to it are
// left in place.
func (s *examServiceImpl) DeleteExam(ctx context.Context, id int64) error {
	if err := validID(id, "exam"); err != nil {
		return err
	}
	existed, err := s.store.DeleteExam(ctx, id)
	if err != nil {
		return translate(err, apperrors.ErrExamNotFound, "deleting exam")
	}
	if !existed {
		return apperrors.ErrExamNotFound
	}
	s.logger.Info().Int64("examID", id).Msg("Exam deleted")
	return nil
}

func (s *examServiceImpl) CompleteElapsedExams(ctx context.Context, now time.Time) (int, error) {
	exams, err := s.store.ListExams(ctx)
	if err != nil {
		return 0, translate(err, apperrors.ErrExamNotFound, "listing exams")
	}

	completed := 0
	for _, exam := range exams {
		if exam.Status != models.ExamStatusReady {
			continue
		}
		end, err := schedule.At(exam.Date, exam.EndTime, s.loc)
		if err != nil {
			s.logger.Warn().Err(err).Int64("examID", exam.ID).Msg("Skipping exam with unreadable date")
			continue
		}
		if !end.Before(now) {
			continue
		}

		if err := s.completeExam(ctx, exam.ID); err != nil {
			return completed, err
		}
		completed++
	}
	return completed, nil
}

func (s *examServiceImpl) completeExam(ctx context.Context, examID int64) error {
	duties, err := s.store.GetDutiesForExam(ctx, examID)
	if err != nil {
		return translate(err, apperrors.ErrExamNotFound, "listing exam duties")
	}

	done := models.DutyStatusCompleted
	for _, duty := range duties {
		if duty.Status != models.DutyStatusAssigned {
			continue
		}
		if _, err := s.store.UpdateDuty(ctx, duty.ID, models.DutyPatch{Status: &done}); err != nil {
			return translate(err, apperrors.ErrDutyNotFound, "completing duty")
		}
	}

	status := models.ExamStatusCompleted
	if _, err := s.store.UpdateExam(ctx, examID, models.ExamPatch{Status: &status}); err != nil {
		return translate(err, apperrors.ErrExamNotFound, "completing exam")
	}

	s.logger.Info().Int64("examID", examID).Int("duties", len(duties)).Msg("Exam completed")
	return nil
}
