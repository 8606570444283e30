package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/schedule"
)

// AssignmentResult is the outcome of a committed duty assignment.
type AssignmentResult struct {
	Count         int            `json:"count"`
	ExpectedSlots int            `json:"expectedSlots"`
	Duties        []*models.Duty `json:"duties"`
	Exam          *models.Exam   `json:"exam"`
}

// AutoAssignPreview is a proposed assignment that has not been stored.
type AutoAssignPreview struct {
	ExamID      int64                 `json:"examId"`
	Seed        uint64                `json:"seed"`
	Slots       int                   `json:"slots"`
	Unassigned  int                   `json:"unassigned"`
	Assignments []schedule.Assignment `json:"assignments"`
}

// DutyService allocates faculty to exam rooms and lists duties
type DutyService interface {
	// AssignDuties replaces the exam's duties with assignments and marks the
	// exam ready. Nothing is written unless every assignment is valid.
	AssignDuties(ctx context.Context, examID int64, assignments []schedule.Assignment) (*AssignmentResult, error)
	// AutoAssign proposes a random assignment of facultyIDs to the exam's
	// slots. Equal seeds give equal proposals.
	AutoAssign(ctx context.Context, examID int64, facultyIDs []int64, seed uint64) (*AutoAssignPreview, error)
	CreateDuty(ctx context.Context, duty *models.Duty) (*models.Duty, error)
	UpdateDutyStatus(ctx context.Context, id int64, status models.DutyStatus) (*models.Duty, error)
	GetDutiesForExam(ctx context.Context, examID int64) ([]*models.Duty, error)
	GetDutiesForFaculty(ctx context.Context, facultyID int64) ([]*models.DutyWithExam, error)
	ListAllDuties(ctx context.Context) ([]*models.DutyDetail, error)
}

type dutyServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewDutyService creates a new duty service
func NewDutyService(store repositories.Store, logger zerolog.Logger) DutyService {
	return &dutyServiceImpl{store: store, logger: logger}
}

func (s *dutyServiceImpl) getExam(ctx context.Context, examID int64) (*models.Exam, error) {
	if err := validID(examID, "exam"); err != nil {
		return nil, err
	}
	exam, err := s.store.GetExam(ctx, examID)
	if err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving exam")
	}
	return exam, nil
}

func (s *dutyServiceImpl) getFaculty(ctx context.Context, facultyID int64) (*models.Faculty, error) {
	faculty, err := s.store.GetFaculty(ctx, facultyID)
	if err != nil {
		notFound := apperrors.NewCustomError(apperrors.ErrResourceNotFound, fmt.Sprintf("faculty %d not found", facultyID)).
			WithDetails(map[string]interface{}{"facultyId": facultyID})
		return nil, translate(err, notFound, "retrieving faculty")
	}
	return faculty, nil
}

// validateAssignments rejects empty submissions, unfilled slots and rooms
// that do not belong to the exam.
func validateAssignments(exam *models.Exam, assignments []schedule.Assignment) error {
	if len(assignments) == 0 {
		return apperrors.NewValidationError("at least one assignment is required")
	}

	unassigned := 0
	for _, a := range assignments {
		if a.FacultyID == schedule.Unassigned || strings.TrimSpace(a.Room) == "" {
			unassigned++
		}
	}
	if unassigned > 0 {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("%d slot(s) have no faculty assigned", unassigned)).
			WithDetails(map[string]interface{}{"unassigned": unassigned})
	}

	for _, a := range assignments {
		if a.FacultyID < 0 {
			return validationf("invalid faculty ID %d", a.FacultyID)
		}
		if !exam.HasRoom(a.Room) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("room %q is not one of the exam's rooms", a.Room)).
				WithDetails(map[string]interface{}{"room": a.Room, "rooms": exam.Rooms})
		}
	}
	return nil
}

// checkConflicts verifies, for exams that need it, that every faculty member
// exists and has no class during the exam window.
func (s *dutyServiceImpl) checkConflicts(ctx context.Context, exam *models.Exam, facultyIDs []int64) error {
	if !exam.RequiresConflictCheck() {
		return nil
	}

	day, err := schedule.Weekday(exam.Date)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	checked := make(map[int64]struct{}, len(facultyIDs))
	for _, id := range facultyIDs {
		if _, done := checked[id]; done {
			continue
		}
		checked[id] = struct{}{}

		faculty, err := s.getFaculty(ctx, id)
		if err != nil {
			return err
		}

		stored, err := s.store.GetTimetableForFaculty(ctx, id)
		if err != nil {
			return translate(err, apperrors.ErrFacultyNotFound, "retrieving timetable")
		}
		entries := make([]models.TimetableEntry, 0, len(stored))
		for _, e := range stored {
			if _, err := schedule.ParseTimeSlot(e.TimeSlot); err != nil {
				s.logger.Warn().Int64("entryID", e.ID).Str("timeSlot", e.TimeSlot).Msg("Ignoring timetable entry with malformed time slot")
			}
			entries = append(entries, *e)
		}

		if clash, found := schedule.FindConflict(entries, day, exam.StartTime, exam.EndTime); found {
			s.logger.Info().
				Int64("examID", exam.ID).
				Int64("facultyID", faculty.ID).
				Str("subject", clash.Subject).
				Str("timeSlot", clash.TimeSlot).
				Msg("Timetable conflict")
			return apperrors.NewCustomError(apperrors.ErrConflict, conflictMessage(faculty.Name, clash)).
				WithDetails(map[string]interface{}{
					"facultyId":   faculty.ID,
					"facultyName": faculty.Name,
					"day":         clash.Day,
					"timeSlot":    clash.TimeSlot,
					"subject":     clash.Subject,
				})
		}
	}
	return nil
}

// conflictMessage names the clashing class, leaving out an empty subject.
func conflictMessage(name string, clash models.TimetableEntry) string {
	class := clash.Day + " " + clash.TimeSlot
	if clash.Subject != "" {
		class += ", " + clash.Subject
	}
	return fmt.Sprintf("%s has a timetable conflict with this exam (%s)", name, class)
}

func (s *dutyServiceImpl) AssignDuties(ctx context.Context, examID int64, assignments []schedule.Assignment) (*AssignmentResult, error) {
	exam, err := s.getExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := validateAssignments(exam, assignments); err != nil {
		return nil, err
	}

	facultyIDs := make([]int64, len(assignments))
	duties := make([]models.Duty, len(assignments))
	for i, a := range assignments {
		facultyIDs[i] = a.FacultyID
		duties[i] = models.Duty{ExamID: exam.ID, FacultyID: a.FacultyID, Room: a.Room}
	}
	if err := s.checkConflicts(ctx, exam, facultyIDs); err != nil {
		return nil, err
	}

	created, updated, err := s.store.ReplaceExamDuties(ctx, exam.ID, exam.Version, duties)
	if err != nil {
		if errors.Is(err, repositories.ErrVersionMismatch) {
			s.logger.Warn().Int64("examID", exam.ID).Int64("version", exam.Version).Msg("Exam changed during assignment")
		}
		return nil, translate(err, apperrors.ErrExamNotFound, "assigning duties")
	}

	expected := exam.SlotCount()
	if len(created) != expected {
		s.logger.Warn().
			Int64("examID", exam.ID).
			Int("assigned", len(created)).
			Int("expectedSlots", expected).
			Msg("Assignment does not fill every slot")
	}
	s.logger.Info().Int64("examID", exam.ID).Int("duties", len(created)).Msg("Duties assigned")

	return &AssignmentResult{
		Count:         len(created),
		ExpectedSlots: expected,
		Duties:        created,
		Exam:          updated,
	}, nil
}

func (s *dutyServiceImpl) AutoAssign(ctx context.Context, examID int64, facultyIDs []int64, seed uint64) (*AutoAssignPreview, error) {
	exam, err := s.getExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	pool := make([]int64, 0, len(facultyIDs))
	seen := make(map[int64]struct{}, len(facultyIDs))
	for _, id := range facultyIDs {
		if id <= 0 {
			return nil, validationf("invalid faculty ID %d", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.getFaculty(ctx, id); err != nil {
			return nil, err
		}
		pool = append(pool, id)
	}
	if len(pool) == 0 {
		return nil, apperrors.NewValidationError("select at least one faculty member")
	}

	slots := schedule.BuildSlots(exam.Rooms, exam.InvigilatorsPerRoom)
	if len(slots) == 0 {
		return nil, apperrors.NewValidationError("exam has no rooms to staff")
	}

	assignments := schedule.AutoAssign(schedule.NewShuffler(seed), pool, slots)
	return &AutoAssignPreview{
		ExamID:      exam.ID,
		Seed:        seed,
		Slots:       len(slots),
		Unassigned:  schedule.CountUnassigned(assignments),
		Assignments: assignments,
	}, nil
}

// CreateDuty stores a single manually entered duty. T4 exams are checked
// for timetable conflicts like a full assignment.
func (s *dutyServiceImpl) CreateDuty(ctx context.Context, duty *models.Duty) (*models.Duty, error) {
	if duty == nil {
		return nil, apperrors.NewValidationError("duty is nil")
	}
	exam, err := s.getExam(ctx, duty.ExamID)
	if err != nil {
		return nil, err
	}
	if err := validID(duty.FacultyID, "faculty"); err != nil {
		return nil, err
	}
	if err := validateAssignments(exam, []schedule.Assignment{{FacultyID: duty.FacultyID, Room: duty.Room}}); err != nil {
		return nil, err
	}
	if duty.Status != "" && !duty.Status.Valid() {
		return nil, validationf("unknown duty status %q", duty.Status)
	}
	if _, err := s.getFaculty(ctx, duty.FacultyID); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, exam, []int64{duty.FacultyID}); err != nil {
		return nil, err
	}

	created, err := s.store.CreateDuty(ctx, duty)
	if err != nil {
		return nil, translate(err, apperrors.ErrDutyNotFound, "creating duty")
	}
	return created, nil
}

func (s *dutyServiceImpl) UpdateDutyStatus(ctx context.Context, id int64, status models.DutyStatus) (*models.Duty, error) {
	if err := validID(id, "duty"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, validationf("unknown duty status %q", status)
	}

	updated, err := s.store.UpdateDuty(ctx, id, models.DutyPatch{Status: &status})
	if err != nil {
		return nil, translate(err, apperrors.ErrDutyNotFound, "updating duty")
	}
	return updated, nil
}

func (s *dutyServiceImpl) GetDutiesForExam(ctx context.Context, examID int64) ([]*models.Duty, error) {
	if err := validID(examID, "exam"); err != nil {
		return nil, err
	}
	duties, err := s.store.GetDutiesForExam(ctx, examID)
	if err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving duties")
	}
	return duties, nil
}

// examCache memoizes exam lookups while enriching a listing. Deleted exams
// are cached as nil.
type examCache struct {
	store repositories.ExamStore
	exams map[int64]*models.Exam
}

func (c *examCache) get(ctx context.Context, id int64) (*models.Exam, error) {
	if exam, ok := c.exams[id]; ok {
		return exam, nil
	}
	exam, err := c.store.GetExam(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving exam")
	}
	c.exams[id] = exam
	return exam, nil
}

func (s *dutyServiceImpl) GetDutiesForFaculty(ctx context.Context, facultyID int64) ([]*models.DutyWithExam, error) {
	if err := validID(facultyID, "faculty"); err != nil {
		return nil, err
	}
	duties, err := s.store.GetDutiesForFaculty(ctx, facultyID)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving duties")
	}

	cache := &examCache{store: s.store, exams: map[int64]*models.Exam{}}
	out := make([]*models.DutyWithExam, 0, len(duties))
	for _, d := range duties {
		exam, err := cache.get(ctx, d.ExamID)
		if err != nil {
			return nil, err
		}
		out = append(out, &models.DutyWithExam{Duty: *d, Exam: exam})
	}
	return out, nil
}

func (s *dutyServiceImpl) ListAllDuties(ctx context.Context) ([]*models.DutyDetail, error) {
	duties, err := s.store.ListDuties(ctx)
	if err != nil {
		return nil, translate(err, apperrors.ErrDutyNotFound, "retrieving duties")
	}

	cache := &examCache{store: s.store, exams: map[int64]*models.Exam{}}
	faculty := map[int64]*models.FacultySummary{}
	out := make([]*models.DutyDetail, 0, len(duties))
	for _, d := range duties {
		exam, err := cache.get(ctx, d.ExamID)
		if err != nil {
			return nil, err
		}

		summary, ok := faculty[d.FacultyID]
		if !ok {
			f, err := s.store.GetFaculty(ctx, d.FacultyID)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving faculty")
			}
			summary = f.Summary()
			faculty[d.FacultyID] = summary
		}

		out = append(out, &models.DutyDetail{Duty: *d, Exam: exam, Faculty: summary})
	}
	return out, nil
}
