package repositories

import (
	"context"
	"errors"

	"github.com/yigit/invigilate/internal/app/models"
)

// Shared store errors. Services translate these into apperrors values.
// ErrInvalidReference reports a write naming a row that does not exist.
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrVersionMismatch  = errors.New("record version mismatch")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// FacultyStore persists faculty members. Faculty are never deleted.
type FacultyStore interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	GetFaculty(ctx context.Context, id int64) (*models.Faculty, error)
	GetFacultyByUsername(ctx context.Context, username string) (*models.Faculty, error)
	ListFaculty(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, id int64, patch models.FacultyPatch) (*models.Faculty, error)
}

// TimetableStore persists teaching timetables.
type TimetableStore interface {
	CreateTimetableEntry(ctx context.Context, entry *models.TimetableEntry) (*models.TimetableEntry, error)
	GetTimetableForFaculty(ctx context.Context, facultyID int64) ([]*models.TimetableEntry, error)
	ListTimetable(ctx context.Context) ([]*models.TimetableEntry, error)
	// ReplaceTimetable swaps the whole timetable for entries in one step.
	// Readers observe either the old set or the new one.
	ReplaceTimetable(ctx context.Context, entries []models.TimetableEntry) (int, error)
}

// ExamStore persists exams. Every successful write increments Version.
type ExamStore interface {
	CreateExam(ctx context.Context, exam *models.Exam) (*models.Exam, error)
	GetExam(ctx context.Context, id int64) (*models.Exam, error)
	ListExams(ctx context.Context) ([]*models.Exam, error)
	UpdateExam(ctx context.Context, id int64, patch models.ExamPatch) (*models.Exam, error)
	DeleteExam(ctx context.Context, id int64) (bool, error)
}

// DutyStore persists invigilation duties.
type DutyStore interface {
	CreateDuty(ctx context.Context, duty *models.Duty) (*models.Duty, error)
	GetDuty(ctx context.Context, id int64) (*models.Duty, error)
	ListDuties(ctx context.Context) ([]*models.Duty, error)
	GetDutiesForExam(ctx context.Context, examID int64) ([]*models.Duty, error)
	GetDutiesForFaculty(ctx context.Context, facultyID int64) ([]*models.Duty, error)
	UpdateDuty(ctx context.Context, id int64, patch models.DutyPatch) (*models.Duty, error)
	DeleteDuty(ctx context.Context, id int64) (bool, error)

	// ReplaceExamDuties deletes every duty of the exam, creates duties in
	// status assigned and marks the exam ready. It fails with
	// ErrVersionMismatch, changing nothing, when the exam's version is not
	// expectedVersion.
	ReplaceExamDuties(ctx context.Context, examID, expectedVersion int64, duties []models.Duty) ([]*models.Duty, *models.Exam, error)
}

// RequestStore persists change requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, request *models.Request) (*models.Request, error)
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	ListRequests(ctx context.Context) ([]*models.Request, error)
	GetRequestsForFaculty(ctx context.Context, facultyID int64) ([]*models.Request, error)
	UpdateRequest(ctx context.Context, id int64, patch models.RequestPatch) (*models.Request, error)
}

// Store is the complete entity store used by the services.
type Store interface {
	FacultyStore
	TimetableStore
	ExamStore
	DutyStore
	RequestStore
}

// applyExamDefaults fills the values a new exam gets when they are omitted.
func applyExamDefaults(exam *models.Exam) {
	if exam.Status == "" {
		exam.Status = models.ExamStatusPending
	}
	if exam.InvigilatorsPerRoom <= 0 {
		exam.InvigilatorsPerRoom = 1
	}
	if exam.Rooms == nil {
		exam.Rooms = []string{}
	}
	if exam.TotalRooms == 0 {
		exam.TotalRooms = len(exam.Rooms)
	}
}
