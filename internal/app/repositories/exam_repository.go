package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

var examColumns = []string{
	"id", "name", "course_code", "exam_type", "date", "start_time", "end_time",
	"total_rooms", "invigilators_per_room", "rooms", "description", "status",
	"created_at", "version",
}

func scanExam(row scanner) (*models.Exam, error) {
	e := &models.Exam{}
	err := row.Scan(
		&e.ID, &e.Name, &e.CourseCode, &e.ExamType, &e.Date, &e.StartTime, &e.EndTime,
		&e.TotalRooms, &e.InvigilatorsPerRoom, &e.Rooms, &e.Description, &e.Status,
		&e.CreatedAt, &e.Version,
	)
	if e.Rooms == nil {
		e.Rooms = []string{}
	}
	return e, err
}

// CreateExam inserts an exam with its defaults applied
func (s *PostgresStore) CreateExam(ctx context.Context, exam *models.Exam) (*models.Exam, error) {
	row := exam.Clone()
	applyExamDefaults(row)

	b := s.sb.Insert("exams").
		Columns("name", "course_code", "exam_type", "date", "start_time", "end_time",
			"total_rooms", "invigilators_per_room", "rooms", "description", "status", "created_at").
		Values(row.Name, row.CourseCode, row.ExamType, row.Date, row.StartTime, row.EndTime,
			row.TotalRooms, row.InvigilatorsPerRoom, row.Rooms, row.Description, row.Status, models.Now()).
		Suffix("RETURNING " + joinColumns(examColumns))

	created, err := queryOne(ctx, s.pg.Pool, b, "exam", scanExam)
	if err != nil {
		logger.Error().Err(err).Str("courseCode", exam.CourseCode).Msg("Error creating exam")
		return nil, err
	}
	return created, nil
}

// GetExam retrieves an exam by ID
func (s *PostgresStore) GetExam(ctx context.Context, id int64) (*models.Exam, error) {
	b := s.sb.Select(examColumns...).From("exams").Where(squirrel.Eq{"id": id}).Limit(1)
	return queryOne(ctx, s.pg.Pool, b, "exam", scanExam)
}

// ListExams retrieves all exams ordered by ID
func (s *PostgresStore) ListExams(ctx context.Context) ([]*models.Exam, error) {
	b := s.sb.Select(examColumns...).From("exams").OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "exam", scanExam)
}

func examPatchColumns(patch models.ExamPatch) map[string]interface{} {
	set := map[string]interface{}{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.CourseCode != nil {
		set["course_code"] = *patch.CourseCode
	}
	if patch.ExamType != nil {
		set["exam_type"] = *patch.ExamType
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.StartTime != nil {
		set["start_time"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		set["end_time"] = *patch.EndTime
	}
	if patch.TotalRooms != nil {
		set["total_rooms"] = *patch.TotalRooms
	}
	if patch.InvigilatorsPerRoom != nil {
		set["invigilators_per_room"] = *patch.InvigilatorsPerRoom
	}
	if patch.Rooms != nil {
		set["rooms"] = patch.Rooms
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	return set
}

// UpdateExam applies the non-nil fields of patch and bumps the version
func (s *PostgresStore) UpdateExam(ctx context.Context, id int64, patch models.ExamPatch) (*models.Exam, error) {
	set := examPatchColumns(patch)
	set["version"] = squirrel.Expr("version + 1")

	b := s.sb.Update("exams").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(examColumns))

	updated, err := queryOne(ctx, s.pg.Pool, b, "exam", scanExam)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("examID", id).Msg("Error updating exam")
		return nil, fmt.Errorf("error updating exam: %w", err)
	}
	return updated, nil
}

// DeleteExam deletes the exam row only; duties and requests are kept
func (s *PostgresStore) DeleteExam(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "exams", id)
}
