package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/dberrors"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

var dutyColumns = []string{"id", "exam_id", "faculty_id", "room", "status", "created_at"}

func scanDuty(row scanner) (*models.Duty, error) {
	d := &models.Duty{}
	err := row.Scan(&d.ID, &d.ExamID, &d.FacultyID, &d.Room, &d.Status, &d.CreatedAt)
	return d, err
}

// CreateDuty inserts a single duty
func (s *PostgresStore) CreateDuty(ctx context.Context, duty *models.Duty) (*models.Duty, error) {
	status := duty.Status
	if status == "" {
		status = models.DutyStatusAssigned
	}

	b := s.sb.Insert("duties").
		Columns("exam_id", "faculty_id", "room", "status", "created_at").
		Values(duty.ExamID, duty.FacultyID, duty.Room, status, models.Now()).
		Suffix("RETURNING " + joinColumns(dutyColumns))

	created, err := queryOne(ctx, s.pg.Pool, b, "duty", scanDuty)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, ErrInvalidReference
		}
		logger.Error().Err(err).Int64("examID", duty.ExamID).Msg("Error creating duty")
		return nil, err
	}
	return created, nil
}

// GetDuty retrieves a duty by ID
func (s *PostgresStore) GetDuty(ctx context.Context, id int64) (*models.Duty, error) {
	b := s.sb.Select(dutyColumns...).From("duties").Where(squirrel.Eq{"id": id}).Limit(1)
	return queryOne(ctx, s.pg.Pool, b, "duty", scanDuty)
}

// ListDuties retrieves all duties ordered by ID
func (s *PostgresStore) ListDuties(ctx context.Context) ([]*models.Duty, error) {
	b := s.sb.Select(dutyColumns...).From("duties").OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "duty", scanDuty)
}

// GetDutiesForExam lists the duties of one exam
func (s *PostgresStore) GetDutiesForExam(ctx context.Context, examID int64) ([]*models.Duty, error) {
	b := s.sb.Select(dutyColumns...).From("duties").Where(squirrel.Eq{"exam_id": examID}).OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "duty", scanDuty)
}

// GetDutiesForFaculty lists the duties of one faculty member
func (s *PostgresStore) GetDutiesForFaculty(ctx context.Context, facultyID int64) ([]*models.Duty, error) {
	b := s.sb.Select(dutyColumns...).From("duties").Where(squirrel.Eq{"faculty_id": facultyID}).OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "duty", scanDuty)
}

// UpdateDuty applies the non-nil fields of patch
func (s *PostgresStore) UpdateDuty(ctx context.Context, id int64, patch models.DutyPatch) (*models.Duty, error) {
	set := map[string]interface{}{}
	if patch.FacultyID != nil {
		set["faculty_id"] = *patch.FacultyID
	}
	if patch.Room != nil {
		set["room"] = *patch.Room
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if len(set) == 0 {
		return s.GetDuty(ctx, id)
	}

	b := s.sb.Update("duties").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(dutyColumns))

	updated, err := queryOne(ctx, s.pg.Pool, b, "duty", scanDuty)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("dutyID", id).Msg("Error updating duty")
		return nil, fmt.Errorf("error updating duty: %w", err)
	}
	return updated, nil
}

// DeleteDuty deletes a duty and reports whether it existed
func (s *PostgresStore) DeleteDuty(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "duties", id)
}

// ReplaceExamDuties locks the exam row, checks its version, swaps its duty
// set and marks it ready in one transaction.
func (s *PostgresStore) ReplaceExamDuties(ctx context.Context, examID, expectedVersion int64, duties []models.Duty) ([]*models.Duty, *models.Exam, error) {
	var (
		created []*models.Duty
		exam    *models.Exam
	)

	err := s.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		lock := s.sb.Select("version").From("exams").Where(squirrel.Eq{"id": examID}).Suffix("FOR UPDATE")
		sql, args, err := lock.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build exam lock query: %w", err)
		}

		var version int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&version); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("error locking exam: %w", err)
		}
		if version != expectedVersion {
			return ErrVersionMismatch
		}

		sql, args, err = s.sb.Delete("duties").Where(squirrel.Eq{"exam_id": examID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete duties query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting exam duties: %w", err)
		}

		created = []*models.Duty{}
		if len(duties) > 0 {
			now := models.Now()
			insert := s.sb.Insert("duties").Columns("exam_id", "faculty_id", "room", "status", "created_at")
			for _, d := range duties {
				insert = insert.Values(examID, d.FacultyID, d.Room, models.DutyStatusAssigned, now)
			}
			created, err = queryAll(ctx, tx, insert.Suffix("RETURNING "+joinColumns(dutyColumns)), "duty", scanDuty)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return ErrInvalidReference
				}
				return err
			}
		}

		ready := s.sb.Update("exams").
			Set("status", models.ExamStatusReady).
			Set("version", squirrel.Expr("version + 1")).
			Where(squirrel.Eq{"id": examID}).
			Suffix("RETURNING " + joinColumns(examColumns))
		exam, err = queryOne(ctx, tx, ready, "exam", scanExam)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrVersionMismatch) && !errors.Is(err, ErrInvalidReference) {
			logger.Error().Err(err).Int64("examID", examID).Msg("Error replacing exam duties")
		}
		return nil, nil, err
	}

	return created, exam, nil
}
