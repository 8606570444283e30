package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

var requestColumns = []string{"id", "faculty_id", "faculty_name", "request_type", "exam_id", "reason", "status", "created_at"}

func scanRequest(row scanner) (*models.Request, error) {
	r := &models.Request{}
	err := row.Scan(&r.ID, &r.FacultyID, &r.FacultyName, &r.RequestType, &r.ExamID, &r.Reason, &r.Status, &r.CreatedAt)
	return r, err
}

// CreateRequest inserts a change request
func (s *PostgresStore) CreateRequest(ctx context.Context, request *models.Request) (*models.Request, error) {
	status := request.Status
	if status == "" {
		status = models.RequestStatusPending
	}

	b := s.sb.Insert("requests").
		Columns("faculty_id", "faculty_name", "request_type", "exam_id", "reason", "status", "created_at").
		Values(request.FacultyID, request.FacultyName, request.RequestType, request.ExamID, request.Reason, status, models.Now()).
		Suffix("RETURNING " + joinColumns(requestColumns))

	created, err := queryOne(ctx, s.pg.Pool, b, "request", scanRequest)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", request.FacultyID).Msg("Error creating request")
		return nil, err
	}
	return created, nil
}

// GetRequest retrieves a request by ID
func (s *PostgresStore) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	b := s.sb.Select(requestColumns...).From("requests").Where(squirrel.Eq{"id": id}).Limit(1)
	return queryOne(ctx, s.pg.Pool, b, "request", scanRequest)
}

// ListRequests retrieves all requests ordered by ID
func (s *PostgresStore) ListRequests(ctx context.Context) ([]*models.Request, error) {
	b := s.sb.Select(requestColumns...).From("requests").OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "request", scanRequest)
}

// GetRequestsForFaculty lists the requests raised by one faculty member
func (s *PostgresStore) GetRequestsForFaculty(ctx context.Context, facultyID int64) ([]*models.Request, error) {
	b := s.sb.Select(requestColumns...).From("requests").Where(squirrel.Eq{"faculty_id": facultyID}).OrderBy("id ASC")
	return queryAll(ctx, s.pg.Pool, b, "request", scanRequest)
}

// UpdateRequest applies the non-nil fields of patch
func (s *PostgresStore) UpdateRequest(ctx context.Context, id int64, patch models.RequestPatch) (*models.Request, error) {
	set := map[string]interface{}{}
	if patch.Reason != nil {
		set["reason"] = *patch.Reason
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if len(set) == 0 {
		return s.GetRequest(ctx, id)
	}

	b := s.sb.Update("requests").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(requestColumns))

	updated, err := queryOne(ctx, s.pg.Pool, b, "request", scanRequest)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error updating request")
		return nil, fmt.Errorf("error updating request: %w", err)
	}
	return updated, nil
}
