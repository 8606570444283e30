package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
)

// RequestService runs the change request workflow. Faculty raise requests;
// only admins decide them, and only while they are pending.
type RequestService interface {
	CreateRequest(ctx context.Context, actor Actor, request *models.Request) (*models.Request, error)
	GetRequest(ctx context.Context, actor Actor, id int64) (*models.RequestDetail, error)
	ListRequests(ctx context.Context) ([]*models.RequestDetail, error)
	GetRequestsForFaculty(ctx context.Context, actor Actor, facultyID int64) ([]*models.Request, error)
	DecideRequest(ctx context.Context, actor Actor, id int64, status models.RequestStatus) (*models.Request, error)
}

type requestServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewRequestService creates a new request service
func NewRequestService(store repositories.Store, logger zerolog.Logger) RequestService {
	return &requestServiceImpl{store: store, logger: logger}
}

// CreateRequest records a request authored by the actor
func (s *requestServiceImpl) CreateRequest(ctx context.Context, actor Actor, request *models.Request) (*models.Request, error) {
	if request == nil {
		return nil, apperrors.NewValidationError("request is nil")
	}
	if !request.RequestType.Valid() {
		return nil, validationf("unknown request type %q", request.RequestType)
	}
	if strings.TrimSpace(request.Reason) == "" {
		return nil, apperrors.NewValidationError("reason cannot be empty")
	}
	if err := validID(request.ExamID, "exam"); err != nil {
		return nil, err
	}

	author, err := s.store.GetFaculty(ctx, actor.FacultyID)
	if err != nil {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving author")
	}
	if _, err := s.store.GetExam(ctx, request.ExamID); err != nil {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving exam")
	}

	row := &models.Request{
		FacultyID:   author.ID,
		FacultyName: author.Name,
		RequestType: request.RequestType,
		ExamID:      request.ExamID,
		Reason:      strings.TrimSpace(request.Reason),
		Status:      models.RequestStatusPending,
	}
	created, err := s.store.CreateRequest(ctx, row)
	if err != nil {
		return nil, translate(err, apperrors.ErrRequestNotFound, "creating request")
	}

	s.logger.Info().Int64("requestID", created.ID).Int64("facultyID", author.ID).Str("type", string(created.RequestType)).Msg("Request created")
	return created, nil
}

func (s *requestServiceImpl) detail(ctx context.Context, r *models.Request) (*models.RequestDetail, error) {
	out := &models.RequestDetail{Request: *r}

	faculty, err := s.store.GetFaculty(ctx, r.FacultyID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, translate(err, apperrors.ErrFacultyNotFound, "retrieving faculty")
	}
	out.Faculty = faculty.Summary()

	exam, err := s.store.GetExam(ctx, r.ExamID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, translate(err, apperrors.ErrExamNotFound, "retrieving exam")
	}
	if exam != nil {
		out.Exam = &models.ExamSummary{ID: exam.ID, Name: exam.Name, Date: exam.Date}
	}
	return out, nil
}

// GetRequest returns a request to its author or an admin
func (s *requestServiceImpl) GetRequest(ctx context.Context, actor Actor, id int64) (*models.RequestDetail, error) {
	if err := validID(id, "request"); err != nil {
		return nil, err
	}
	r, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrRequestNotFound, "retrieving request")
	}
	if !actor.CanAccess(r.FacultyID) {
		return nil, apperrors.NewForbiddenError("you can only view your own requests")
	}
	return s.detail(ctx, r)
}

func (s *requestServiceImpl) ListRequests(ctx context.Context) ([]*models.RequestDetail, error) {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, translate(err, apperrors.ErrRequestNotFound, "retrieving requests")
	}

	out := make([]*models.RequestDetail, 0, len(requests))
	for _, r := range requests {
		d, err := s.detail(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *requestServiceImpl) GetRequestsForFaculty(ctx context.Context, actor Actor, facultyID int64) ([]*models.Request, error) {
	if err := validID(facultyID, "faculty"); err != nil {
		return nil, err
	}
	if !actor.CanAccess(facultyID) {
		return nil, apperrors.NewForbiddenError("you can only view your own requests")
	}
	requests, err := s.store.GetRequestsForFaculty(ctx, facultyID)
	if err != nil {
		return nil, translate(err, apperrors.ErrRequestNotFound, "retrieving requests")
	}
	return requests, nil
}

// DecideRequest approves or rejects a pending request
func (s *requestServiceImpl) DecideRequest(ctx context.Context, actor Actor, id int64, status models.RequestStatus) (*models.Request, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbiddenError("only administrators can decide requests")
	}
	if err := validID(id, "request"); err != nil {
		return nil, err
	}
	if status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		return nil, validationf("status must be %q or %q", models.RequestStatusApproved, models.RequestStatusRejected)
	}

	current, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrRequestNotFound, "retrieving request")
	}
	if current.Status != models.RequestStatusPending {
		return nil, apperrors.ErrRequestFinalized
	}

	updated, err := s.store.UpdateRequest(ctx, id, models.RequestPatch{Status: &status})
	if err != nil {
		return nil, translate(err, apperrors.ErrRequestNotFound, "updating request")
	}

	s.logger.Info().Int64("requestID", id).Int64("adminID", actor.FacultyID).Str("status", string(status)).Msg("Request decided")
	return updated, nil
}
