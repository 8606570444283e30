package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
)

func TestRequestWorkflow(t *testing.T) {
	f := newFixture(t)
	svc := NewRequestService(f.store, quiet)
	author := f.faculty("Asha Rao")
	other := f.faculty("Bilal")
	admin := Actor{FacultyID: 99, IsAdmin: true}
	exam := f.exam(models.ExamTypeT1, "A-101")

	created, err := svc.CreateRequest(f.ctx, Actor{FacultyID: author.ID}, &models.Request{
		FacultyID:   other.ID, // ignored: the author is the caller
		RequestType: models.RequestTypeSubstitute,
		ExamID:      exam.ID,
		Reason:      " conference ",
		Status:      models.RequestStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, created.FacultyID)
	assert.Equal(t, "Asha Rao", created.FacultyName)
	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.Equal(t, "conference", created.Reason)

	_, err = svc.DecideRequest(f.ctx, Actor{FacultyID: author.ID}, created.ID, models.RequestStatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.DecideRequest(f.ctx, admin, created.ID, models.RequestStatusPending)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	decided, err := svc.DecideRequest(f.ctx, admin, created.ID, models.RequestStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, decided.Status)

	_, err = svc.DecideRequest(f.ctx, admin, created.ID, models.RequestStatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.DecideRequest(f.ctx, admin, 404, models.RequestStatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateRequest_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewRequestService(f.store, quiet)
	author := f.faculty("asha")
	exam := f.exam(models.ExamTypeT1, "A-101")
	actor := Actor{FacultyID: author.ID}

	_, err := svc.CreateRequest(f.ctx, actor, &models.Request{RequestType: "holiday", ExamID: exam.ID, Reason: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateRequest(f.ctx, actor, &models.Request{RequestType: models.RequestTypeOther, ExamID: exam.ID, Reason: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateRequest(f.ctx, actor, &models.Request{RequestType: models.RequestTypeOther, ExamID: 77, Reason: "x"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRequestVisibility(t *testing.T) {
	f := newFixture(t)
	svc := NewRequestService(f.store, quiet)
	author := f.faculty("asha")
	stranger := f.faculty("bilal")
	exam := f.exam(models.ExamTypeT1, "A-101")

	created, err := svc.CreateRequest(f.ctx, Actor{FacultyID: author.ID}, &models.Request{
		RequestType: models.RequestTypeRoomChange,
		ExamID:      exam.ID,
		Reason:      "accessibility",
	})
	require.NoError(t, err)

	detail, err := svc.GetRequest(f.ctx, Actor{FacultyID: author.ID}, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Exam)
	assert.Equal(t, "Mid-term", detail.Exam.Name)
	assert.Equal(t, "asha", detail.Faculty.Name)

	_, err = svc.GetRequest(f.ctx, Actor{FacultyID: stranger.ID}, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetRequestsForFaculty(f.ctx, Actor{FacultyID: stranger.ID}, author.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	mine, err := svc.GetRequestsForFaculty(f.ctx, Actor{FacultyID: author.ID}, author.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListRequests(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, exam.Date, all[0].Exam.Date)
}
