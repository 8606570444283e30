package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/models/dto"
	appRepos "github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/config"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "invigilate-test"
	cfg.Scheduling.AdminUsername = "admin"
	cfg.Scheduling.AdminPassword = "admin-pass"
	cfg.Scheduling.DefaultFacultyPassword = "password123"
	cfg.Scheduling.Timezone = "UTC"
	return cfg
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := testConfig()
	lgr := zerolog.Nop()

	deps, err := BuildDependencies(cfg, appRepos.NewMemoryStore(), lgr)
	require.NoError(t, err)
	require.NoError(t, SeedDefaultData(context.Background(), cfg, deps))

	router, err := SetupRouter(cfg, deps, lgr)
	require.NoError(t, err)
	gin.SetMode(gin.TestMode)

	return &testAPI{t: t, router: router}
}

func (a *testAPI) send(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (a *testAPI) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req, token)
}

func (a *testAPI) login(username, password string) (string, *models.Faculty) {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var token dto.TokenResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &token))
	return token.AccessToken, token.Faculty
}

func (a *testAPI) importCSV(token, csv string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "timetable.csv")
	require.NoError(a.t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timetable/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.send(req, token)
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)
	rec, env := api.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/api/v1/exams", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeTokenNotFound, env.Error.Code)

	rec, env = api.do(http.MethodGet, "/api/v1/exams", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, env.Error.Code)

	rec, env = api.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)

	token, admin := api.login("admin", "admin-pass")
	assert.True(t, admin.IsAdmin)

	rec, env = api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[models.Faculty](t, env)
	assert.Equal(t, admin.ID, me.ID)
}

func TestSchedulingFlow(t *testing.T) {
	api := newTestAPI(t)
	adminToken, admin := api.login("admin", "admin-pass")

	rec, env := api.importCSV(adminToken, "Faculty,Day,Time Slot,Subject\nAsha Rao,MON,09:00 - 10:00,Data Structures\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	imported := decode[struct {
		Entries        int      `json:"entries"`
		CreatedFaculty []string `json:"createdFaculty"`
	}](t, env)
	assert.Equal(t, 1, imported.Entries)
	assert.Equal(t, []string{"Asha Rao"}, imported.CreatedFaculty)

	ashaToken, asha := api.login("asharao", "password123")
	assert.False(t, asha.IsAdmin)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/timetable/%d", asha.ID), ashaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.TimetableEntry](t, env), 1)

	examReq := dto.CreateExamRequest{
		Name:                "Mid-term",
		CourseCode:          "CS201",
		ExamType:            "T4",
		Date:                "2025-03-10",
		StartTime:           "09:30",
		EndTime:             "10:30",
		InvigilatorsPerRoom: 1,
		Rooms:               []string{"A-101"},
	}

	rec, _ = api.do(http.MethodPost, "/api/v1/exams", ashaToken, examReq)
	assert.Equal(t, http.StatusForbidden, rec.Code, "faculty cannot create exams")

	bad := examReq
	bad.StartTime = "9:3"
	rec, env = api.do(http.MethodPost, "/api/v1/exams", adminToken, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "startTime", env.Error.Field)

	rec, env = api.do(http.MethodPost, "/api/v1/exams", adminToken, examReq)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exam := decode[models.Exam](t, env)
	assert.Equal(t, models.ExamStatusPending, exam.Status)

	assignPath := "/api/v1/duties/assign"
	rec, env = api.do(http.MethodPost, assignPath, adminToken, dto.AssignDutiesRequest{
		ExamID:      exam.ID,
		Assignments: []dto.AssignmentRequest{{FacultyID: asha.ID, Room: "A-101"}},
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)
	assert.Contains(t, env.Error.Message, "Asha Rao")

	rec, env = api.do(http.MethodPost, assignPath, adminToken, dto.AssignDutiesRequest{
		ExamID:      exam.ID,
		Assignments: []dto.AssignmentRequest{{FacultyID: 0, Room: "A-101"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	seed := uint64(7)
	rec, env = api.do(http.MethodPost, "/api/v1/duties/auto-assign", adminToken, dto.AutoAssignRequest{
		ExamID:     exam.ID,
		FacultyIDs: []int64{admin.ID},
		Seed:       &seed,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	preview := decode[struct {
		Seed       uint64 `json:"seed"`
		Unassigned int    `json:"unassigned"`
	}](t, env)
	assert.Equal(t, seed, preview.Seed)
	assert.Zero(t, preview.Unassigned)

	rec, env = api.do(http.MethodPost, assignPath, adminToken, dto.AssignDutiesRequest{
		ExamID:      exam.ID,
		Assignments: []dto.AssignmentRequest{{FacultyID: admin.ID, Room: "A-101"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[struct {
		Count int          `json:"count"`
		Exam  *models.Exam `json:"exam"`
	}](t, env)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, models.ExamStatusReady, result.Exam.Status)

	rec, _ = api.do(http.MethodGet, fmt.Sprintf("/api/v1/duties/faculty/%d", admin.ID), ashaToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/duties/faculty/%d", admin.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.DutyWithExam](t, env), 1)

	rec, env = api.do(http.MethodGet, "/api/v1/duties/all", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]models.DutyDetail](t, env)
	require.Len(t, all, 1)
	assert.Equal(t, admin.ID, all[0].Faculty.ID)
}

func TestRequestWorkflow(t *testing.T) {
	api := newTestAPI(t)
	adminToken, _ := api.login("admin", "admin-pass")

	rec, _ := api.do(http.MethodPost, "/api/v1/faculty", adminToken, dto.CreateFacultyRequest{
		Name:     "Ben Okafor",
		Username: "bokafor",
		Password: "secret99",
		Role:     "Lecturer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := api.do(http.MethodPost, "/api/v1/faculty", adminToken, dto.CreateFacultyRequest{
		Name:     "Ben Again",
		Username: "bokafor",
		Password: "secret99",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, env.Error.Code)

	benToken, ben := api.login("bokafor", "secret99")

	rec, env = api.do(http.MethodPost, "/api/v1/exams", adminToken, dto.CreateExamRequest{
		Name: "Final", CourseCode: "CS301", ExamType: "Semester",
		Date: "2025-06-02", StartTime: "13:00", EndTime: "16:00",
		InvigilatorsPerRoom: 2, Rooms: []string{"B-1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exam := decode[models.Exam](t, env)

	rec, env = api.do(http.MethodPost, "/api/v1/requests", benToken, dto.CreateRequestRequest{
		RequestType: "substitute",
		ExamID:      exam.ID,
		Reason:      "Conference travel",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Request](t, env)
	assert.Equal(t, ben.ID, created.FacultyID)
	assert.Equal(t, "Ben Okafor", created.FacultyName)
	assert.Equal(t, models.RequestStatusPending, created.Status)

	rec, _ = api.do(http.MethodGet, "/api/v1/requests", benToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/requests/faculty/%d", ben.ID), benToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Request](t, env), 1)

	decidePath := fmt.Sprintf("/api/v1/requests/%d", created.ID)
	rec, _ = api.do(http.MethodPut, decidePath, benToken, dto.DecideRequestRequest{Status: "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = api.do(http.MethodPut, decidePath, adminToken, dto.DecideRequestRequest{Status: "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.RequestStatusApproved, decode[models.Request](t, env).Status)

	rec, env = api.do(http.MethodPut, decidePath, adminToken, dto.DecideRequestRequest{Status: "rejected"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)
}

func TestDeleteExam(t *testing.T) {
	api := newTestAPI(t)
	adminToken, _ := api.login("admin", "admin-pass")

	rec, env := api.do(http.MethodPost, "/api/v1/exams", adminToken, dto.CreateExamRequest{
		Name: "Quiz", CourseCode: "CS101", ExamType: "T1",
		Date: "2025-03-11", StartTime: "10:00", EndTime: "11:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exam := decode[models.Exam](t, env)

	path := fmt.Sprintf("/api/v1/exams/%d", exam.ID)
	rec, _ = api.do(http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/exams/abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
