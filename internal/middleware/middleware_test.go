package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body dto.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not found", apperrors.ErrExamNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "exam not found"},
		{"conflict", apperrors.NewConflictError("Dr. Rao has a class"), http.StatusConflict, dto.ErrorCodeConflict, "Dr. Rao has a class"},
		{"validation", apperrors.NewValidationError("room is blank"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "room is blank"},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"already exists", apperrors.ErrUsernameTaken, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "username already exists"},
		{"wrapped", fmt.Errorf("assigning: %w", apperrors.ErrStaleExam), http.StatusConflict, dto.ErrorCodeConflict, "exam was modified concurrently, reload and retry"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(tt.err)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, body.Error)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestHandleAPIErrorDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrConflict, "clash").
		WithDetails(map[string]interface{}{"facultyId": 3})
	_, body := serveError(err)
	require.NotNil(t, body.Error)
	assert.Equal(t, map[string]interface{}{"facultyId": float64(3)}, body.Error.Details)
}

func TestRequestIDPropagation(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "invigilate",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	secured := router.Group("", m.JWTAuth())
	secured.GET("/me", func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"facultyId": actor.FacultyID, "isAdmin": actor.IsAdmin})
	})
	secured.GET("/admin", m.AdminRequired(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	secured.GET("/faculty/:facultyId", m.SelfOrAdmin("facultyId"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	token := func(f *models.Faculty) string {
		signed, _, err := jwtService.GenerateAccessToken(f)
		require.NoError(t, err)
		return signed
	}
	member := token(&models.Faculty{ID: 4, Username: "asha"})
	admin := token(&models.Faculty{ID: 1, Username: "admin", IsAdmin: true})

	get := func(path, tok string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, get("/me", ""))
	assert.Equal(t, http.StatusOK, get("/me", member))
	assert.Equal(t, http.StatusForbidden, get("/admin", member))
	assert.Equal(t, http.StatusNoContent, get("/admin", admin))
	assert.Equal(t, http.StatusNoContent, get("/faculty/4", member))
	assert.Equal(t, http.StatusForbidden, get("/faculty/5", member))
	assert.Equal(t, http.StatusNoContent, get("/faculty/5", admin))
	assert.Equal(t, http.StatusBadRequest, get("/faculty/x", member))
}
