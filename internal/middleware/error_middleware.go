package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/auth"
	"github.com/yigit/invigilate/internal/pkg/logger"
)

// errorMappings pair each sentinel with its HTTP status, code and fallback
// message. Order matters: the first match wins.
var errorMappings = []struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}{
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// The message of an apperrors.CustomError is passed through to the client
// together with its details.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, apperrors.Message(err, m.message))
		if details := apperrors.DetailsOf(err); len(details) > 0 {
			detail.WithDetails(details)
		}
		detail.WithSeverity(dto.ErrorSeverityWarning)
		c.AbortWithStatusJSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	requestLogger(c).Error().Err(err).
		Str("path", c.FullPath()).
		Msg("Unhandled error")
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

// requestLogger returns the logger tagged with the request id, if the
// request logger middleware ran.
func requestLogger(c *gin.Context) *zerolog.Logger {
	if l, ok := c.Get(ContextLoggerKey); ok {
		if zl, ok := l.(zerolog.Logger); ok {
			return &zl
		}
	}
	l := logger.Get()
	return &l
}
