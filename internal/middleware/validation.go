package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/invigilate/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes a 400 with the failing fields and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		requestLogger(c).Warn().Err(err).Str("path", c.FullPath()).Msg("Invalid request payload")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BadRequest writes a 400 with a validation error code.
func BadRequest(c *gin.Context, message string, details interface{}) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if details != nil {
		errorDetail.WithDetails(details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
