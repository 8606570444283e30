// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/middleware"
	"github.com/yigit/invigilate/internal/pkg/apperrors"
	"github.com/yigit/invigilate/internal/pkg/helpers"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles faculty login
// @Summary Faculty login
// @Description Authenticates a faculty member and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("facultyID", result.Faculty.ID).Msg("Faculty logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn),
		Faculty:     result.Faculty,
	}))
}

// Me returns the authenticated faculty member
// @Summary Current faculty
// @Description Returns the faculty member the access token belongs to
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Current faculty"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Faculty no longer exists"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	actor, ok := actorOrAbort(ctx)
	if !ok {
		return
	}

	faculty, err := c.authService.CurrentFaculty(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty))
}

// actorOrAbort reads the authenticated caller, answering 401 when JWTAuth
// did not run.
func actorOrAbort(ctx *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.ActorFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
	}
	return actor, ok
}

// idParam parses a positive id path parameter, answering 400 on failure.
func idParam(ctx *gin.Context, name, what string) (int64, bool) {
	id, err := helpers.ParseIDParam(ctx, name)
	if err != nil {
		middleware.BadRequest(ctx, "Invalid "+what+" ID", what+" ID must be a positive number")
		return 0, false
	}
	return id, true
}
