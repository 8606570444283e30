package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/middleware"
)

// RequestController handles faculty change requests
type RequestController struct {
	requestService services.RequestService
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService services.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// CreateRequest raises a change request as the caller
// @Summary Raise a change request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Request"
// @Success 201 {object} dto.APIResponse{data=models.Request} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /requests [post]
func (c *RequestController) CreateRequest(ctx *gin.Context) {
	actor, ok := actorOrAbort(ctx)
	if !ok {
		return
	}
	var req dto.CreateRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	request, err := c.requestService.CreateRequest(ctx.Request.Context(), actor, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListRequests lists every request
// @Summary List requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.RequestDetail} "Requests retrieved"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Router /requests [get]
func (c *RequestController) ListRequests(ctx *gin.Context) {
	requests, err := c.requestService.ListRequests(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// GetRequest retrieves one request
// @Summary Get a request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.RequestDetail} "Request retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not your request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /requests/{id} [get]
func (c *RequestController) GetRequest(ctx *gin.Context) {
	actor, ok := actorOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id", "Request")
	if !ok {
		return
	}

	request, err := c.requestService.GetRequest(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// GetRequestsForFaculty lists the requests raised by a faculty member
// @Summary Requests of a faculty member
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param facultyId path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Request} "Requests retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not your requests"
// @Router /requests/faculty/{facultyId} [get]
func (c *RequestController) GetRequestsForFaculty(ctx *gin.Context) {
	actor, ok := actorOrAbort(ctx)
	if !ok {
		return
	}
	facultyID, ok := idParam(ctx, "facultyId", "Faculty")
	if !ok {
		return
	}

	requests, err := c.requestService.GetRequestsForFaculty(ctx.Request.Context(), actor, facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// DecideRequest approves or rejects a pending request
// @Summary Decide a request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID" Format(int64) minimum(1)
// @Param request body dto.DecideRequestRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.Request} "Request decided"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Router /requests/{id} [put]
func (c *RequestController) DecideRequest(ctx *gin.Context) {
	actor, ok := actorOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := idParam(ctx, "id", "Request")
	if !ok {
		return
	}
	var req dto.DecideRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	request, err := c.requestService.DecideRequest(ctx.Request.Context(), actor, id, models.RequestStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}
