package controllers

import (
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/middleware"
	"github.com/yigit/invigilate/internal/pkg/helpers"
)

// DutyController exposes the duty allocator and duty listings
type DutyController struct {
	dutyService services.DutyService
	logger      zerolog.Logger
}

// NewDutyController creates a new DutyController
func NewDutyController(dutyService services.DutyService, logger zerolog.Logger) *DutyController {
	return &DutyController{
		dutyService: dutyService,
		logger:      logger,
	}
}

// AssignDuties replaces all duties of an exam
// @Summary Assign invigilators to an exam
// @Description Replaces the exam's duties with the submitted assignments and marks the exam ready. For T4 exams every faculty member is checked against their timetable; a clash rejects the whole request.
// @Tags duties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignDutiesRequest true "Assignments"
// @Success 200 {object} dto.APIResponse{data=services.AssignmentResult} "Duties assigned"
// @Failure 400 {object} dto.ErrorResponse "Unassigned slot, unknown room or invalid data"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Timetable conflict or concurrent change"
// @Router /duties/assign [post]
func (c *DutyController) AssignDuties(ctx *gin.Context) {
	var req dto.AssignDutiesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.dutyService.AssignDuties(ctx.Request.Context(), req.ExamID, req.ToAssignments())
	if err != nil {
		c.logger.Warn().Err(err).Int64("examID", req.ExamID).Msg("Duty assignment rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// AutoAssign proposes a random assignment without storing it
// @Summary Preview a random assignment
// @Description Shuffles the given faculty into the exam's slots. Slots left over when the pool runs out have facultyId 0. The seed used is returned so the proposal can be reproduced.
// @Tags duties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AutoAssignRequest true "Faculty pool"
// @Param seed query int false "Shuffle seed, used when the body has none"
// @Success 200 {object} dto.APIResponse{data=services.AutoAssignPreview} "Proposed assignment"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Exam or faculty not found"
// @Router /duties/auto-assign [post]
func (c *DutyController) AutoAssign(ctx *gin.Context) {
	var req dto.AutoAssignRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	seed, err := c.resolveSeed(ctx, req.Seed)
	if err != nil {
		middleware.BadRequest(ctx, "Invalid seed", err.Error())
		return
	}

	preview, err := c.dutyService.AutoAssign(ctx.Request.Context(), req.ExamID, req.FacultyIDs, seed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(preview))
}

func (c *DutyController) resolveSeed(ctx *gin.Context, fromBody *uint64) (uint64, error) {
	if fromBody != nil {
		return *fromBody, nil
	}
	seed, ok, err := helpers.ParseSeedQuery(ctx)
	if err != nil {
		return 0, err
	}
	if ok {
		return seed, nil
	}
	return rand.Uint64(), nil
}

// CreateDuty adds a single duty
// @Summary Create a duty
// @Description Adds one duty to an exam without touching its other duties
// @Tags duties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDutyRequest true "Duty"
// @Success 201 {object} dto.APIResponse{data=models.Duty} "Duty created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Exam or faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Timetable conflict"
// @Router /duties [post]
func (c *DutyController) CreateDuty(ctx *gin.Context) {
	var req dto.CreateDutyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	duty, err := c.dutyService.CreateDuty(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(duty))
}

// UpdateDutyStatus changes a duty's status
// @Summary Update duty status
// @Tags duties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Duty ID" Format(int64) minimum(1)
// @Param request body dto.UpdateDutyStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Duty} "Duty updated"
// @Failure 404 {object} dto.ErrorResponse "Duty not found"
// @Router /duties/{id}/status [patch]
func (c *DutyController) UpdateDutyStatus(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Duty")
	if !ok {
		return
	}
	var req dto.UpdateDutyStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	duty, err := c.dutyService.UpdateDutyStatus(ctx.Request.Context(), id, models.DutyStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(duty))
}

// GetDutiesForExam lists the duties of an exam
// @Summary Duties of an exam
// @Tags duties
// @Produce json
// @Security BearerAuth
// @Param examId path int true "Exam ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Duty} "Duties retrieved"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /duties/exam/{examId} [get]
func (c *DutyController) GetDutiesForExam(ctx *gin.Context) {
	examID, ok := idParam(ctx, "examId", "Exam")
	if !ok {
		return
	}

	duties, err := c.dutyService.GetDutiesForExam(ctx.Request.Context(), examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(duties))
}

// GetDutiesForFaculty lists a faculty member's duties with their exams
// @Summary Duties of a faculty member
// @Tags duties
// @Produce json
// @Security BearerAuth
// @Param facultyId path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.DutyWithExam} "Duties retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not your duties"
// @Router /duties/faculty/{facultyId} [get]
func (c *DutyController) GetDutiesForFaculty(ctx *gin.Context) {
	facultyID, ok := idParam(ctx, "facultyId", "Faculty")
	if !ok {
		return
	}

	duties, err := c.dutyService.GetDutiesForFaculty(ctx.Request.Context(), facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(duties))
}

// ListAllDuties lists every duty with its exam and faculty
// @Summary List all duties
// @Tags duties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.DutyDetail} "Duties retrieved"
// @Router /duties/all [get]
func (c *DutyController) ListAllDuties(ctx *gin.Context) {
	duties, err := c.dutyService.ListAllDuties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(duties))
}
