package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/middleware"
)

// ExamController handles exam CRUD
type ExamController struct {
	examService services.ExamService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

// CreateExam handles exam creation
// @Summary Create an exam
// @Description Creates an exam in pending status
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam information"
// @Success 201 {object} dto.APIResponse{data=models.Exam} "Exam created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.CreateExam(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(exam))
}

// GetExam retrieves an exam by ID
// @Summary Get exam details
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Exam} "Exam retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Exam")
	if !ok {
		return
	}

	exam, err := c.examService.GetExam(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exam))
}

// ListExams retrieves all exams
// @Summary List exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Exam} "Exams retrieved successfully"
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	exams, err := c.examService.ListExams(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exams))
}

// UpdateExam applies a partial update
// @Summary Update an exam
// @Description Updates the given fields of an exam. Absent fields are kept.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID" Format(int64) minimum(1)
// @Param request body dto.UpdateExamRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Exam} "Exam updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Exam")
	if !ok {
		return
	}
	var req dto.UpdateExamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.UpdateExam(ctx.Request.Context(), id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exam))
}

// DeleteExam removes an exam. Its duties and requests are kept.
// @Summary Delete an exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.DeletedResponse} "Exam deleted"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, ok := idParam(ctx, "id", "Exam")
	if !ok {
		return
	}

	if err := c.examService.DeleteExam(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DeletedResponse{ID: id, Deleted: true}))
}
