package controllers

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/app/services"
	"github.com/yigit/invigilate/internal/middleware"
)

// TimetableFormField is the multipart field the import endpoint reads.
const TimetableFormField = "file"

var errNoTimetable = errors.New(`upload a CSV in the "file" field or set scheduling.timetable_csv`)

// TimetableController serves teaching timetables and the CSV import
type TimetableController struct {
	timetableService services.TimetableService
	csvPath          string
	logger           zerolog.Logger
}

// NewTimetableController creates a new TimetableController. csvPath is the
// file imported when a request carries no upload; it may be empty.
func NewTimetableController(timetableService services.TimetableService, csvPath string, logger zerolog.Logger) *TimetableController {
	return &TimetableController{
		timetableService: timetableService,
		csvPath:          csvPath,
		logger:           logger,
	}
}

// GetTimetable returns the weekly classes of a faculty member
// @Summary Get faculty timetable
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param facultyId path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.TimetableEntry} "Timetable retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /timetable/{facultyId} [get]
func (c *TimetableController) GetTimetable(ctx *gin.Context) {
	facultyID, ok := idParam(ctx, "facultyId", "Faculty")
	if !ok {
		return
	}

	entries, err := c.timetableService.GetTimetableForFaculty(ctx.Request.Context(), facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries))
}

// ImportTimetable replaces the timetable from a CSV file
// @Summary Import timetable CSV
// @Description Replaces the whole timetable with a "Faculty,Day,Time Slot,Subject" CSV. Without an upload the configured file is imported. Unknown faculty are created with default attributes.
// @Tags timetable
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file false "Timetable CSV"
// @Success 200 {object} dto.APIResponse{data=services.ImportResult} "Timetable imported"
// @Failure 400 {object} dto.ErrorResponse "Malformed CSV or no file available"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Router /timetable/import [post]
func (c *TimetableController) ImportTimetable(ctx *gin.Context) {
	source, name, err := c.openSource(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("No timetable to import")
		middleware.BadRequest(ctx, "No timetable file available", err.Error())
		return
	}
	defer source.Close()

	result, err := c.timetableService.ImportCSV(ctx.Request.Context(), source)
	if err != nil {
		c.logger.Warn().Err(err).Str("source", name).Msg("Timetable import failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("source", name).
		Int("entries", result.Entries).
		Int("createdFaculty", len(result.CreatedFaculty)).
		Msg("Timetable imported")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// openSource prefers an uploaded file and falls back to the configured path.
func (c *TimetableController) openSource(ctx *gin.Context) (io.ReadCloser, string, error) {
	if header, err := ctx.FormFile(TimetableFormField); err == nil {
		f, err := header.Open()
		if err != nil {
			return nil, "", err
		}
		return f, header.Filename, nil
	}
	if c.csvPath == "" {
		return nil, "", errNoTimetable
	}
	f, err := os.Open(c.csvPath)
	if err != nil {
		return nil, "", err
	}
	return f, c.csvPath, nil
}
