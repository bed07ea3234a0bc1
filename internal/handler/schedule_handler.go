package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/service"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
	"github.com/noah-isme/sma-remedial-api/pkg/export"
	"github.com/noah-isme/sma-remedial-api/pkg/response"
)

type scheduleService interface {
	Resolve(ctx context.Context, studentID string, week *int) (*models.ScheduleResult, error)
	StudentGrid(ctx context.Context, studentID string, week *int) (*models.Grid, error)
	Export(ctx context.Context, studentID string, week *int, format export.Format) (*service.ExportFile, error)
	TeacherSchedule(ctx context.Context, teacher string, week *int) ([]models.TeacherScheduleEntry, error)
	TeacherGrid(ctx context.Context, teacher string, week *int) (*models.Grid, error)
	Audience(ctx context.Context, teacher, subject string) ([]models.RosterEntry, error)
}

// ScheduleHandler serves personal and teacher schedules.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Student godoc
// @Summary Resolve a student's remedial schedule
// @Description Ordered by week, weekday and period. An empty list with a reason is a valid result.
// @Tags Schedules
// @Produce json
// @Param id path string true "Student ID"
// @Param week query int false "Week number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/{id}/schedule [get]
func (h *ScheduleHandler) Student(c *gin.Context) {
	week, err := weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Resolve(c.Request.Context(), c.Param("id"), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// StudentGrid godoc
// @Summary Student schedule as a period x weekday grid
// @Tags Schedules
// @Produce json
// @Param id path string true "Student ID"
// @Param week query int false "Week number"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/schedule/grid [get]
func (h *ScheduleHandler) StudentGrid(c *gin.Context) {
	week, err := weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	grid, err := h.service.StudentGrid(c.Request.Context(), c.Param("id"), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

// Export godoc
// @Summary Download a student's schedule grid
// @Tags Schedules
// @Produce octet-stream
// @Param id path string true "Student ID"
// @Param week query int false "Week number"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Router /students/{id}/schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	week, err := weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error()))
		return
	}
	file, err := h.service.Export(c.Request.Context(), c.Param("id"), week, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Teacher godoc
// @Summary Slots of every subject a teacher is assigned
// @Tags Schedules
// @Produce json
// @Param name path string true "Teacher name"
// @Param week query int false "Week number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{name}/schedule [get]
func (h *ScheduleHandler) Teacher(c *gin.Context) {
	week, err := weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.service.TeacherSchedule(c.Request.Context(), c.Param("name"), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// TeacherGrid godoc
// @Summary Teacher schedule as a period x weekday grid
// @Tags Schedules
// @Produce json
// @Param name path string true "Teacher name"
// @Param week query int false "Week number"
// @Success 200 {object} response.Envelope
// @Router /teachers/{name}/schedule/grid [get]
func (h *ScheduleHandler) TeacherGrid(c *gin.Context) {
	week, err := weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	grid, err := h.service.TeacherGrid(c.Request.Context(), c.Param("name"), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

// Audience godoc
// @Summary Students a teacher's subject is for
// @Tags Schedules
// @Produce json
// @Param name path string true "Teacher name"
// @Param subject path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{name}/subjects/{subject}/students [get]
func (h *ScheduleHandler) Audience(c *gin.Context) {
	students, err := h.service.Audience(c.Request.Context(), c.Param("name"), c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"count": len(students)})
}
