package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/pkg/response"
)

type timetableService interface {
	List(ctx context.Context, week *int) ([]models.TimetableSlot, error)
	Check(ctx context.Context, req dto.SlotRequest) (*dto.ConflictCheckResponse, error)
	Commit(ctx context.Context, req dto.CommitSlotRequest) (*dto.CommitSlotResponse, error)
	Delete(ctx context.Context, req dto.SlotKeyRequest) (*dto.DeleteSlotResponse, error)
	PeriodTimes(ctx context.Context) ([]models.PeriodTime, error)
	ReplacePeriodTimes(ctx context.Context, req dto.ReplacePeriodTimesRequest) ([]models.PeriodTime, error)
}

// TimetableHandler edits the master timetable.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary List master timetable slots
// @Tags Timetable
// @Produce json
// @Param week query int false "Week number"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	week, err := weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.service.List(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, map[string]interface{}{"count": len(slots)})
}

// Check godoc
// @Summary Preview conflicts a placement would cause
// @Description Advisory only; nothing is stored.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SlotRequest true "Candidate slot"
// @Success 200 {object} response.Envelope
// @Router /timetable/check [post]
func (h *TimetableHandler) Check(c *gin.Context) {
	var req dto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid slot payload"))
		return
	}
	result, err := h.service.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Commit godoc
// @Summary Place a subject on the master timetable
// @Description Rejected with CONFLICT when students would overlap unless force is true. A repeated slot fails with DUPLICATE_SLOT.
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CommitSlotRequest true "Slot"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetable [post]
func (h *TimetableHandler) Commit(c *gin.Context) {
	var req dto.CommitSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid slot payload"))
		return
	}
	result, err := h.service.Commit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Delete godoc
// @Summary Remove a subject from a slot
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SlotKeyRequest true "Slot key"
// @Success 200 {object} response.Envelope
// @Router /timetable [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	var req dto.SlotKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid slot payload"))
		return
	}
	result, err := h.service.Delete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// PeriodTimes godoc
// @Summary List period time labels
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /period-times [get]
func (h *TimetableHandler) PeriodTimes(c *gin.Context) {
	times, err := h.service.PeriodTimes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, times)
}

// ReplacePeriodTimes godoc
// @Summary Replace period time labels
// @Tags Timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReplacePeriodTimesRequest true "Period times"
// @Success 200 {object} response.Envelope
// @Router /period-times [put]
func (h *TimetableHandler) ReplacePeriodTimes(c *gin.Context) {
	var req dto.ReplacePeriodTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid period times payload"))
		return
	}
	times, err := h.service.ReplacePeriodTimes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, times)
}
