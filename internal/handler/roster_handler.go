package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
	"github.com/noah-isme/sma-remedial-api/pkg/response"
)

type rosterService interface {
	Import(ctx context.Context, r io.Reader, size int64) (*dto.RosterImportResponse, error)
	Subjects(ctx context.Context) ([]string, error)
	Classes(ctx context.Context) ([]string, error)
}

// multipartOverhead is the allowance for multipart framing on top of the file itself.
const multipartOverhead = 64 << 10

// RosterHandler exposes roster import and summaries.
type RosterHandler struct {
	service        rosterService
	maxUploadBytes int64
}

// NewRosterHandler constructs the handler. Upload bodies larger than
// maxUploadBytes plus multipart framing are cut off while reading; zero
// disables the cap.
func NewRosterHandler(svc rosterService, maxUploadBytes int64) *RosterHandler {
	return &RosterHandler{service: svc, maxUploadBytes: maxUploadBytes}
}

// Import godoc
// @Summary Replace the remedial roster from an xlsx upload
// @Description Header row must name 학번/이름/미도달과목/예외처리 (or student_id/name/subjects/exemption). Rows that only partly parse are imported and reported under issues.
// @Tags Roster
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Roster workbook"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /roster/import [post]
func (h *RosterHandler) Import(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}
	header, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrPayloadTooLarge.Code, appErrors.ErrPayloadTooLarge.Status, "roster upload is too large"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "multipart field \"file\" is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, invalidPayload(err, "uploaded file could not be read"))
		return
	}
	defer file.Close()

	result, err := h.service.Import(c.Request.Context(), file, header.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Subjects godoc
// @Summary List subjects required by non-exempt students
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/subjects [get]
func (h *RosterHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// Classes godoc
// @Summary List class keys present on the roster
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/classes [get]
func (h *RosterHandler) Classes(c *gin.Context) {
	classes, err := h.service.Classes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}
