package handler

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
	"github.com/noah-isme/sma-remedial-api/pkg/export"
)

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRosterImportMultipart(t *testing.T) {
	s := newTestServer()
	s.roster.result = &dto.RosterImportResponse{Imported: 2}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "roster.xlsx")
	require.NoError(t, err)
	_, _ = part.Write([]byte("workbook-bytes"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := s.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "workbook-bytes", string(s.roster.body))
	assert.Equal(t, int64(len("workbook-bytes")), s.roster.size)
	assert.JSONEq(t, `{"imported":2,"exempt":0,"issues":null}`, string(decode(t, rec).Data))
}

func TestRosterImportRejectsOversizedBody(t *testing.T) {
	s := newTestServer()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "roster.xlsx")
	require.NoError(t, err)
	_, _ = part.Write(bytes.Repeat([]byte("x"), testUploadLimit+multipartOverhead+1))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roster/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := s.do(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, decode(t, rec).Error.Code)
	assert.Nil(t, s.roster.body)
}

func TestRosterImportRequiresFile(t *testing.T) {
	s := newTestServer()
	rec := s.do(httptest.NewRequest(http.MethodPost, "/api/v1/roster/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, rec).Error.Code)
}

func TestRosterSubjects(t *testing.T) {
	s := newTestServer()
	s.roster.subjects = []string{"Eng_3", "Math_4"}
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/roster/subjects", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Eng_3","Math_4"]`, string(decode(t, rec).Data))
}

func TestAssignmentRoutes(t *testing.T) {
	s := newTestServer()

	rec := s.do(jsonRequest(http.MethodPost, "/api/v1/assignments", `{"subject":"Math_4","teacher":"Kim","classes":["1-1"],"room":"101"}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Kim", s.assignments.lastReq.Teacher)
	assert.Equal(t, []string{"1-1"}, s.assignments.lastReq.Classes)

	rec = s.do(jsonRequest(http.MethodPost, "/api/v1/assignments", `{"subject":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodDelete, "/api/v1/assignments/a1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a1", s.assignments.removed)

	s.assignments.err = appErrors.ErrAssignmentNotFound
	rec = s.do(httptest.NewRequest(http.MethodDelete, "/api/v1/assignments/zz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ASSIGNMENT_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestTimetableListWeekFilter(t *testing.T) {
	s := newTestServer()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/timetable?week=2", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.timetable.lastWeek)
	assert.Equal(t, 2, *s.timetable.lastWeek)
	assert.Equal(t, float64(1), decode(t, rec).Meta["count"])

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/timetable", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, s.timetable.lastWeek)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/timetable?week=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/timetable?week=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableCommit(t *testing.T) {
	s := newTestServer()

	rec := s.do(jsonRequest(http.MethodPost, "/api/v1/timetable", `{"week":1,"day":"월","period":1,"subject":"Math_4","date_label":"11/04","force":true}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, s.timetable.lastCommit.Force)
	assert.Equal(t, "월", s.timetable.lastCommit.Day)
	assert.Equal(t, "11/04", s.timetable.lastCommit.DateLabel)

	conflicts := []models.ConflictDescriptor{{StudentID: "10101", SubjectID: "Math_4", CollidesWith: "Eng_3"}}
	s.timetable.commitErr = appErrors.WithDetails(appErrors.Clone(appErrors.ErrConflict, "1 student(s) would attend two subjects at once"), conflicts)
	rec = s.do(jsonRequest(http.MethodPost, "/api/v1/timetable", `{"week":1,"day":"MON","period":1,"subject":"Math_4"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), `"collides_with":"Eng_3"`)

	s.timetable.commitErr = appErrors.ErrDuplicateSlot
	rec = s.do(jsonRequest(http.MethodPost, "/api/v1/timetable", `{"week":1,"day":"MON","period":1,"subject":"Math_4","force":true}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_SLOT", decode(t, rec).Error.Code)
}

func TestTimetableDeleteAndCheck(t *testing.T) {
	s := newTestServer()

	rec := s.do(jsonRequest(http.MethodDelete, "/api/v1/timetable", `{"week":1,"day":"MON","period":1,"subject":"Math_4"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Math_4", s.timetable.lastDelete.Subject)
	assert.JSONEq(t, `{"removed":1}`, string(decode(t, rec).Data))

	rec = s.do(jsonRequest(http.MethodPost, "/api/v1/timetable/check", `{"week":1,"day":"MON","period":1,"subject":"Math_4"}`))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/period-times", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStudentScheduleRoutes(t *testing.T) {
	s := newTestServer()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10101/schedule?week=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10101", s.schedules.lastID)
	assert.Equal(t, 1, *s.schedules.lastWeek)

	s.schedules.resolveErr = appErrors.ErrStudentExempt
	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10201/schedule", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "STUDENT_EXEMPT", decode(t, rec).Error.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10101/schedule/grid", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStudentScheduleExport(t *testing.T) {
	s := newTestServer()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10101/schedule/export?format=pdf", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatPDF, s.schedules.lastFormat)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schedule_10101_all.pdf")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10101/schedule/export", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatCSV, s.schedules.lastFormat)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10101/schedule/export?format=docx", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentScheduleExportQuotedID(t *testing.T) {
	s := newTestServer()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/students/10%2201/schedule/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `10"01`, s.schedules.lastID)

	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, `schedule_10"01_all.csv`, params["filename"])
}

func TestTeacherRoutes(t *testing.T) {
	s := newTestServer()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/teachers/Kim/schedule", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kim", s.schedules.lastTeacher)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/teachers/Choi/schedule/grid?week=2", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Choi", s.schedules.lastTeacher)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/teachers/Kim/subjects/Math_4/students", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Math_4", s.schedules.lastSubject)
	assert.Equal(t, float64(1), decode(t, rec).Meta["count"])
}

func TestAdminGuardOnlyOnMutations(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	}
	s := newTestServer(deny)

	assert.Equal(t, http.StatusForbidden, s.do(jsonRequest(http.MethodPost, "/api/v1/timetable", `{}`)).Code)
	assert.Equal(t, http.StatusForbidden, s.do(jsonRequest(http.MethodDelete, "/api/v1/timetable", `{}`)).Code)
	assert.Equal(t, http.StatusForbidden, s.do(jsonRequest(http.MethodPut, "/api/v1/period-times", `{}`)).Code)
	assert.Equal(t, http.StatusForbidden, s.do(httptest.NewRequest(http.MethodDelete, "/api/v1/assignments/a1", nil)).Code)
	assert.Equal(t, http.StatusForbidden, s.do(httptest.NewRequest(http.MethodPost, "/api/v1/roster/import", nil)).Code)

	assert.Equal(t, http.StatusOK, s.do(httptest.NewRequest(http.MethodGet, "/api/v1/timetable", nil)).Code)
	assert.Equal(t, http.StatusOK, s.do(jsonRequest(http.MethodPost, "/api/v1/timetable/check", `{"week":1,"day":"MON","period":1,"subject":"Math_4"}`)).Code)
}

func TestReadyReportsFailingProbe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, map[string]Probe{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"connection refused"`)
	assert.Contains(t, rec.Body.String(), `"postgres":"ok"`)
}
