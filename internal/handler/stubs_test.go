package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/service"
	"github.com/noah-isme/sma-remedial-api/pkg/export"
)

type fakeRosterSrv struct {
	body     []byte
	size     int64
	result   *dto.RosterImportResponse
	err      error
	subjects []string
}

func (f *fakeRosterSrv) Import(_ context.Context, r io.Reader, size int64) (*dto.RosterImportResponse, error) {
	f.body, _ = io.ReadAll(r)
	f.size = size
	return f.result, f.err
}

func (f *fakeRosterSrv) Subjects(context.Context) ([]string, error) { return f.subjects, f.err }
func (f *fakeRosterSrv) Classes(context.Context) ([]string, error)  { return []string{"1-1"}, f.err }

type fakeAssignmentSrv struct {
	lastReq dto.CreateAssignmentRequest
	removed string
	err     error
}

func (f *fakeAssignmentSrv) List(context.Context) ([]models.TeacherAssignment, error) {
	return []models.TeacherAssignment{{ID: "a1"}}, f.err
}

func (f *fakeAssignmentSrv) Assign(_ context.Context, req dto.CreateAssignmentRequest) (*models.TeacherAssignment, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.TeacherAssignment{ID: "a2", SubjectID: req.Subject, TeacherName: req.Teacher}, nil
}

func (f *fakeAssignmentSrv) Remove(_ context.Context, id string) error {
	f.removed = id
	return f.err
}

type fakeTimetableSrv struct {
	lastWeek   *int
	lastCommit dto.CommitSlotRequest
	lastDelete dto.SlotKeyRequest
	commitErr  error
}

func (f *fakeTimetableSrv) List(_ context.Context, week *int) ([]models.TimetableSlot, error) {
	f.lastWeek = week
	return []models.TimetableSlot{{ID: "s1"}}, nil
}

func (f *fakeTimetableSrv) Check(_ context.Context, req dto.SlotRequest) (*dto.ConflictCheckResponse, error) {
	return &dto.ConflictCheckResponse{Conflicts: []models.ConflictDescriptor{}}, nil
}

func (f *fakeTimetableSrv) Commit(_ context.Context, req dto.CommitSlotRequest) (*dto.CommitSlotResponse, error) {
	f.lastCommit = req
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return &dto.CommitSlotResponse{Slot: models.TimetableSlot{ID: "s9"}}, nil
}

func (f *fakeTimetableSrv) Delete(_ context.Context, req dto.SlotKeyRequest) (*dto.DeleteSlotResponse, error) {
	f.lastDelete = req
	return &dto.DeleteSlotResponse{Removed: 1}, nil
}

func (f *fakeTimetableSrv) PeriodTimes(context.Context) ([]models.PeriodTime, error) {
	return models.DefaultPeriodTimes(), nil
}

func (f *fakeTimetableSrv) ReplacePeriodTimes(_ context.Context, req dto.ReplacePeriodTimesRequest) ([]models.PeriodTime, error) {
	return nil, nil
}

type fakeScheduleSrv struct {
	lastID      string
	lastWeek    *int
	lastFormat  export.Format
	resolveErr  error
	lastTeacher string
	lastSubject string
}

func (f *fakeScheduleSrv) Resolve(_ context.Context, id string, week *int) (*models.ScheduleResult, error) {
	f.lastID, f.lastWeek = id, week
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return &models.ScheduleResult{StudentID: id, Entries: []models.PersonalScheduleEntry{}}, nil
}

func (f *fakeScheduleSrv) StudentGrid(_ context.Context, id string, week *int) (*models.Grid, error) {
	f.lastID, f.lastWeek = id, week
	return &models.Grid{}, nil
}

func (f *fakeScheduleSrv) Export(_ context.Context, id string, week *int, format export.Format) (*service.ExportFile, error) {
	f.lastID, f.lastWeek, f.lastFormat = id, week, format
	return &service.ExportFile{Filename: "schedule_" + id + "_all." + string(format), ContentType: format.ContentType(), Body: []byte("x")}, nil
}

func (f *fakeScheduleSrv) TeacherSchedule(_ context.Context, teacher string, week *int) ([]models.TeacherScheduleEntry, error) {
	f.lastTeacher, f.lastWeek = teacher, week
	return []models.TeacherScheduleEntry{}, nil
}

func (f *fakeScheduleSrv) TeacherGrid(_ context.Context, teacher string, week *int) (*models.Grid, error) {
	f.lastTeacher, f.lastWeek = teacher, week
	return &models.Grid{}, nil
}

func (f *fakeScheduleSrv) Audience(_ context.Context, teacher, subject string) ([]models.RosterEntry, error) {
	f.lastTeacher, f.lastSubject = teacher, subject
	return []models.RosterEntry{{StudentID: "10101"}}, nil
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type testServer struct {
	engine      *gin.Engine
	roster      *fakeRosterSrv
	assignments *fakeAssignmentSrv
	timetable   *fakeTimetableSrv
	schedules   *fakeScheduleSrv
}

const testUploadLimit = 1 << 20

func newTestServer(admin ...gin.HandlerFunc) *testServer {
	gin.SetMode(gin.TestMode)
	s := &testServer{
		engine:      gin.New(),
		roster:      &fakeRosterSrv{},
		assignments: &fakeAssignmentSrv{},
		timetable:   &fakeTimetableSrv{},
		schedules:   &fakeScheduleSrv{},
	}
	RegisterRoutes(s.engine.Group("/api/v1"), Handlers{
		Roster:      NewRosterHandler(s.roster, testUploadLimit),
		Assignments: NewAssignmentHandler(s.assignments),
		Timetable:   NewTimetableHandler(s.timetable),
		Schedules:   NewScheduleHandler(s.schedules),
	}, admin...)
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}
