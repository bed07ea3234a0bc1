package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/timetable"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
	"github.com/noah-isme/sma-remedial-api/pkg/export"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered schedule ready to download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ScheduleService answers per-student and per-teacher schedule queries.
type ScheduleService struct {
	loader    *SnapshotLoader
	periods   periodTimeLister
	cache     *CacheService
	metrics   *MetricsService
	renderers map[export.Format]datasetRenderer
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewScheduleService constructs the service with the csv, xlsx and pdf renderers.
func NewScheduleService(loader *SnapshotLoader, periods periodTimeLister, cache *CacheService, metrics *MetricsService, pdfFontPath string, cacheTTL time.Duration, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		loader:  loader,
		periods: periods,
		cache:   cache,
		metrics: metrics,
		renderers: map[export.Format]datasetRenderer{
			export.FormatCSV:  export.NewCSVExporter(),
			export.FormatXLSX: export.NewXLSXExporter(),
			export.FormatPDF:  export.NewPDFExporter(pdfFontPath),
		},
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve returns the personal schedule of a student, served from cache when possible.
func (s *ScheduleService) Resolve(ctx context.Context, studentID string, week *int) (*models.ScheduleResult, error) {
	gen, cacheable := s.cache.ScheduleGeneration(ctx)
	key := ScheduleCacheKey(studentID, week, gen)
	var cached models.ScheduleResult
	if cacheable && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	engine, err := s.loader.Engine(ctx)
	if err != nil {
		s.metrics.RecordResolution(OutcomeError)
		return nil, err
	}
	result, err := engine.Resolve(studentID, week)
	if err != nil {
		s.metrics.RecordResolution(resolutionOutcome(err))
		return nil, err
	}

	if len(result.Entries) == 0 {
		s.metrics.RecordResolution(OutcomeEmpty)
		s.logger.Info("schedule resolved empty", zap.String("student_id", studentID), zap.String("reason", result.Reason))
	} else {
		s.metrics.RecordResolution(OutcomeResolved)
	}
	if cacheable {
		s.cache.Set(ctx, key, result, s.cacheTTL)
	}
	return &result, nil
}

// StudentGrid projects the resolved schedule onto a period x weekday grid.
func (s *ScheduleService) StudentGrid(ctx context.Context, studentID string, week *int) (*models.Grid, error) {
	result, err := s.Resolve(ctx, studentID, week)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, timetable.PersonalGridEntries(result.Entries))
}

// Export renders the student's grid as a downloadable file.
func (s *ScheduleService) Export(ctx context.Context, studentID string, week *int, format export.Format) (*ExportFile, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	result, err := s.Resolve(ctx, studentID, week)
	if err != nil {
		return nil, err
	}
	grid, err := s.project(ctx, timetable.PersonalGridEntries(result.Entries))
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s %s", result.StudentID, result.StudentName)
	suffix := "all"
	if week != nil {
		title = fmt.Sprintf("%s - week %d", title, *week)
		suffix = fmt.Sprintf("week%d", *week)
	}
	body, err := renderer.Render(export.FromGrid(title, *grid))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("schedule_%s_%s.%s", studentID, suffix, format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// TeacherSchedule lists the slots of every subject the teacher is assigned.
func (s *ScheduleService) TeacherSchedule(ctx context.Context, teacher string, week *int) ([]models.TeacherScheduleEntry, error) {
	engine, err := s.loader.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.TeacherSchedule(teacher, week)
}

// TeacherGrid projects the teacher's schedule onto a grid.
func (s *ScheduleService) TeacherGrid(ctx context.Context, teacher string, week *int) (*models.Grid, error) {
	entries, err := s.TeacherSchedule(ctx, teacher, week)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, timetable.TeacherGridEntries(entries))
}

// Audience lists the students a teacher sees for a subject.
func (s *ScheduleService) Audience(ctx context.Context, teacher, subject string) ([]models.RosterEntry, error) {
	engine, err := s.loader.Engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Audience(teacher, subject)
}

func (s *ScheduleService) project(ctx context.Context, entries []timetable.GridEntry) (*models.Grid, error) {
	times, err := loadPeriodTimes(ctx, s.periods)
	if err != nil {
		return nil, err
	}
	grid := timetable.ProjectGrid(entries, s.loader.MaxPeriod(), models.PeriodLabels(times))
	return &grid, nil
}

func resolutionOutcome(err error) string {
	switch {
	case errors.Is(err, appErrors.ErrStudentNotFound):
		return OutcomeNotFound
	case errors.Is(err, appErrors.ErrStudentExempt):
		return OutcomeExempt
	case errors.Is(err, appErrors.ErrNoRequiredSubjects):
		return OutcomeNoSubjects
	default:
		return OutcomeError
	}
}
