package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/timetable"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type assignmentLister interface {
	List(ctx context.Context) ([]models.TeacherAssignment, error)
}

type slotLister interface {
	List(ctx context.Context) ([]models.TimetableSlot, error)
}

// SnapshotLoader reads the three collections an engine operation needs.
type SnapshotLoader struct {
	students    studentLister
	assignments assignmentLister
	slots       slotLister
	maxPeriod   int
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewSnapshotLoader constructs a loader.
func NewSnapshotLoader(students studentLister, assignments assignmentLister, slots slotLister, maxPeriod int, metrics *MetricsService, logger *zap.Logger) *SnapshotLoader {
	if maxPeriod <= 0 {
		maxPeriod = timetable.DefaultMaxPeriod
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotLoader{
		students:    students,
		assignments: assignments,
		slots:       slots,
		maxPeriod:   maxPeriod,
		metrics:     metrics,
		logger:      logger,
	}
}

// MaxPeriod returns the configured last period.
func (l *SnapshotLoader) MaxPeriod() int {
	return l.maxPeriod
}

// Load reads a fresh snapshot.
func (l *SnapshotLoader) Load(ctx context.Context) (timetable.Snapshot, error) {
	start := time.Now()
	defer func() { l.metrics.ObserveSnapshotLoad(time.Since(start)) }()

	students, err := l.students.List(ctx)
	if err != nil {
		return timetable.Snapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	assignments, err := l.assignments.List(ctx)
	if err != nil {
		return timetable.Snapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher assignments")
	}
	slots, err := l.slots.List(ctx)
	if err != nil {
		return timetable.Snapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}

	l.logger.Debug("snapshot loaded",
		zap.Int("students", len(students)),
		zap.Int("assignments", len(assignments)),
		zap.Int("slots", len(slots)),
	)
	return timetable.Snapshot{Students: students, Assignments: assignments, Slots: slots, MaxPeriod: l.maxPeriod}, nil
}

// Engine loads a snapshot and builds an engine over it.
func (l *SnapshotLoader) Engine(ctx context.Context) (*timetable.Engine, error) {
	snapshot, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return timetable.NewEngine(snapshot), nil
}
