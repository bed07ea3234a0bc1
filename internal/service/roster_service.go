package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/timetable"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

type studentStore interface {
	studentLister
	ReplaceAll(ctx context.Context, students []models.Student) error
}

// RosterReader turns an uploaded spreadsheet into raw roster rows.
type RosterReader func(r io.Reader) ([]models.RawStudentRecord, error)

// RosterService imports and summarises the remedial roster.
type RosterService struct {
	students    studentStore
	read        RosterReader
	cache       *CacheService
	maxFileSize int64
	logger      *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(students studentStore, read RosterReader, cache *CacheService, maxFileSize int64, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{students: students, read: read, cache: cache, maxFileSize: maxFileSize, logger: logger}
}

// Import replaces the roster with the rows of an uploaded workbook. Shape
// issues are logged and returned but never abort the import.
func (s *RosterService) Import(ctx context.Context, r io.Reader, size int64) (*dto.RosterImportResponse, error) {
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("roster file exceeds %d bytes", s.maxFileSize))
	}

	records, err := s.read(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "roster has no student rows")
	}

	students, issues := timetable.NormalizeRoster(records)
	for _, issue := range issues {
		s.logger.Warn("roster data shape issue",
			zap.Int("row", issue.Row),
			zap.String("student_id", issue.StudentID),
			zap.String("field", issue.Field),
			zap.String("value", issue.Value),
			zap.String("reason", issue.Reason),
		)
	}

	if err := s.students.ReplaceAll(ctx, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store roster")
	}
	s.cache.InvalidateSchedules(ctx)

	exempt := 0
	for _, st := range students {
		if st.Exempt {
			exempt++
		}
	}
	s.logger.Info("roster imported", zap.Int("students", len(students)), zap.Int("exempt", exempt), zap.Int("issues", len(issues)))

	if issues == nil {
		issues = []timetable.DataShapeIssue{}
	}
	return &dto.RosterImportResponse{Imported: len(students), Exempt: exempt, Issues: issues}, nil
}

// Subjects lists the distinct subjects required by non-exempt students.
func (s *RosterService) Subjects(ctx context.Context) ([]string, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Subjects(), nil
}

// Classes lists the distinct class keys present on the roster.
func (s *RosterService) Classes(ctx context.Context) ([]string, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Classes(), nil
}

func (s *RosterService) engine(ctx context.Context) (*timetable.Engine, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	return timetable.NewEngine(timetable.Snapshot{Students: students}), nil
}
