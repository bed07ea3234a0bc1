package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/timetable"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

type teacherAssignmentRepo interface {
	assignmentLister
	Create(ctx context.Context, assignment *models.TeacherAssignment) error
	Delete(ctx context.Context, id string) (bool, error)
}

// TeacherAssignmentService manages which teacher covers which subject in which classes.
type TeacherAssignmentService struct {
	assignments teacherAssignmentRepo
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherAssignmentService creates a service instance.
func NewTeacherAssignmentService(assignments teacherAssignmentRepo, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherAssignmentService{assignments: assignments, cache: cache, validator: validate, logger: logger}
}

// List returns assignments in the order they are matched.
func (s *TeacherAssignmentService) List(ctx context.Context) ([]models.TeacherAssignment, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher assignments")
	}
	if assignments == nil {
		assignments = []models.TeacherAssignment{}
	}
	return assignments, nil
}

// Assign appends an assignment. Earlier assignments keep precedence when
// class sets overlap.
func (s *TeacherAssignmentService) Assign(ctx context.Context, req dto.CreateAssignmentRequest) (*models.TeacherAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	raw := append([]string(nil), req.Classes...)
	raw = append(raw, timetable.ParseClassList(req.ClassList)...)
	classes := timetable.NormalizeClasses(raw)
	if len(classes) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one class is required")
	}

	assignment := &models.TeacherAssignment{
		SubjectID:   strings.TrimSpace(req.Subject),
		TeacherName: strings.TrimSpace(req.Teacher),
		Classes:     classes,
		Room:        strings.TrimSpace(req.Room),
	}
	if assignment.SubjectID == "" || assignment.TeacherName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject and teacher must not be blank")
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher assignment")
	}
	s.cache.InvalidateSchedules(ctx)

	s.logger.Info("teacher assigned",
		zap.String("assignment_id", assignment.ID),
		zap.String("subject", assignment.SubjectID),
		zap.String("teacher", assignment.TeacherName),
		zap.Strings("classes", assignment.Classes),
	)
	return assignment, nil
}

// Remove deletes an assignment by id.
func (s *TeacherAssignmentService) Remove(ctx context.Context, id string) error {
	removed, err := s.assignments.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher assignment")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrAssignmentNotFound, fmt.Sprintf("teacher assignment %s not found", id))
	}
	s.cache.InvalidateSchedules(ctx)
	s.logger.Info("teacher assignment removed", zap.String("assignment_id", id))
	return nil
}
