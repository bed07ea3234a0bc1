package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-remedial-api/internal/dto"
	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/repository"
	"github.com/noah-isme/sma-remedial-api/internal/timetable"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

type timetableSlotRepo interface {
	slotLister
	Insert(ctx context.Context, slot *models.TimetableSlot) error
	DeleteByKey(ctx context.Context, key models.SlotKey) (int64, error)
}

type periodTimeLister interface {
	List(ctx context.Context) ([]models.PeriodTime, error)
}

type periodTimeRepo interface {
	periodTimeLister
	ReplaceAll(ctx context.Context, times []models.PeriodTime) error
}

// TimetableService edits the master timetable. Placements go through a
// check step that reports conflicts and a commit step that stores the slot.
// Writes are serialized within the process.
type TimetableService struct {
	slots     timetableSlotRepo
	periods   periodTimeRepo
	loader    *SnapshotLoader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	mu sync.Mutex
}

// NewTimetableService constructs the service.
func NewTimetableService(
	slots timetableSlotRepo,
	periods periodTimeRepo,
	loader *SnapshotLoader,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		slots:     slots,
		periods:   periods,
		loader:    loader,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns the slots of week, or every slot when week is nil, in insertion order.
func (s *TimetableService) List(ctx context.Context, week *int) ([]models.TimetableSlot, error) {
	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}
	return timetable.NewMasterTimetable(slots, s.loader.MaxPeriod()).SlotsForWeek(week), nil
}

// Check reports the students who would attend two subjects at once if the
// candidate were placed. It never changes the timetable.
func (s *TimetableService) Check(ctx context.Context, req dto.SlotRequest) (*dto.ConflictCheckResponse, error) {
	slot, err := s.slotFromRequest(req)
	if err != nil {
		return nil, err
	}
	engine, err := s.loader.Engine(ctx)
	if err != nil {
		return nil, err
	}
	if err := engine.Master().Validate(slot); err != nil {
		return nil, err
	}

	conflicts := engine.CheckConflicts(slot.Key())
	s.metrics.RecordConflicts(len(conflicts))
	if len(conflicts) > 0 {
		s.logger.Info("placement conflicts detected", zap.Stringer("slot", slot.Key()), zap.Int("conflicts", len(conflicts)))
	}
	return &dto.ConflictCheckResponse{Slot: slot.Key(), HasConflicts: len(conflicts) > 0, Conflicts: conflicts}, nil
}

// Commit stores the candidate. Unless forced, any conflict rejects it with
// CONFLICT and the descriptors attached. A repeated key always fails with
// DUPLICATE_SLOT.
func (s *TimetableService) Commit(ctx context.Context, req dto.CommitSlotRequest) (*dto.CommitSlotResponse, error) {
	slot, err := s.slotFromRequest(req.SlotRequest)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := s.loader.Engine(ctx)
	if err != nil {
		return nil, err
	}
	master := engine.Master()
	if err := master.Validate(slot); err != nil {
		return nil, err
	}
	if master.Contains(slot.Key()) {
		return nil, appErrors.Clone(appErrors.ErrDuplicateSlot, fmt.Sprintf("%s is already scheduled", slot.Key()))
	}

	conflicts := engine.CheckConflicts(slot.Key())
	s.metrics.RecordConflicts(len(conflicts))
	if len(conflicts) > 0 && !req.Force {
		msg := fmt.Sprintf("%d student(s) would attend two subjects at once", len(conflicts))
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrConflict, msg), conflicts)
	}

	if err := master.Insert(slot); err != nil {
		return nil, err
	}
	if err := s.slots.Insert(ctx, &slot); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateSlot, fmt.Sprintf("%s is already scheduled", slot.Key()))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable slot")
	}
	s.cache.InvalidateSchedules(ctx)

	fields := []zap.Field{zap.String("slot_id", slot.ID), zap.Stringer("slot", slot.Key())}
	if len(conflicts) > 0 {
		s.logger.Warn("slot placed despite conflicts", append(fields, zap.Int("conflicts", len(conflicts)))...)
	} else {
		s.logger.Info("slot placed", fields...)
	}
	return &dto.CommitSlotResponse{Slot: slot, Forced: req.Force && len(conflicts) > 0, Conflicts: conflicts}, nil
}

// Delete removes every slot with the key. Removing nothing is not an error.
func (s *TimetableService) Delete(ctx context.Context, req dto.SlotKeyRequest) (*dto.DeleteSlotResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	key, err := req.Key()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.slots.DeleteByKey(ctx, key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable slot")
	}
	if removed > 0 {
		s.cache.InvalidateSchedules(ctx)
		s.logger.Info("slot removed", zap.Stringer("slot", key), zap.Int64("removed", removed))
	}
	return &dto.DeleteSlotResponse{Removed: removed}, nil
}

// PeriodTimes returns stored period labels, or the defaults when none are stored.
func (s *TimetableService) PeriodTimes(ctx context.Context) ([]models.PeriodTime, error) {
	return loadPeriodTimes(ctx, s.periods)
}

// ReplacePeriodTimes overwrites every period label.
func (s *TimetableService) ReplacePeriodTimes(ctx context.Context, req dto.ReplacePeriodTimesRequest) ([]models.PeriodTime, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period times payload")
	}

	maxPeriod := s.loader.MaxPeriod()
	seen := make(map[int]struct{}, len(req.Periods))
	times := make([]models.PeriodTime, 0, len(req.Periods))
	for _, item := range req.Periods {
		if item.Period > maxPeriod {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("period must be between 1 and %d, got %d", maxPeriod, item.Period))
		}
		if _, dup := seen[item.Period]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("period %d listed twice", item.Period))
		}
		seen[item.Period] = struct{}{}
		times = append(times, models.PeriodTime{Period: item.Period, Label: strings.TrimSpace(item.Label)})
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Period < times[j].Period })

	if err := s.periods.ReplaceAll(ctx, times); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store period times")
	}
	return times, nil
}

func (s *TimetableService) slotFromRequest(req dto.SlotRequest) (models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.TimetableSlot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	key, err := req.Key()
	if err != nil {
		return models.TimetableSlot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return models.TimetableSlot{
		Week:      key.Week,
		DateLabel: strings.TrimSpace(req.DateLabel),
		Day:       key.Day,
		Period:    key.Period,
		SubjectID: strings.TrimSpace(key.SubjectID),
	}, nil
}

func loadPeriodTimes(ctx context.Context, periods periodTimeLister) ([]models.PeriodTime, error) {
	times, err := periods.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load period times")
	}
	if len(times) == 0 {
		return models.DefaultPeriodTimes(), nil
	}
	return times, nil
}
