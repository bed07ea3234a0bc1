package timetable

import (
	"fmt"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

// DefaultMaxPeriod is the number of teaching periods per day.
const DefaultMaxPeriod = 7

// MasterTimetable is the ordered set of committed slots. It owns the
// (week, day, period, subject) uniqueness invariant. Slots are never edited
// in place; a change is a Delete followed by an Insert.
type MasterTimetable struct {
	slots     []models.TimetableSlot
	maxPeriod int
}

// NewMasterTimetable wraps previously committed slots. maxPeriod <= 0 selects DefaultMaxPeriod.
func NewMasterTimetable(slots []models.TimetableSlot, maxPeriod int) *MasterTimetable {
	if maxPeriod <= 0 {
		maxPeriod = DefaultMaxPeriod
	}
	cp := make([]models.TimetableSlot, len(slots))
	copy(cp, slots)
	return &MasterTimetable{slots: cp, maxPeriod: maxPeriod}
}

// MaxPeriod returns the last valid period number.
func (m *MasterTimetable) MaxPeriod() int {
	return m.maxPeriod
}

// Validate checks the slot's week, day, period and subject without touching state.
func (m *MasterTimetable) Validate(slot models.TimetableSlot) error {
	switch {
	case slot.Week < 1:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("week must be positive, got %d", slot.Week))
	case !slot.Day.Valid():
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", slot.Day))
	case slot.Period < 1 || slot.Period > m.maxPeriod:
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("period must be between 1 and %d, got %d", m.maxPeriod, slot.Period))
	case slot.SubjectID == "":
		return appErrors.Clone(appErrors.ErrValidation, "subject is required")
	}
	return nil
}

// Contains reports whether a slot with the given key exists.
func (m *MasterTimetable) Contains(key models.SlotKey) bool {
	for _, s := range m.slots {
		if s.Key() == key {
			return true
		}
	}
	return false
}

// Insert appends slot, failing with ErrDuplicateSlot when its key already exists.
func (m *MasterTimetable) Insert(slot models.TimetableSlot) error {
	if err := m.Validate(slot); err != nil {
		return err
	}
	if m.Contains(slot.Key()) {
		return appErrors.Clone(appErrors.ErrDuplicateSlot, fmt.Sprintf("%s is already scheduled", slot.Key()))
	}
	m.slots = append(m.slots, slot)
	return nil
}

// Delete removes every slot matching key and returns how many were removed.
// Date labels are ignored; removing nothing is not an error.
func (m *MasterTimetable) Delete(key models.SlotKey) int {
	kept := m.slots[:0]
	removed := 0
	for _, s := range m.slots {
		if s.Key() == key {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.slots = kept
	return removed
}

// SlotsForWeek returns slots of the given week, or all slots when week is nil.
func (m *MasterTimetable) SlotsForWeek(week *int) []models.TimetableSlot {
	out := make([]models.TimetableSlot, 0, len(m.slots))
	for _, s := range m.slots {
		if week != nil && s.Week != *week {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SubjectsAt lists the distinct subjects occupying (week, day, period) in timetable order.
func (m *MasterTimetable) SubjectsAt(week int, day models.Weekday, period int) []string {
	var subjects []string
	seen := make(map[string]struct{})
	for _, s := range m.slots {
		if s.Week != week || s.Day != day || s.Period != period {
			continue
		}
		if _, dup := seen[s.SubjectID]; dup {
			continue
		}
		seen[s.SubjectID] = struct{}{}
		subjects = append(subjects, s.SubjectID)
	}
	return subjects
}
