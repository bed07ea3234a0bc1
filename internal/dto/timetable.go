package dto

import (
	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// SlotKeyRequest addresses one placement on the master timetable.
type SlotKeyRequest struct {
	Week    int    `json:"week" validate:"required,min=1"`
	Day     string `json:"day" validate:"required"`
	Period  int    `json:"period" validate:"required,min=1"`
	Subject string `json:"subject" validate:"required,max=128"`
}

// Key converts the request into a slot key; the day accepts MON or 월 style names.
func (r SlotKeyRequest) Key() (models.SlotKey, error) {
	day, err := models.ParseWeekday(r.Day)
	if err != nil {
		return models.SlotKey{}, err
	}
	return models.SlotKey{Week: r.Week, Day: day, Period: r.Period, SubjectID: r.Subject}, nil
}

// SlotRequest describes a candidate placement.
type SlotRequest struct {
	SlotKeyRequest
	DateLabel string `json:"date_label" validate:"max=64"`
}

// CommitSlotRequest places a slot; Force skips the conflict gate.
type CommitSlotRequest struct {
	SlotRequest
	Force bool `json:"force"`
}

// ConflictCheckResponse is the advisory result of a placement check.
type ConflictCheckResponse struct {
	Slot         models.SlotKey              `json:"slot"`
	HasConflicts bool                        `json:"has_conflicts"`
	Conflicts    []models.ConflictDescriptor `json:"conflicts"`
}

// CommitSlotResponse reports the stored slot and any conflicts accepted with it.
type CommitSlotResponse struct {
	Slot      models.TimetableSlot        `json:"slot"`
	Forced    bool                        `json:"forced"`
	Conflicts []models.ConflictDescriptor `json:"conflicts"`
}

// DeleteSlotResponse reports how many stored slots matched.
type DeleteSlotResponse struct {
	Removed int64 `json:"removed"`
}

// PeriodTimeItem labels a single period.
type PeriodTimeItem struct {
	Period int    `json:"period" validate:"required,min=1"`
	Label  string `json:"label" validate:"required,max=64"`
}

// ReplacePeriodTimesRequest replaces every stored period label.
type ReplacePeriodTimesRequest struct {
	Periods []PeriodTimeItem `json:"periods" validate:"required,min=1,dive"`
}
