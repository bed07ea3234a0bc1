package models

import (
	"fmt"
	"time"
)

// TimetableSlot places a subject at a week/day/period of the master timetable.
type TimetableSlot struct {
	ID        string    `db:"id" json:"id"`
	Week      int       `db:"week" json:"week"`
	DateLabel string    `db:"date_label" json:"date_label,omitempty"`
	Day       Weekday   `db:"day" json:"day"`
	Period    int       `db:"period" json:"period"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Key returns the uniqueness key of the slot.
func (s TimetableSlot) Key() SlotKey {
	return SlotKey{Week: s.Week, Day: s.Day, Period: s.Period, SubjectID: s.SubjectID}
}

// SlotKey identifies a slot; the date label is deliberately not part of it.
type SlotKey struct {
	Week      int     `json:"week"`
	Day       Weekday `json:"day"`
	Period    int     `json:"period"`
	SubjectID string  `json:"subject_id"`
}

func (k SlotKey) String() string {
	return fmt.Sprintf("week %d %s P%d %s", k.Week, k.Day, k.Period, k.SubjectID)
}

// PeriodTime maps a period number to its display time range.
type PeriodTime struct {
	Period int    `db:"period" json:"period"`
	Label  string `db:"label" json:"label"`
}

// DefaultPeriodTimes is used when no period times have been stored.
func DefaultPeriodTimes() []PeriodTime {
	return []PeriodTime{
		{Period: 1, Label: "09:00-09:50"},
		{Period: 2, Label: "10:00-10:50"},
		{Period: 3, Label: "11:00-11:50"},
		{Period: 4, Label: "12:00-12:50"},
		{Period: 5, Label: "13:50-14:40"},
		{Period: 6, Label: "14:50-15:40"},
		{Period: 7, Label: "15:50-16:40"},
	}
}

// PeriodLabels indexes period times by period number.
func PeriodLabels(times []PeriodTime) map[int]string {
	labels := make(map[int]string, len(times))
	for _, t := range times {
		labels[t.Period] = t.Label
	}
	return labels
}
