package timetable

import (
	"fmt"
	"sort"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

// TeacherSchedule lists the slots of every subject the teacher is assigned,
// with the room from the teacher's first assignment of that subject.
func (e *Engine) TeacherSchedule(teacher string, week *int) ([]models.TeacherScheduleEntry, error) {
	assignments := e.index.ForTeacher(teacher)
	if len(assignments) == 0 {
		return nil, appErrors.Clone(appErrors.ErrAssignmentNotFound, fmt.Sprintf("no assignments for teacher %s", teacher))
	}
	rooms := make(map[string]string)
	for _, a := range assignments {
		if _, seen := rooms[a.SubjectID]; !seen {
			rooms[a.SubjectID] = a.Room
		}
	}

	entries := []models.TeacherScheduleEntry{}
	for _, slot := range e.master.SlotsForWeek(week) {
		room, ok := rooms[slot.SubjectID]
		if !ok {
			continue
		}
		entries = append(entries, models.TeacherScheduleEntry{
			Week:      slot.Week,
			DateLabel: slot.DateLabel,
			Day:       slot.Day,
			Period:    slot.Period,
			SubjectID: slot.SubjectID,
			Room:      room,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return slotLess(entries[i].Week, entries[i].Day, entries[i].Period, entries[j].Week, entries[j].Day, entries[j].Period)
	})
	return entries, nil
}

// Audience returns the non-exempt students a teacher's offering of subject
// is for: their class is in one of the teacher's class sets for the subject
// and they require it. Students are returned in roster order.
func (e *Engine) Audience(teacher, subject string) ([]models.RosterEntry, error) {
	classes := make(map[string]struct{})
	found := false
	for _, a := range e.index.EligibleAssignments(subject) {
		if a.TeacherName != teacher {
			continue
		}
		found = true
		for _, class := range a.Classes {
			classes[class] = struct{}{}
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrAssignmentNotFound, fmt.Sprintf("teacher %s is not assigned to %s", teacher, subject))
	}

	roster := []models.RosterEntry{}
	for _, s := range e.students {
		if s.Exempt || !s.Requires(subject) {
			continue
		}
		if _, ok := classes[s.ClassKey()]; !ok {
			continue
		}
		roster = append(roster, models.RosterEntry{
			StudentID: s.ID,
			Name:      s.Name,
			Grade:     s.Grade,
			Section:   s.Section,
			Number:    s.Number,
		})
	}
	return roster, nil
}
