package timetable

import (
	"fmt"
	"sort"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

// Resolve builds the personal schedule of studentID, limited to week when it
// is non-nil. Unknown, exempt and subject-less students fail with distinct
// errors; a student with no matching slots gets an empty result and a Reason.
func (e *Engine) Resolve(studentID string, week *int) (models.ScheduleResult, error) {
	student, ok := e.Student(studentID)
	if !ok {
		return models.ScheduleResult{}, appErrors.Clone(appErrors.ErrStudentNotFound, fmt.Sprintf("student %s not found", studentID))
	}
	if student.Exempt {
		return models.ScheduleResult{}, appErrors.Clone(appErrors.ErrStudentExempt, fmt.Sprintf("student %s is exempt and has no schedule", studentID))
	}
	if len(student.RequiredSubjects) == 0 {
		return models.ScheduleResult{}, appErrors.Clone(appErrors.ErrNoRequiredSubjects, fmt.Sprintf("student %s has no required subjects", studentID))
	}

	classKey := student.ClassKey()
	entries := []models.PersonalScheduleEntry{}
	for _, slot := range e.master.SlotsForWeek(week) {
		if !student.Requires(slot.SubjectID) {
			continue
		}
		entry := models.PersonalScheduleEntry{
			Week:        slot.Week,
			DateLabel:   slot.DateLabel,
			Day:         slot.Day,
			Period:      slot.Period,
			SubjectID:   slot.SubjectID,
			TeacherName: models.UnassignedTeacher,
		}
		if assignment, ok := e.index.Match(slot.SubjectID, classKey); ok {
			entry.TeacherName = assignment.TeacherName
			entry.Room = assignment.Room
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return slotLess(entries[i].Week, entries[i].Day, entries[i].Period, entries[j].Week, entries[j].Day, entries[j].Period)
	})

	result := models.ScheduleResult{
		StudentID:   student.ID,
		StudentName: student.Name,
		Week:        week,
		Entries:     entries,
	}
	if len(entries) == 0 {
		result.Reason = "no timetable entries for the student's required subjects"
		if week != nil {
			result.Reason = fmt.Sprintf("%s in week %d", result.Reason, *week)
		}
	}
	return result, nil
}

// slotLess orders by week, then weekday, then period.
func slotLess(weekA int, dayA models.Weekday, periodA int, weekB int, dayB models.Weekday, periodB int) bool {
	if weekA != weekB {
		return weekA < weekB
	}
	if dayA.Index() != dayB.Index() {
		return dayA.Index() < dayB.Index()
	}
	return periodA < periodB
}
