package timetable

import "github.com/noah-isme/sma-remedial-api/internal/models"

func intPtr(v int) *int { return &v }

func slot(week int, day models.Weekday, period int, subject string) models.TimetableSlot {
	return models.TimetableSlot{Week: week, Day: day, Period: period, SubjectID: subject}
}

func student(id, name string, subjects ...string) models.Student {
	grade, section, number, _ := ParseStudentID(id)
	return models.Student{ID: id, Name: name, Grade: grade, Section: section, Number: number, RequiredSubjects: subjects}
}

func exempt(s models.Student) models.Student {
	s.Exempt = true
	return s
}
