package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

func conflictRoster() []models.Student {
	return []models.Student{
		student("10101", "Ahn", "Math_4", "Eng_3"),
		student("10102", "Baek", "Math_4"),
		exempt(student("10103", "Cho", "Math_4", "Eng_3")),
		student("10201", "Do", "Math_4", "Sci_2", "Eng_3"),
		student("10202", "Eom", "Eng_3"),
	}
}

func TestDetectConflictsReportsFirstCollisionPerStudent(t *testing.T) {
	master := NewMasterTimetable([]models.TimetableSlot{
		slot(1, models.Monday, 1, "Eng_3"),
		slot(1, models.Monday, 1, "Sci_2"),
		slot(2, models.Monday, 1, "Art_1"),
	}, 7)

	conflicts := DetectConflicts(conflictRoster(), master, models.SlotKey{Week: 1, Day: models.Monday, Period: 1, SubjectID: "Math_4"})

	require.Len(t, conflicts, 2)
	assert.Equal(t, "10101", conflicts[0].StudentID)
	assert.Equal(t, "Eng_3", conflicts[0].CollidesWith)
	assert.Equal(t, "Ahn(10101) - collides with Eng_3", conflicts[0].Message)
	assert.Equal(t, "10201", conflicts[1].StudentID)
	assert.Equal(t, "Eng_3", conflicts[1].CollidesWith)
	for _, c := range conflicts {
		assert.NotEqual(t, "10103", c.StudentID)
	}
}

func TestDetectConflictsEmptySlot(t *testing.T) {
	master := NewMasterTimetable([]models.TimetableSlot{
		slot(1, models.Monday, 1, "Math_4"),
		slot(2, models.Monday, 1, "Eng_3"),
		slot(1, models.Tuesday, 1, "Eng_3"),
	}, 7)

	conflicts := DetectConflicts(conflictRoster(), master, models.SlotKey{Week: 1, Day: models.Monday, Period: 1, SubjectID: "Math_4"})
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestDetectConflictsIsSymmetric(t *testing.T) {
	roster := conflictRoster()
	x := models.SlotKey{Week: 1, Day: models.Wednesday, Period: 3}

	withEnglish := NewMasterTimetable([]models.TimetableSlot{slot(1, models.Wednesday, 3, "Eng_3")}, 7)
	mathFirst := x
	mathFirst.SubjectID = "Math_4"
	forward := DetectConflicts(roster, withEnglish, mathFirst)

	withMath := NewMasterTimetable([]models.TimetableSlot{slot(1, models.Wednesday, 3, "Math_4")}, 7)
	englishFirst := x
	englishFirst.SubjectID = "Eng_3"
	backward := DetectConflicts(roster, withMath, englishFirst)

	require.Len(t, forward, len(backward))
	for i := range forward {
		assert.Equal(t, forward[i].StudentID, backward[i].StudentID)
		assert.Equal(t, "Eng_3", forward[i].CollidesWith)
		assert.Equal(t, "Math_4", backward[i].CollidesWith)
	}
	assert.Len(t, forward, 2)
}

func TestDetectConflictsSkipsExemptStudents(t *testing.T) {
	roster := []models.Student{exempt(student("10101", "Ahn", "Math_4", "Eng_3"))}
	master := NewMasterTimetable([]models.TimetableSlot{slot(1, models.Monday, 1, "Eng_3")}, 7)

	conflicts := DetectConflicts(roster, master, models.SlotKey{Week: 1, Day: models.Monday, Period: 1, SubjectID: "Math_4"})
	assert.Empty(t, conflicts)
}
