package timetable

import (
	"fmt"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// DetectConflicts lists the non-exempt students who require candidate's
// subject and also one of the other subjects already placed at the same
// week, day and period. Only the first colliding subject is reported per
// student. An empty result means the placement is safe; the check never
// blocks an insert on its own.
func DetectConflicts(students []models.Student, master *MasterTimetable, candidate models.SlotKey) []models.ConflictDescriptor {
	var others []string
	for _, subject := range master.SubjectsAt(candidate.Week, candidate.Day, candidate.Period) {
		if subject != candidate.SubjectID {
			others = append(others, subject)
		}
	}
	if len(others) == 0 {
		return []models.ConflictDescriptor{}
	}

	conflicts := []models.ConflictDescriptor{}
	for _, student := range students {
		if student.Exempt || !student.Requires(candidate.SubjectID) {
			continue
		}
		for _, other := range others {
			if !student.Requires(other) {
				continue
			}
			conflicts = append(conflicts, models.ConflictDescriptor{
				StudentID:    student.ID,
				StudentName:  student.Name,
				SubjectID:    candidate.SubjectID,
				CollidesWith: other,
				Message:      fmt.Sprintf("%s(%s) - collides with %s", student.Name, student.ID, other),
			})
			break
		}
	}
	return conflicts
}
