package models

import "time"

// TeacherAssignment states that a teacher covers a subject for a set of class-sections.
type TeacherAssignment struct {
	ID          string    `db:"id" json:"id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Classes     []string  `db:"-" json:"classes"`
	Room        string    `db:"room" json:"room"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Covers reports whether classKey is one of the eligible class-sections.
func (a TeacherAssignment) Covers(classKey string) bool {
	for _, class := range a.Classes {
		if class == classKey {
			return true
		}
	}
	return false
}
