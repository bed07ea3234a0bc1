package models

import "strings"

// RawStudentRecord is one roster row exactly as it arrives from an import.
type RawStudentRecord struct {
	Row       int    `json:"row"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Subjects  string `json:"subjects"`
	Exemption string `json:"exemption"`
	Note      string `json:"note,omitempty"`
}

// Student is a normalized roster member requiring remedial instruction.
type Student struct {
	ID               string   `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	Grade            string   `db:"grade" json:"grade"`
	Section          string   `db:"section" json:"section"`
	Number           string   `db:"number" json:"number"`
	RequiredSubjects []string `db:"-" json:"required_subjects"`
	Exempt           bool     `db:"exempt" json:"exempt"`
	Note             string   `db:"note" json:"note,omitempty"`
}

// ClassKey returns the "<grade>-<section>" label used by teacher assignments.
func (s Student) ClassKey() string {
	return ClassKey(s.Grade, s.Section)
}

// Requires reports whether subjectID is in the student's required set.
func (s Student) Requires(subjectID string) bool {
	for _, subject := range s.RequiredSubjects {
		if subject == subjectID {
			return true
		}
	}
	return false
}

// RosterEntry is the audience view of a student for a teacher.
type RosterEntry struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Grade     string `json:"grade"`
	Section   string `json:"section"`
	Number    string `json:"number"`
}

// ClassKey builds a class-section label with leading zeros stripped from both parts.
func ClassKey(grade, section string) string {
	return trimZeros(grade) + "-" + trimZeros(section)
}

// NormalizeClassKey rewrites a free-text "<grade>-<section>" label into ClassKey form.
// Labels without a dash are returned trimmed.
func NormalizeClassKey(label string) string {
	label = strings.TrimSpace(label)
	grade, section, ok := strings.Cut(label, "-")
	if !ok {
		return label
	}
	return ClassKey(strings.TrimSpace(grade), strings.TrimSpace(section))
}

func trimZeros(part string) string {
	trimmed := strings.TrimLeft(part, "0")
	if trimmed == "" && part != "" {
		return "0"
	}
	return trimmed
}
