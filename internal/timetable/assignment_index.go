package timetable

import (
	"strings"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// AssignmentIndex looks up teacher assignments by subject, preserving the
// order they were supplied in. When class sets of several assignments for
// the same subject overlap, the earliest one wins.
type AssignmentIndex struct {
	all       []models.TeacherAssignment
	bySubject map[string][]models.TeacherAssignment
}

// NewAssignmentIndex indexes assignments; class labels are normalized to ClassKey form.
func NewAssignmentIndex(assignments []models.TeacherAssignment) *AssignmentIndex {
	idx := &AssignmentIndex{
		all:       make([]models.TeacherAssignment, 0, len(assignments)),
		bySubject: make(map[string][]models.TeacherAssignment),
	}
	for _, a := range assignments {
		a.Classes = NormalizeClasses(a.Classes)
		idx.all = append(idx.all, a)
		idx.bySubject[a.SubjectID] = append(idx.bySubject[a.SubjectID], a)
	}
	return idx
}

// EligibleAssignments returns the assignments for subjectID in insertion order.
func (i *AssignmentIndex) EligibleAssignments(subjectID string) []models.TeacherAssignment {
	return i.bySubject[subjectID]
}

// Match returns the first assignment of subjectID covering classKey.
func (i *AssignmentIndex) Match(subjectID, classKey string) (models.TeacherAssignment, bool) {
	for _, a := range i.bySubject[subjectID] {
		if a.Covers(classKey) {
			return a, true
		}
	}
	return models.TeacherAssignment{}, false
}

// ForTeacher returns every assignment of the named teacher in insertion order.
func (i *AssignmentIndex) ForTeacher(teacher string) []models.TeacherAssignment {
	var out []models.TeacherAssignment
	for _, a := range i.all {
		if a.TeacherName == teacher {
			out = append(out, a)
		}
	}
	return out
}

// ParseClassList splits delimited class text such as "1-1, 1-02".
func ParseClassList(raw string) []string {
	return NormalizeClasses(strings.Split(raw, ","))
}

// NormalizeClasses trims, normalizes and de-duplicates class labels, dropping empties.
func NormalizeClasses(classes []string) []string {
	out := make([]string, 0, len(classes))
	seen := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		key := models.NormalizeClassKey(class)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
