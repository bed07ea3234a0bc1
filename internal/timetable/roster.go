package timetable

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// StudentIDLength is the only identifier length that can be decoded.
const StudentIDLength = 5

var (
	subjectPattern   = regexp.MustCompile(`^(.+?)\s*\(\s*(\d+)\s*(?:학점|credits?|units?)?\s*\)$`)
	canonicalSubject = regexp.MustCompile(`^.+_\d+$`)
)

// DataShapeIssue flags a roster value that could only be handled best-effort.
type DataShapeIssue struct {
	Row       int    `json:"row"`
	StudentID string `json:"student_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	Reason    string `json:"reason"`
}

func (i DataShapeIssue) String() string {
	return fmt.Sprintf("row %d (%s) %s=%q: %s", i.Row, i.StudentID, i.Field, i.Value, i.Reason)
}

// ParseStudentID splits a five character identifier into grade, section and
// sequence number. Lengths count runes. Any other length yields ok=false and
// empty parts.
func ParseStudentID(id string) (grade, section, number string, ok bool) {
	runes := []rune(id)
	if len(runes) != StudentIDLength {
		return "", "", "", false
	}
	return string(runes[0:1]), string(runes[1:3]), string(runes[3:5]), true
}

// ParseSubjects turns "국어(4학점), 영어(3학점)" into ["국어_4", "영어_3"].
// Entries already in Name_N form pass through; anything else is kept verbatim.
func ParseSubjects(text string) []string {
	ids, _ := parseSubjectList(text)
	return ids
}

func parseSubjectList(text string) (ids []string, unmatched []string) {
	seen := make(map[string]struct{})
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id := item
		if match := subjectPattern.FindStringSubmatch(item); match != nil {
			id = strings.TrimSpace(match[1]) + "_" + match[2]
		} else if !canonicalSubject.MatchString(item) {
			unmatched = append(unmatched, item)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, unmatched
}

// NormalizeStudent derives the canonical student from a raw roster row.
func NormalizeStudent(raw models.RawStudentRecord) (models.Student, []DataShapeIssue) {
	id := strings.TrimSpace(raw.StudentID)
	student := models.Student{
		ID:     id,
		Name:   strings.TrimSpace(raw.Name),
		Exempt: strings.TrimSpace(raw.Exemption) != "",
		Note:   strings.TrimSpace(raw.Note),
	}

	var issues []DataShapeIssue
	grade, section, number, ok := ParseStudentID(id)
	if ok {
		student.Grade, student.Section, student.Number = grade, section, number
	} else {
		issues = append(issues, DataShapeIssue{
			Row:       raw.Row,
			StudentID: id,
			Field:     "student_id",
			Value:     raw.StudentID,
			Reason:    fmt.Sprintf("expected %d characters, got %d", StudentIDLength, utf8.RuneCountInString(id)),
		})
	}

	subjects, unmatched := parseSubjectList(raw.Subjects)
	student.RequiredSubjects = subjects
	for _, item := range unmatched {
		issues = append(issues, DataShapeIssue{
			Row:       raw.Row,
			StudentID: id,
			Field:     "subjects",
			Value:     item,
			Reason:    "not in Name(N) or Name_N form, kept verbatim",
		})
	}

	return student, issues
}

// NormalizeRoster normalizes every row, collecting issues in row order.
func NormalizeRoster(rows []models.RawStudentRecord) ([]models.Student, []DataShapeIssue) {
	students := make([]models.Student, 0, len(rows))
	var issues []DataShapeIssue
	for _, row := range rows {
		student, rowIssues := NormalizeStudent(row)
		students = append(students, student)
		issues = append(issues, rowIssues...)
	}
	return students, issues
}
