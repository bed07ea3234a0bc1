package timetable

import (
	"sort"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// Snapshot is the caller-owned set of collections one operation works on.
type Snapshot struct {
	Students    []models.Student
	Assignments []models.TeacherAssignment
	Slots       []models.TimetableSlot
	MaxPeriod   int
}

// Engine joins a Snapshot's students, assignments and slots. It is cheap to
// build and is meant to live for a single operation.
type Engine struct {
	students []models.Student
	byID     map[string]int
	index    *AssignmentIndex
	master   *MasterTimetable
}

// NewEngine builds the lookups for snapshot. When the roster repeats an
// identifier the first row is used.
func NewEngine(snapshot Snapshot) *Engine {
	e := &Engine{
		students: snapshot.Students,
		byID:     make(map[string]int, len(snapshot.Students)),
		index:    NewAssignmentIndex(snapshot.Assignments),
		master:   NewMasterTimetable(snapshot.Slots, snapshot.MaxPeriod),
	}
	for i, s := range snapshot.Students {
		if _, dup := e.byID[s.ID]; !dup {
			e.byID[s.ID] = i
		}
	}
	return e
}

// Master exposes the master timetable for insert and delete.
func (e *Engine) Master() *MasterTimetable {
	return e.master
}

// Assignments exposes the assignment index.
func (e *Engine) Assignments() *AssignmentIndex {
	return e.index
}

// Student looks a student up by identifier.
func (e *Engine) Student(id string) (models.Student, bool) {
	i, ok := e.byID[id]
	if !ok {
		return models.Student{}, false
	}
	return e.students[i], true
}

// CheckConflicts runs DetectConflicts against the engine's roster and timetable.
func (e *Engine) CheckConflicts(candidate models.SlotKey) []models.ConflictDescriptor {
	return DetectConflicts(e.students, e.master, candidate)
}

// Subjects returns every distinct required subject of non-exempt students, sorted.
func (e *Engine) Subjects() []string {
	set := make(map[string]struct{})
	for _, s := range e.students {
		if s.Exempt {
			continue
		}
		for _, subject := range s.RequiredSubjects {
			set[subject] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Classes returns every distinct class key on the roster, sorted.
func (e *Engine) Classes() []string {
	set := make(map[string]struct{})
	for _, s := range e.students {
		if s.Grade == "" {
			continue
		}
		set[s.ClassKey()] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
