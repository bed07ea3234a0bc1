package models

// UnassignedTeacher marks a schedule entry no teacher assignment covers.
const UnassignedTeacher = "unassigned"

// PersonalScheduleEntry is one timetable slot resolved for one student.
type PersonalScheduleEntry struct {
	Week        int     `json:"week"`
	DateLabel   string  `json:"date_label,omitempty"`
	Day         Weekday `json:"day"`
	Period      int     `json:"period"`
	SubjectID   string  `json:"subject_id"`
	TeacherName string  `json:"teacher_name"`
	Room        string  `json:"room"`
}

// ScheduleResult wraps a resolved schedule; Reason explains an empty one.
type ScheduleResult struct {
	StudentID   string                  `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Week        *int                    `json:"week,omitempty"`
	Entries     []PersonalScheduleEntry `json:"entries"`
	Reason      string                  `json:"reason,omitempty"`
}

// TeacherScheduleEntry is a slot taught by a teacher.
type TeacherScheduleEntry struct {
	Week      int     `json:"week"`
	DateLabel string  `json:"date_label,omitempty"`
	Day       Weekday `json:"day"`
	Period    int     `json:"period"`
	SubjectID string  `json:"subject_id"`
	Room      string  `json:"room"`
}

// ConflictDescriptor reports a student who would attend two subjects at once.
type ConflictDescriptor struct {
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	SubjectID    string `json:"subject_id"`
	CollidesWith string `json:"collides_with"`
	Message      string `json:"message"`
}

// Grid is a period x weekday table of formatted cells. Cells[row][col] holds
// Periods[row] on Days[col]; empty cells are "".
type Grid struct {
	Days         []Weekday      `json:"days"`
	Periods      []int          `json:"periods"`
	PeriodLabels map[int]string `json:"period_labels,omitempty"`
	Cells        [][]string     `json:"cells"`
}

// Cell returns the formatted text at (period, day) or "" when out of range.
func (g Grid) Cell(period int, day Weekday) string {
	col := -1
	for i, d := range g.Days {
		if d == day {
			col = i
			break
		}
	}
	if col < 0 {
		return ""
	}
	for row, p := range g.Periods {
		if p == period {
			return g.Cells[row][col]
		}
	}
	return ""
}
