package timetable

import (
	"strings"

	"github.com/noah-isme/sma-remedial-api/internal/models"
)

// CellSeparator joins entries sharing a cell so concurrent subjects stay visible.
const CellSeparator = "\n\n"

// GridEntry is one item to place on a grid.
type GridEntry struct {
	Day     models.Weekday
	Period  int
	Subject string
	Labels  []string
}

// Text formats the entry as "Subject" or "Subject\n(label label)".
func (e GridEntry) Text() string {
	var details []string
	for _, l := range e.Labels {
		if l = strings.TrimSpace(l); l != "" {
			details = append(details, l)
		}
	}
	if len(details) == 0 {
		return e.Subject
	}
	return e.Subject + "\n(" + strings.Join(details, " ") + ")"
}

// ProjectGrid pivots entries into a period x weekday grid covering periods
// 1..max(maxPeriod, largest entry period) and all five weekdays. Entries
// landing in the same cell are joined in input order.
func ProjectGrid(entries []GridEntry, maxPeriod int, labels map[int]string) models.Grid {
	if maxPeriod <= 0 {
		maxPeriod = DefaultMaxPeriod
	}
	for _, e := range entries {
		if e.Period > maxPeriod {
			maxPeriod = e.Period
		}
	}

	grid := models.Grid{
		Days:         append([]models.Weekday(nil), models.Weekdays...),
		Periods:      make([]int, maxPeriod),
		PeriodLabels: labels,
		Cells:        make([][]string, maxPeriod),
	}
	for row := range grid.Cells {
		grid.Periods[row] = row + 1
		grid.Cells[row] = make([]string, len(grid.Days))
	}

	for _, e := range entries {
		col := e.Day.Index()
		if col < 0 || e.Period < 1 {
			continue
		}
		cell := &grid.Cells[e.Period-1][col]
		if *cell == "" {
			*cell = e.Text()
			continue
		}
		*cell += CellSeparator + e.Text()
	}
	return grid
}

// PersonalGridEntries labels each entry with its teacher and room, leaving
// out the unassigned marker.
func PersonalGridEntries(entries []models.PersonalScheduleEntry) []GridEntry {
	out := make([]GridEntry, 0, len(entries))
	for _, e := range entries {
		teacher := e.TeacherName
		if teacher == models.UnassignedTeacher {
			teacher = ""
		}
		out = append(out, GridEntry{Day: e.Day, Period: e.Period, Subject: e.SubjectID, Labels: []string{teacher, e.Room}})
	}
	return out
}

// TeacherGridEntries labels each entry with its room.
func TeacherGridEntries(entries []models.TeacherScheduleEntry) []GridEntry {
	out := make([]GridEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, GridEntry{Day: e.Day, Period: e.Period, Subject: e.SubjectID, Labels: []string{e.Room}})
	}
	return out
}
