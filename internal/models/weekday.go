package models

import (
	"fmt"
	"strings"
)

// Weekday is one of the five teaching days of the master timetable.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayAliases = map[string]Weekday{
	"MON": Monday, "MONDAY": Monday, "월": Monday,
	"TUE": Tuesday, "TUESDAY": Tuesday, "화": Tuesday,
	"WED": Wednesday, "WEDNESDAY": Wednesday, "수": Wednesday,
	"THU": Thursday, "THURSDAY": Thursday, "목": Thursday,
	"FRI": Friday, "FRIDAY": Friday, "금": Friday,
}

// ParseWeekday accepts short or long English names in any case and the Korean day characters.
func ParseWeekday(raw string) (Weekday, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.TrimSuffix(key, "요일")
	if day, ok := weekdayAliases[key]; ok {
		return day, nil
	}
	return "", fmt.Errorf("unknown weekday %q", raw)
}

// Index returns the zero-based calendar position, or -1 for an unknown value.
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the five teaching days.
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}
