package dto

import "github.com/noah-isme/sma-remedial-api/internal/timetable"

// RosterImportResponse summarises a roster upload.
type RosterImportResponse struct {
	Imported int                        `json:"imported"`
	Exempt   int                        `json:"exempt"`
	Issues   []timetable.DataShapeIssue `json:"issues"`
}

// CreateAssignmentRequest registers a teacher for a subject in some classes.
// Classes may be sent as a list or as a comma separated ClassList.
type CreateAssignmentRequest struct {
	Subject   string   `json:"subject" validate:"required,max=128"`
	Teacher   string   `json:"teacher" validate:"required,max=128"`
	Classes   []string `json:"classes" validate:"omitempty,dive,max=16"`
	ClassList string   `json:"class_list" validate:"max=512"`
	Room      string   `json:"room" validate:"max=64"`
}
