// Package timetable resolves personal remedial schedules from a master
// timetable and teacher assignments, and detects student conflicts before a
// slot is committed.
//
// Everything here is pure and synchronous: callers load a Snapshot, build an
// Engine for the duration of one operation and discard it. Writes to the
// MasterTimetable must be serialized by the caller.
package timetable
