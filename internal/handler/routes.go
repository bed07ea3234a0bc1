package handler

import "github.com/gin-gonic/gin"

// Handlers groups the API handlers mounted under the API prefix.
type Handlers struct {
	Roster      *RosterHandler
	Assignments *AssignmentHandler
	Timetable   *TimetableHandler
	Schedules   *ScheduleHandler
}

// RegisterRoutes mounts every API route on api. Mutating routes run admin
// first.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, admin ...gin.HandlerFunc) {
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc(nil), admin...), handler)
	}

	roster := api.Group("/roster")
	roster.POST("/import", guarded(h.Roster.Import)...)
	roster.GET("/subjects", h.Roster.Subjects)
	roster.GET("/classes", h.Roster.Classes)

	assignments := api.Group("/assignments")
	assignments.GET("", h.Assignments.List)
	assignments.POST("", guarded(h.Assignments.Create)...)
	assignments.DELETE("/:id", guarded(h.Assignments.Delete)...)

	tt := api.Group("/timetable")
	tt.GET("", h.Timetable.List)
	tt.POST("/check", h.Timetable.Check)
	tt.POST("", guarded(h.Timetable.Commit)...)
	tt.DELETE("", guarded(h.Timetable.Delete)...)

	api.GET("/period-times", h.Timetable.PeriodTimes)
	api.PUT("/period-times", guarded(h.Timetable.ReplacePeriodTimes)...)

	students := api.Group("/students/:id/schedule")
	students.GET("", h.Schedules.Student)
	students.GET("/grid", h.Schedules.StudentGrid)
	students.GET("/export", h.Schedules.Export)

	teachers := api.Group("/teachers/:name")
	teachers.GET("/schedule", h.Schedules.Teacher)
	teachers.GET("/schedule/grid", h.Schedules.TeacherGrid)
	teachers.GET("/subjects/:subject/students", h.Schedules.Audience)
}
