package handler

import "github.com/gin-gonic/gin"

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Students   *StudentHandler
	Subjects   *SubjectHandler
	Attendance *AttendanceHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts health checks, metrics and the /api routes on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	if h.Metrics != nil {
		r.GET("/ping", h.Metrics.Ping)
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group("/api")

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.POST("", h.Subjects.Create)
	subjects.DELETE("/:id", h.Subjects.Delete)
	subjects.GET("/:id/students", h.Subjects.Roster)
	subjects.GET("/:id/summary", h.Subjects.Summary)
	subjects.GET("/:id/consistency", h.Subjects.Consistency)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/summary", h.Students.Summary)

	attendance := api.Group("/attendance")
	attendance.GET("", h.Attendance.History)
	attendance.POST("", h.Attendance.Mark)
	attendance.POST("/bulk", h.Attendance.MarkBulk)
	attendance.GET("/export", h.Attendance.Export)
	attendance.DELETE("", h.Attendance.DeleteFiltered)
	attendance.DELETE("/:id", h.Attendance.Delete)
}
