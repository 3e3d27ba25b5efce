package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/grigorev-dev/timetable-api/internal/middleware"
	"github.com/grigorev-dev/timetable-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Teachers   *TeacherHandler
	Groups     *GroupHandler
	Subjects   *SubjectHandler
	Schedules  *ScheduleHandler
	Filters    *FilterHandler
	Statistics *StatisticsHandler
	Saved      *SavedScheduleHandler
	Exports    *ExportHandler
	Auth       *AuthHandler
}

// RegisterRoutes mounts the API under the given prefix. When authService is
// non-nil, everything except auth endpoints requires a valid token. Auth and
// saved-schedule routes are skipped when their handlers are nil, which happens
// when Postgres is not configured.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, authService *service.AuthService) {
	api := r.Group(prefix)

	if h.Auth != nil {
		auth := api.Group("/auth")
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	if authService != nil {
		protected.Use(middleware.JWT(authService))
	}

	protected.GET("/teachers", h.Teachers.List)
	protected.POST("/teachers", h.Teachers.Create)
	protected.DELETE("/teachers/:id", h.Teachers.Delete)

	protected.GET("/groups", h.Groups.List)
	protected.POST("/groups", h.Groups.Create)
	protected.PUT("/groups/:id", h.Groups.Rename)
	protected.DELETE("/groups/:id", h.Groups.Delete)

	protected.GET("/groups/:id/subjects", h.Subjects.List)
	protected.POST("/groups/:id/subjects", h.Subjects.Create)
	protected.DELETE("/subjects/:id", h.Subjects.Delete)

	protected.GET("/groups/:id/schedule", h.Schedules.List)
	protected.POST("/groups/:id/schedule/generate", h.Schedules.Generate)
	protected.POST("/groups/:id/schedule/lessons", h.Schedules.AddLesson)
	protected.PUT("/groups/:id/schedule/lessons", h.Schedules.ReplaceLesson)
	protected.DELETE("/groups/:id/schedule/lessons", h.Schedules.DeleteLesson)
	protected.GET("/groups/:id/schedule/availability", h.Schedules.Availability)
	protected.GET("/groups/:id/schedule/export", h.Exports.Export)

	protected.GET("/groups/:id/filters", h.Filters.List)
	protected.PUT("/groups/:id/filters", h.Filters.Set)
	protected.DELETE("/groups/:id/filters", h.Filters.Remove)

	protected.GET("/groups/:id/statistics", h.Statistics.Get)

	if h.Saved != nil {
		protected.POST("/groups/:id/saved-schedules", h.Saved.Save)
		protected.GET("/groups/:id/saved-schedules", h.Saved.List)
		protected.POST("/groups/:id/saved-schedules/:scheduleId/restore", h.Saved.Restore)
		protected.GET("/saved-schedules/:scheduleId", h.Saved.Get)
		protected.DELETE("/saved-schedules/:scheduleId", h.Saved.Delete)
		protected.GET("/saved-schedules/:scheduleId/export", h.Exports.ExportSaved)
	}
}
