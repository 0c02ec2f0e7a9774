package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskgrid/backend/api/handler"
	"github.com/taskgrid/backend/internal/middleware"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	User     *apiHandler.UserHandler
	Task     *apiHandler.TaskHandler
	Report   *apiHandler.ReportHandler
	Activity *apiHandler.ActivityHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, auth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", auth(handlers.Auth.Logout))
	r.GET("/api/v1/auth/profile", auth(handlers.Auth.GetProfile))
	r.PUT("/api/v1/auth/profile", auth(handlers.Auth.UpdateProfile))

	// User routes
	r.GET("/api/v1/users", auth(middleware.AdminOnly(handlers.User.GetUsers)))
	r.GET("/api/v1/users/{id}", auth(handlers.User.GetUser))

	// Task routes
	r.GET("/api/v1/tasks/dashboard-data", auth(handlers.Task.GetDashboardData))
	r.GET("/api/v1/tasks/user-dashboard-data", auth(handlers.Task.GetUserDashboardData))
	r.GET("/api/v1/tasks", auth(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", auth(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", auth(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", auth(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", auth(handlers.Task.DeleteTask))
	r.PUT("/api/v1/tasks/{id}/status", auth(handlers.Task.UpdateTaskStatus))
	r.PUT("/api/v1/tasks/{id}/todo", auth(handlers.Task.UpdateTaskChecklist))

	// Report routes
	r.GET("/api/v1/reports/export/tasks", auth(middleware.AdminOnly(handlers.Report.ExportTasks)))
	r.GET("/api/v1/reports/export/users", auth(middleware.AdminOnly(handlers.Report.ExportUsers)))

	// Activity trail
	r.GET("/api/v1/activity", auth(handlers.Activity.GetRecent))

	return r
}
