package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/homepage/api/handler"
)

type Handlers struct {
	Dashboard *apiHandler.DashboardHandler
	Todo      *apiHandler.TodoHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/dashboard", handlers.Dashboard.Get)

	// Mutating routes
	r.POST("/todos", authMiddleware(handlers.Todo.Post))
	r.POST("/actions/archive_finished", authMiddleware(handlers.Todo.ArchiveFinished))

	return r
}
