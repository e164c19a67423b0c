// Package router builds the Echo router: it installs the middleware chain,
// the system routes and the API route groups.
package router

import (
	"net/http"

	"github.com/deppfellow/attendance-api/internal/handler"
	"github.com/deppfellow/attendance-api/internal/middleware"
	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/deppfellow/attendance-api/internal/server"
	"github.com/deppfellow/attendance-api/internal/validation"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter returns a router serving h. The router is built from scratch on
// every call, so tests can create as many as they need.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.JSONSerializer = validation.JSONSerializer{}

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	// The rate limiter runs first so rejected clients cost as little as
	// possible. ContextEnhancer needs the request id and the transaction.
	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	router.GET("/", h.Root.Welcome)
	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerAttendanceRoutes(api, h.Attendance)

	return router
}

func registerAttendanceRoutes(api *echo.Group, h *handler.AttendanceHandler) {
	attendances := api.Group("/attendance")

	attendances.GET("", handler.Handle(
		h.Handler,
		h.ListAttendances,
		http.StatusOK,
		&attendance.ListAttendancePayload{},
	))

	attendances.POST("", handler.Handle(
		h.Handler,
		h.CreateAttendance,
		http.StatusOK,
		&attendance.CreateAttendancePayload{},
	))

	attendances.PUT("/:id", handler.Handle(
		h.Handler,
		h.UpdateAttendance,
		http.StatusOK,
		&attendance.UpdateAttendancePayload{},
	))

	attendances.DELETE("/:id", handler.Handle(
		h.Handler,
		h.DeleteAttendance,
		http.StatusOK,
		&attendance.DeleteAttendancePayload{},
	))
}
