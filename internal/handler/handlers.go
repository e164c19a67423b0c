package handler

import (
	"github.com/deppfellow/attendance-api/internal/server"
	"github.com/deppfellow/attendance-api/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Root       *RootHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Attendance *AttendanceHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:       NewRootHandler(s),
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Attendance: NewAttendanceHandler(s, services.Attendance),
	}
}
