package handler

import (
	"net/http"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/deppfellow/attendance-api/internal/server"
	"github.com/labstack/echo/v4"
)

// RootHandler answers GET /.
type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{Handler: NewHandler(s)}
}

func (h *RootHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, attendance.MessageResponse{Message: "Welcome to the CRUD API"})
}
