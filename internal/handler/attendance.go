package handler

import (
	"fmt"

	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/deppfellow/attendance-api/internal/server"
	"github.com/deppfellow/attendance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// AttendanceHandler serves /api/attendance.
type AttendanceHandler struct {
	Handler
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(s *server.Server, attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		Handler:           NewHandler(s),
		attendanceService: attendanceService,
	}
}

func (h *AttendanceHandler) ListAttendances(c echo.Context, _ *attendance.ListAttendancePayload) (*attendance.AttendanceListResponse, error) {
	records, err := h.attendanceService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}

	return &attendance.AttendanceListResponse{
		Message: "List of Attendances",
		Data:    records,
	}, nil
}

func (h *AttendanceHandler) CreateAttendance(c echo.Context, req *attendance.CreateAttendancePayload) (*attendance.AttendanceResponse, error) {
	created, err := h.attendanceService.Create(c.Request().Context(), req.Record)
	if err != nil {
		return nil, err
	}

	return &attendance.AttendanceResponse{
		Message: "Attendance created",
		Data:    created,
	}, nil
}

func (h *AttendanceHandler) UpdateAttendance(c echo.Context, req *attendance.UpdateAttendancePayload) (*attendance.AttendanceResponse, error) {
	updated, err := h.attendanceService.Update(c.Request().Context(), req.Record)
	if err != nil {
		return nil, err
	}

	return &attendance.AttendanceResponse{
		Message: fmt.Sprintf("Attendance %d updated", req.ID),
		Data:    updated,
	}, nil
}

func (h *AttendanceHandler) DeleteAttendance(c echo.Context, req *attendance.DeleteAttendancePayload) (*attendance.MessageResponse, error) {
	if err := h.attendanceService.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}

	return &attendance.MessageResponse{
		Message: fmt.Sprintf("Attendance %d deleted", req.ID),
	}, nil
}
