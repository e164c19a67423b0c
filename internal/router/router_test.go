package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/attendance-api/internal/config"
	"github.com/deppfellow/attendance-api/internal/errs"
	"github.com/deppfellow/attendance-api/internal/handler"
	"github.com/deppfellow/attendance-api/internal/middleware"
	"github.com/deppfellow/attendance-api/internal/repository/repositorytest"
	"github.com/deppfellow/attendance-api/internal/server"
	"github.com/deppfellow/attendance-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(rateLimit float64) *echo.Echo {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "development"},
			Server: config.ServerConfig{
				Port:               "3000",
				ReadTimeout:        30,
				WriteTimeout:       30,
				IdleTimeout:        60,
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	services := &service.Services{
		Attendance: service.NewAttendanceService(repositorytest.NewMemoryAttendanceRepository(), nil),
	}

	return NewRouter(s, handler.NewHandlers(s, services))
}

func send(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAttendanceLifecycle(t *testing.T) {
	r := newTestRouter(1000)

	const created = `{"AttendanceID":12345678,"Date":"29-02-2024","status":"Online","CheckInTime":"08:05","CheckOutTime":"16:45"}`
	const updated = `{"AttendanceID":12345678,"Date":"29-02-2024","status":"Offline","CheckInTime":"00:00","CheckOutTime":"23:59"}`

	rec := send(r, http.MethodPost, "/api/attendance", created)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Attendance created","data":`+created+`}`, rec.Body.String())

	rec = send(r, http.MethodGet, "/api/attendance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"List of Attendances","data":[`+created+`]}`, rec.Body.String())

	rec = send(r, http.MethodPut, "/api/attendance/12345678", updated)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Attendance 12345678 updated","data":`+updated+`}`, rec.Body.String())

	rec = send(r, http.MethodGet, "/api/attendance", "")
	assert.JSONEq(t, `{"message":"List of Attendances","data":[`+updated+`]}`, rec.Body.String())

	rec = send(r, http.MethodDelete, "/api/attendance/12345678", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Attendance 12345678 deleted"}`, rec.Body.String())

	rec = send(r, http.MethodGet, "/api/attendance", "")
	assert.JSONEq(t, `{"message":"List of Attendances","data":[]}`, rec.Body.String())
}

// A stored record serialized back out must validate into the same record.
func TestListedRecordsRevalidate(t *testing.T) {
	r := newTestRouter(1000)

	const body = `{"AttendanceID":98765432,"Date":"01-12-2023","status":"Offline","CheckInTime":"07:00","CheckOutTime":"07:00"}`
	require.Equal(t, http.StatusOK, send(r, http.MethodPost, "/api/attendance", body).Code)

	rec := send(r, http.MethodGet, "/api/attendance", "")
	var list struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	rec = send(r, http.MethodPut, "/api/attendance/98765432", string(list.Data[0]))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Attendance 98765432 updated","data":`+body+`}`, rec.Body.String())
}

func TestLongIDsAreKeptExactly(t *testing.T) {
	r := newTestRouter(1000)

	rec := send(r, http.MethodPost, "/api/attendance",
		`{"AttendanceID":12345678901234567,"Date":"01-04-2024","status":"Online","CheckInTime":"09:00","CheckOutTime":"17:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"AttendanceID":12345678901234567,`)

	rec = send(r, http.MethodDelete, "/api/attendance/12345678901234567", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = send(r, http.MethodPost, "/api/attendance",
		`{"AttendanceID":123456789012345678901,"Date":"01-04-2024","status":"Online","CheckInTime":"09:00","CheckOutTime":"17:00"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "AttendanceID", httpErr.Errors[0].Field)
	assert.Equal(t, "is out of range", httpErr.Errors[0].Error)
}

func TestInvalidCreateLeavesStoreUntouched(t *testing.T) {
	r := newTestRouter(1000)

	rec := send(r, http.MethodPost, "/api/attendance",
		`{"AttendanceID":12345678.5,"Date":"29-02-2023","status":"Online","CheckInTime":"9:30","CheckOutTime":"17:00"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, "Validation failed", httpErr.Message)

	fields := make([]string, 0, len(httpErr.Errors))
	for _, fieldErr := range httpErr.Errors {
		fields = append(fields, fieldErr.Field)
	}
	assert.ElementsMatch(t, []string{"AttendanceID", "Date", "CheckInTime"}, fields)

	rec = send(r, http.MethodGet, "/api/attendance", "")
	assert.JSONEq(t, `{"message":"List of Attendances","data":[]}`, rec.Body.String())
}

func TestWelcomeRoute(t *testing.T) {
	rec := send(newTestRouter(1000), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the CRUD API"}`, rec.Body.String())
}

func TestTrailingSlashIsIgnored(t *testing.T) {
	rec := send(newTestRouter(1000), http.MethodGet, "/api/attendance/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	rec := send(newTestRouter(1000), http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, "Route not found", httpErr.Message)
}

func TestResponsesCarryRequestID(t *testing.T) {
	r := newTestRouter(1000)

	rec := send(r, http.MethodGet, "/api/attendance", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id-1", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(1)

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(r, http.MethodGet, "/", "").Code)
}
