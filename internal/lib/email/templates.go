package email

import "embed"

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateAttendanceRecorded is templates/attendance_recorded.html.
	TemplateAttendanceRecorded Template = "attendance_recorded"
)

//go:embed templates/*.html
var templateFS embed.FS

func (t Template) path() string {
	return "templates/" + string(t) + ".html"
}
