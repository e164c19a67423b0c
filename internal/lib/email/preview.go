package email

// PreviewData holds sample values for each template, keyed by template name
// and then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateAttendanceRecorded: {
		"AttendanceID": "12345678",
		"Date":         "29-02-2024",
		"Status":       "Online",
		"CheckInTime":  "09:00",
		"CheckOutTime": "17:30",
	},
}
