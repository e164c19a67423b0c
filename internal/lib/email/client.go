// Package email sends notification emails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"github.com/deppfellow/attendance-api/internal/config"
	"github.com/deppfellow/attendance-api/internal/model/attendance"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Client wraps the Resend client.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates a Client from the integration config.
func NewClient(cfg *config.IntegrationConfig, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.EmailFrom,
		logger: logger,
	}
}

// Render executes templateName with data.
func Render(templateName Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, templateName.path())
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}

// AttendanceRecordedData is the template data for a recorded attendance.
func AttendanceRecordedData(record attendance.Attendance) map[string]string {
	return map[string]string{
		"AttendanceID": strconv.FormatInt(record.AttendanceID, 10),
		"Date":         record.Date.String(),
		"Status":       string(record.Status),
		"CheckInTime":  record.CheckInTime.String(),
		"CheckOutTime": record.CheckOutTime.String(),
	}
}

// SendAttendanceRecordedEmail tells to that record was created.
func (c *Client) SendAttendanceRecordedEmail(ctx context.Context, to string, record attendance.Attendance) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Attendance %d recorded", record.AttendanceID),
		TemplateAttendanceRecorded,
		AttendanceRecordedData(record),
	)
}
