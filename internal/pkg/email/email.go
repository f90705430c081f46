package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends notification mail. Sends are fire-and-forget from the
// caller's perspective: failures are logged and never block a state
// transition.
type EmailService interface {
	SendLeaveSubmitted(to, employeeName, leaveTypeName, startDate, endDate string, days int) error
	SendLeaveDecision(to, leaveTypeName, startDate, endDate, status, note string) error
	SendHolidayReminder(to, holidayName, startDate, endDate string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type leaveSubmittedEmailData struct {
	EmployeeName  string
	LeaveTypeName string
	StartDate     string
	EndDate       string
	Days          int
}

// SendLeaveSubmitted notifies an approver that a request awaits their decision
func (s *emailServiceImpl) SendLeaveSubmitted(to, employeeName, leaveTypeName, startDate, endDate string, days int) error {
	data := leaveSubmittedEmailData{
		EmployeeName:  employeeName,
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		Days:          days,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_submitted.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Leave request from %s awaiting approval", employeeName), body.String())
}

type leaveDecisionEmailData struct {
	LeaveTypeName string
	StartDate     string
	EndDate       string
	Status        string
	Note          string
}

// SendLeaveDecision notifies the employee of an approval or rejection
func (s *emailServiceImpl) SendLeaveDecision(to, leaveTypeName, startDate, endDate, status, note string) error {
	data := leaveDecisionEmailData{
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        status,
		Note:          note,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your leave request was %s", status), body.String())
}

type holidayReminderEmailData struct {
	HolidayName string
	StartDate   string
	EndDate     string
}

// SendHolidayReminder notifies about an upcoming holiday
func (s *emailServiceImpl) SendHolidayReminder(to, holidayName, startDate, endDate string) error {
	data := holidayReminderEmailData{
		HolidayName: holidayName,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "holiday_reminder.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Upcoming holiday: %s", holidayName), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
