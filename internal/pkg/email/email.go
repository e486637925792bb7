package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/paydesk/payroll-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendPayslip(to, employeeName, period, netSalary, payslipURL string) error
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

type payslipEmailData struct {
	EmployeeName string
	Period       string
	NetSalary    string
	PayslipURL   string
}

// SendPayslip delivers the payslip email for a paid payroll record.
func (s *emailServiceImpl) SendPayslip(to, employeeName, period, netSalary, payslipURL string) error {
	data := payslipEmailData{
		EmployeeName: employeeName,
		Period:       period,
		NetSalary:    netSalary,
		PayslipURL:   payslipURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payslip.html", data); err != nil {
		return fmt.Errorf("failed to render payslip template: %w", err)
	}

	subject := fmt.Sprintf("Your payslip for %s is ready", period)
	return s.send(to, subject, body.String())
}

func (s *emailServiceImpl) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, htmlBody,
	))

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if lastErr = smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); lastErr == nil {
			return nil
		}
		slog.Warn("email delivery attempt failed",
			slog.String("to", to),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	return fmt.Errorf("failed to send email to %s after %d attempts: %w", to, maxRetries, lastErr)
}
