package mail

import (
	"errors"
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/pkg/config"
)

// ErrNotConfigured is returned when SMTP credentials are absent.
// Callers report it as a status rather than failing the request.
var ErrNotConfigured = errors.New("mail transport is not configured")

// ErrNoRecipients is returned for an empty recipient list
var ErrNoRecipients = errors.New("no recipients to send to")

// Sender sends meeting summary mail over SMTP
type Sender struct {
	cfg *config.SMTPConfig
}

// NewSender creates a mail sender from config
func NewSender(cfg *config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// SendSummary sends the analysis as an HTML mail to all recipients
func (s *Sender) SendSummary(recipients []string, analysis *entities.AnalysisResult) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", "Meeting Summary & Action Items")
	m.SetBody("text/html", BuildSummaryHTML(analysis))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// BuildSummaryHTML renders the summary body. Exported for tests.
func BuildSummaryHTML(analysis *entities.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString("<h2>Meeting Summary</h2>")
	sb.WriteString("<p>" + html.EscapeString(analysis.Summary) + "</p>")

	sb.WriteString("<h2>Key Decisions</h2><ul>")
	for _, d := range analysis.Decisions {
		sb.WriteString("<li>" + html.EscapeString(d) + "</li>")
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Action Items</h2><ul>")
	for _, item := range analysis.ActionItems {
		sb.WriteString(fmt.Sprintf(
			"<li><b>Task:</b> %s | <b>Assignee:</b> %s | <b>Due:</b> %s</li>",
			html.EscapeString(item.Task),
			html.EscapeString(item.Assignee),
			html.EscapeString(item.DueDate),
		))
	}
	sb.WriteString("</ul>")

	return sb.String()
}
