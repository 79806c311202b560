package deliver

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sago-ai/sago/internal/model"
)

// MailDeliverer drafts and sends the report summary over SMTP
type MailDeliverer struct {
	config model.DeliveryConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailDeliverer creates an SMTP deliverer
func NewMailDeliverer(config model.DeliveryConfig) *MailDeliverer {
	return &MailDeliverer{config: config, send: smtp.SendMail}
}

// Deliver sends the report summary to the configured recipient
func (m *MailDeliverer) Deliver(ctx context.Context, report *model.Report) (*Receipt, error) {
	if m.config.Recipient == "" {
		return nil, &DeliveryError{Channel: "mail", Err: fmt.Errorf("no recipient configured")}
	}
	if err := ctx.Err(); err != nil {
		return nil, &DeliveryError{Channel: "mail", Err: err}
	}

	addr := fmt.Sprintf("%s:%d", m.config.SMTPHost, m.config.SMTPPort)
	auth := smtp.PlainAuth("", m.config.SMTPUser, m.config.SMTPPassword, m.config.SMTPHost)
	msg := m.draft(report)

	if err := m.send(addr, auth, m.config.SMTPUser, []string{m.config.Recipient}, msg); err != nil {
		return nil, &DeliveryError{Channel: "mail", Err: err}
	}

	return &Receipt{
		ID:      uuid.NewString(),
		Channel: "mail",
		Target:  m.config.Recipient,
		SentAt:  time.Now().UTC(),
	}, nil
}

// draft renders the mail message: subject line plus a short plain-text body.
func (m *MailDeliverer) draft(report *model.Report) []byte {
	counts := report.CountByStatus()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.config.SMTPUser)
	fmt.Fprintf(&b, "To: %s\r\n", m.config.Recipient)
	fmt.Fprintf(&b, "Subject: Pitch Deck Analysis: %s (score %.0f%%)\r\n", report.CompanyName, report.OverallScore*100)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&b, "Verification of %s's pitch deck is complete.\r\n\r\n", report.CompanyName)
	fmt.Fprintf(&b, "Overall score: %.0f%%\r\n", report.OverallScore*100)
	fmt.Fprintf(&b, "Claims analyzed: %d (%d verified, %d contradicted, %d unverifiable)\r\n",
		len(report.Claims), counts[model.StatusVerified], counts[model.StatusContradicted], counts[model.StatusUnverifiable])
	fmt.Fprintf(&b, "Questions prepared: %d\r\n\r\n", len(report.Questions))
	b.WriteString(report.ExecutiveSummary)
	b.WriteString("\r\n\r\nTop questions:\r\n")

	for i, q := range report.Questions {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "%d. [%s] %s\r\n", i+1, q.Priority, q.Text)
	}

	return []byte(b.String())
}
