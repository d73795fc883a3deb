// Package notify sends the per-alert notification side effect. It is
// fire-and-forget: a failed or slow send never blocks alert intake.
package notify

import (
	"fmt"
	"math"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/lighthouse-ops/riskwatch/internal/config"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender emails risk-spike notifications via SMTP. Disabled when no
// SMTP host or recipient is configured.
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new alert notifier
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether notifications are configured
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != "" && s.cfg.AlertRecipient != ""
}

// AlertAccepted sends a risk-spike notification for the given event
func (s *Sender) AlertAccepted(ev models.AlertEvent) {
	if !s.Enabled() {
		return
	}

	name := ev.Name
	if name == "" {
		name = fmt.Sprintf("Customer #%d", ev.CustomerID)
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AlertRecipient}
	e.Subject = fmt.Sprintf("Risk Spike Detected: %s", name)

	body := fmt.Sprintf(
		"A risk score spike was detected.\n\n"+
			"Customer: %s (ID %d)\n"+
			"Score surged to %d\n",
		name, ev.CustomerID, int(math.Round(ev.NewScore)),
	)
	if ev.Timestamp != "" {
		body += fmt.Sprintf("Detected at: %s\n", ev.Timestamp)
	}
	body += "\nReview the customer profile and consider initiating a counseling call.\n"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert notification for customer %d: %v", ev.CustomerID, err)
		return
	}

	s.logger.Infof("Alert notification sent to %s: %s", s.cfg.AlertRecipient, e.Subject)
}
