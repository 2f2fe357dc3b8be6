// Package email delivers budget alert emails over SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"moneymap/internal/config"
	"moneymap/internal/logger"
	"moneymap/internal/models"
	"moneymap/internal/services"
)

const tipCount = 3

// Mailer sends budget alert emails. It implements notifications.Notifier.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	// send is swapped in tests to capture messages instead of dialing.
	send func(*gomail.Message) error
}

// NewMailer creates a Mailer from application configuration.
func NewMailer(cfg *config.Config) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	m := &Mailer{
		dialer: dialer,
		from:   cfg.SMTPFrom,
	}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) dialAndSend(msg *gomail.Message) error {
	return m.dialer.DialAndSend(msg)
}

// configured reports whether SMTP credentials are present. Alerts are
// silently skipped when they are not, so development setups without an SMTP
// server keep working.
func (m *Mailer) configured() bool {
	return m.dialer.Host != "" && m.dialer.Username != ""
}

// SendThresholdAlert emails the user that a budget crossed its warning
// threshold.
func (m *Mailer) SendThresholdAlert(user *models.User, budget *models.Budget, status services.BudgetStatus) error {
	subject := fmt.Sprintf("Budget Alert: %s Budget at %.1f%%", budget.CategoryName(), status.PercentageUsed)
	data := alertData{
		UserName:   user.Name,
		BudgetName: budget.CategoryName(),
		Currency:   budget.Currency,
		Amount:     budget.Amount,
		Spent:      status.Spending,
		Remaining:  status.Remaining,
		Percentage: status.PercentageUsed,
		Tips:       PickTips(budget.CategoryName(), false, tipCount),
	}
	return m.deliver(user.Email, subject, thresholdTemplate, data)
}

// SendExceededAlert emails the user that a budget went over its limit.
func (m *Mailer) SendExceededAlert(user *models.User, budget *models.Budget, status services.BudgetStatus) error {
	subject := fmt.Sprintf("Budget Exceeded: %s Budget Over Limit", budget.CategoryName())
	data := alertData{
		UserName:   user.Name,
		BudgetName: budget.CategoryName(),
		Currency:   budget.Currency,
		Amount:     budget.Amount,
		Spent:      status.Spending,
		ExceededBy: status.Spending - budget.Amount,
		Tips:       PickTips(budget.CategoryName(), true, tipCount),
	}
	return m.deliver(user.Email, subject, exceededTemplate, data)
}

func (m *Mailer) deliver(to, subject string, tmpl *template.Template, data alertData) error {
	if !m.configured() {
		logger.Get().Infow("email not configured, skipping alert", "to", to, "subject", subject)
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render alert email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	return nil
}
