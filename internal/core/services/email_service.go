package services

import (
	"fmt"
	"log"
	"time"

	"godavari-scm/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends admin alert mails. Disabled when no SMTP host is
// configured; failures are logged and never block the caller.
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	adminTo string
	enabled bool
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	svc := &EmailService{
		from:    cfg.SMTP.From,
		adminTo: cfg.SMTP.AdminTo,
		enabled: cfg.SMTP.Host != "" && cfg.SMTP.AdminTo != "",
	}
	if svc.enabled {
		svc.dialer = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	}
	return svc
}

// IsEnabled checks if email sending is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// sendToAdmin sends an HTML mail to the configured admin address
func (s *EmailService) sendToAdmin(subject, body string) {
	if !s.enabled {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("⚠️ Failed to send admin email [%s]: %v", subject, err)
	}
}

// NotifyRegistration alerts the admin about a new storage entry
func (s *EmailService) NotifyRegistration(customerName string, numberOfPots int, locationName string) {
	body := fmt.Sprintf(`
		<h2>New storage registration</h2>
		<p>Customer: %s</p>
		<p>Pots: %d</p>
		<p>Location: %s</p>
		<p>Date: %s</p>
	`, customerName, numberOfPots, locationName, time.Now().Format("02 Jan 2006 15:04"))

	s.sendToAdmin("New storage registration", body)
}

// NotifyDelivery alerts the admin about a completed delivery
func (s *EmailService) NotifyDelivery(customerName, receiverName, receiverRelation string) {
	body := fmt.Sprintf(`
		<h2>Storage delivered</h2>
		<p>Customer: %s</p>
		<p>Received by: %s (%s)</p>
		<p>Date: %s</p>
	`, customerName, receiverName, receiverRelation, time.Now().Format("02 Jan 2006 15:04"))

	s.sendToAdmin("Storage delivered", body)
}
