package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/vantora/leadhub/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from, salesTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		SalesTo:  salesTo,
	}
}

// NotifyLeadEvent emails the sales inbox about a lead lifecycle event.
func (s *EmailSender) NotifyLeadEvent(payload queue.LeadEventPayload) error {
	data := LeadEmailData{
		Event:     payload.Event,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Company:   payload.Company,
		Stage:     payload.Stage,
		Value:     payload.Value,
	}

	tmplPath := filepath.Join("templates", "lead_event.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("New lead: %s %s (%s)", payload.FirstName, payload.LastName, payload.Company)
	if payload.Event == queue.EventLeadConverted {
		subject = fmt.Sprintf("Lead converted: %s %s (%s)", payload.FirstName, payload.LastName, payload.Company)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.SalesTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
