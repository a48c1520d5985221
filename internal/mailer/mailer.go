package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	Host         string
	Port         string
	From         string
	Password     string
	ContactInbox string
	BaseURL      string
}

type Mailer struct {
	cfg Config
	log *zerolog.Logger
}

func NewMailer(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Festival Registration Confirmed</h1>
  <p>Hello <strong>{{.Name}}</strong>,</p>
  <p>Your spot for <strong>{{.Event}}</strong> is secured.</p>
  <p>Registration ID: <strong>{{.RegistrationID}}</strong></p>
  <p>Status: <strong>PAID (₹{{.Amount}}) - {{.PassType}}</strong></p>
  <p>Please show this email at the registration desk.</p>
  <p><a href="{{.BaseURL}}">Visit Website</a></p>
</div>
`))

type ticketData struct {
	Name           string
	Event          string
	RegistrationID int64
	Amount         int
	PassType       string
	BaseURL        string
}

// SendTicket delivers the confirmation ticket for a paid registration.
func (m *Mailer) SendTicket(recipientEmail, recipientName, eventLabel string, registrationID int64, amount int, passType string) error {
	body, err := renderTicketBody(ticketData{
		Name:           recipientName,
		Event:          eventLabel,
		RegistrationID: registrationID,
		Amount:         amount,
		PassType:       passType,
		BaseURL:        m.cfg.BaseURL,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s Registration Confirmed", eventLabel)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, recipientEmail, subject, body,
	)

	if err := m.send(recipientEmail, msg); err != nil {
		m.log.Warn().Err(err).Str("email", recipientEmail).Msg("failed to send ticket email")
		return fmt.Errorf("send ticket email: %w", err)
	}

	m.log.Info().Str("email", recipientEmail).Int64("registration_id", registrationID).Msg("ticket email sent")
	return nil
}

// SendContact relays a contact-form message to the festival inbox.
func (m *Mailer) SendContact(name, email, message string) error {
	subject := fmt.Sprintf("New Contact Message from %s", name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", name, email, message)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nReply-To: %s\r\n\r\n%s",
		m.cfg.From, m.cfg.ContactInbox, subject, email, body,
	)

	if err := m.send(m.cfg.ContactInbox, msg); err != nil {
		m.log.Warn().Err(err).Msg("failed to relay contact message")
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

func (m *Mailer) send(to, msg string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

func renderTicketBody(data ticketData) (string, error) {
	var buf bytes.Buffer
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render ticket body: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
