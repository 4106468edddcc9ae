// Package mail sends notification emails over SMTP.
package mail

import (
	"bytes"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(msg Message) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	return m.dialer.DialAndSend(m.build(msg))
}

func (m *SMTPMailer) build(msg Message) *gomail.Message {
	g := gomail.NewMessage()
	g.SetHeader("From", m.from)
	g.SetHeader("To", msg.To)
	g.SetHeader("Subject", msg.Subject)
	g.SetBody("text/html", msg.HTML)
	return g
}

// Discard drops every message. It is used when SMTP_HOST is not set.
type Discard struct{}

func (Discard) Send(Message) error { return nil }

// New returns an SMTP mailer, or Discard when no host is configured.
func New(cfg config.MailConfig) Sender {
	if cfg.Host == "" {
		return Discard{}
	}
	return NewSMTPMailer(cfg)
}

var (
	welcomeTpl = template.Must(template.New("welcome").Parse(
		`<p>Hi {{.Email}},</p>
<p>Welcome to Vetri Consultancy! Your {{.Role}} account is ready.</p>
<p>Complete your profile to get the most out of the platform.</p>`))

	statusTpl = template.Must(template.New("status").Parse(
		`<p>Hi {{.Email}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> has been updated.</p>
<p>Status: {{.Status}}<br>Meeting: {{.MeetingStatus}}{{if .MeetingAt}} on {{.MeetingAt}}{{end}}</p>`))

	appliedTpl = template.Must(template.New("applied").Parse(
		`<p>Hi,</p>
<p>{{.Email}} applied for <strong>{{.JobTitle}}</strong>.</p>`))
)

type WelcomeData struct {
	Email string
	Role  string
}

type StatusData struct {
	Email         string
	JobTitle      string
	Status        string
	MeetingStatus string
	MeetingAt     string
}

type AppliedData struct {
	Email    string
	JobTitle string
}

func Welcome(to string, d WelcomeData) (Message, error) {
	return render(to, "Welcome to Vetri Consultancy", welcomeTpl, d)
}

func ApplicationStatus(to string, d StatusData) (Message, error) {
	return render(to, "Update on your application: "+d.JobTitle, statusTpl, d)
}

func NewApplicant(to string, d AppliedData) (Message, error) {
	return render(to, "New applicant for "+d.JobTitle, appliedTpl, d)
}

func render(to, subject string, t *template.Template, data any) (Message, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: subject, HTML: buf.String()}, nil
}
