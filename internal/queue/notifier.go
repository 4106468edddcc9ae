package queue

import (
	"context"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/mail"
)

// Notifier turns events into emails.
type Notifier struct {
	Mail mail.Sender
}

func NewNotifier(s mail.Sender) *Notifier {
	if s == nil {
		panic("nil sender passed to NewNotifier")
	}
	return &Notifier{Mail: s}
}

// Handle sends the email for ev. Unknown event types are ignored.
func (n *Notifier) Handle(_ context.Context, ev Event) error {
	var (
		msg mail.Message
		err error
	)
	switch ev.Type {
	case UserRegistered:
		msg, err = mail.Welcome(ev.Email, mail.WelcomeData{Email: ev.Email, Role: ev.Role})
	case ApplicationSubmitted:
		if ev.ConsultantEmail == "" {
			return nil
		}
		msg, err = mail.NewApplicant(ev.ConsultantEmail, mail.AppliedData{Email: ev.Email, JobTitle: ev.JobTitle})
	case ApplicationUpdated:
		d := mail.StatusData{Email: ev.Email, JobTitle: ev.JobTitle, Status: ev.Status, MeetingStatus: ev.MeetingStatus}
		if ev.MeetingAt != nil {
			d.MeetingAt = ev.MeetingAt.UTC().Format("2006-01-02 15:04 MST")
		}
		msg, err = mail.ApplicationStatus(ev.Email, d)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	return n.Mail.Send(msg)
}
