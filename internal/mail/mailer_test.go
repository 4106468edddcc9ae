package mail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
)

func TestNewWithoutHostDiscards(t *testing.T) {
	s := New(config.MailConfig{})
	_, ok := s.(Discard)
	assert.True(t, ok)
	assert.NoError(t, s.Send(Message{To: "a@b.c"}))
}

func TestWelcomeEscapesInput(t *testing.T) {
	msg, err := Welcome("a@b.c", WelcomeData{Email: "<script>@b.c", Role: "CANDIDATE"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", msg.To)
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.HTML, "CANDIDATE")
}

func TestApplicationStatus(t *testing.T) {
	msg, err := ApplicationStatus("a@b.c", StatusData{JobTitle: "Go Dev", Status: "SHORTLISTED", MeetingStatus: "SCHEDULED", MeetingAt: "2025-05-01 10:00 UTC"})
	require.NoError(t, err)
	assert.Equal(t, "Update on your application: Go Dev", msg.Subject)
	assert.Contains(t, msg.HTML, "SHORTLISTED")
	assert.Contains(t, msg.HTML, "on 2025-05-01 10:00 UTC")
}

func TestSMTPMessageHeaders(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@vetri.test"})
	g := m.build(Message{To: "a@b.c", Subject: "Hi", HTML: "<p>x</p>"})
	assert.Equal(t, []string{"no-reply@vetri.test"}, g.GetHeader("From"))
	assert.Equal(t, []string{"a@b.c"}, g.GetHeader("To"))

	var buf bytes.Buffer
	_, err := g.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Subject: Hi")
}
