package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/mail"
)

type captureSender struct {
	sent []mail.Message
	err  error
}

func (c *captureSender) Send(m mail.Message) error {
	c.sent = append(c.sent, m)
	return c.err
}

func TestNotifierWelcome(t *testing.T) {
	s := &captureSender{}
	n := NewNotifier(s)
	require.NoError(t, n.Handle(context.Background(), Event{Type: UserRegistered, Email: "a@b.c", Role: "CANDIDATE"}))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@b.c", s.sent[0].To)
	assert.Equal(t, "Welcome to Vetri Consultancy", s.sent[0].Subject)
}

func TestNotifierApplicationEvents(t *testing.T) {
	s := &captureSender{}
	n := NewNotifier(s)
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, n.Handle(context.Background(), Event{Type: ApplicationSubmitted, Email: "c@x.io", JobTitle: "Go Dev"}))
	assert.Empty(t, s.sent, "no consultant address, nothing to send")

	require.NoError(t, n.Handle(context.Background(), Event{Type: ApplicationSubmitted, Email: "c@x.io", ConsultantEmail: "hr@x.io", JobTitle: "Go Dev"}))
	require.NoError(t, n.Handle(context.Background(), Event{Type: ApplicationUpdated, Email: "c@x.io", JobTitle: "Go Dev", Status: "SHORTLISTED", MeetingStatus: "SCHEDULED", MeetingAt: &at}))
	require.Len(t, s.sent, 2)
	assert.Equal(t, "hr@x.io", s.sent[0].To)
	assert.Contains(t, s.sent[1].HTML, "2025-05-01 10:00 UTC")
}

func TestNotifierIgnoresUnknown(t *testing.T) {
	s := &captureSender{}
	require.NoError(t, NewNotifier(s).Handle(context.Background(), Event{Type: "job.viewed"}))
	assert.Empty(t, s.sent)
}

func TestDispatch(t *testing.T) {
	s := &captureSender{err: errors.New("smtp down")}
	n := NewNotifier(s)

	body, err := encode(Event{Type: UserRegistered, Email: "a@b.c"})
	require.NoError(t, err)
	err = dispatch(context.Background(), n, body)
	assert.ErrorContains(t, err, "handle user.registered")

	assert.Error(t, dispatch(context.Background(), n, []byte("{")))
	assert.Error(t, dispatch(context.Background(), n, []byte(`{"email":"x"}`)))
}

func TestEncodeStampsTime(t *testing.T) {
	body, err := encode(Event{Type: UserRegistered})
	require.NoError(t, err)
	ev, err := decode(body)
	require.NoError(t, err)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(config.EventConfig{Broker: "none"})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)

	p, err = NewPublisher(config.EventConfig{Broker: "rabbitmq", RabbitURL: "amqp://x", RabbitQueue: "q"})
	require.NoError(t, err)
	assert.IsType(t, &RabbitPublisher{}, p)

	p, err = NewPublisher(config.EventConfig{Broker: "kafka", KafkaBrokers: []string{"k:9092"}, KafkaTopic: "t"})
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, p)
	assert.NoError(t, p.Close())

	_, err = NewPublisher(config.EventConfig{Broker: "carrier-pigeon"})
	assert.Error(t, err)
}
