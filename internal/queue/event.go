// Package queue publishes domain events to a message broker and consumes
// them to send notifications outside the request path.
package queue

import "time"

type EventType string

const (
	UserRegistered       EventType = "user.registered"
	ApplicationSubmitted EventType = "application.submitted"
	ApplicationUpdated   EventType = "application.updated"
)

// Event is the single message shape on the wire. Fields that do not apply
// to a type are left empty.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`

	ApplicationID   uint64     `json:"application_id,omitempty"`
	JobID           uint64     `json:"job_id,omitempty"`
	JobTitle        string     `json:"job_title,omitempty"`
	ConsultantEmail string     `json:"consultant_email,omitempty"`
	Status          string     `json:"status,omitempty"`
	MeetingStatus   string     `json:"meeting_status,omitempty"`
	MeetingAt       *time.Time `json:"meeting_at,omitempty"`
}
