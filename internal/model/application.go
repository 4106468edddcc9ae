package model

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

type MeetingStatus string

const (
	MeetingNotScheduled MeetingStatus = "NOT_SCHEDULED"
	MeetingScheduled    MeetingStatus = "SCHEDULED"
	MeetingPostponed    MeetingStatus = "POSTPONED"
	MeetingCancelled    MeetingStatus = "CANCELLED"
	MeetingCompleted    MeetingStatus = "COMPLETED"
)

// ApplicantAction is the action parameter a consultant posts against one
// of their applicants.
type ApplicantAction string

const (
	ActionShortlist       ApplicantAction = "shortlist"
	ActionReject          ApplicantAction = "reject"
	ActionScheduleMeeting ApplicantAction = "schedule_meeting"
	ActionChangeMeeting   ApplicantAction = "change_meeting"
	ActionPostponeMeeting ApplicantAction = "postpone_meeting"
	ActionCancelMeeting   ApplicantAction = "cancel_meeting"
	ActionCompleteMeeting ApplicantAction = "complete_meeting"
)

// TakesMeetingTime reports whether the action reads meeting_datetime.
func (a ApplicantAction) TakesMeetingTime() bool {
	return a == ActionScheduleMeeting || a == ActionChangeMeeting
}

var (
	// ErrInvalidTransition is returned when a meeting action does not apply
	// to the current meeting state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrMeetingTimeRequired is returned when scheduling without a time.
	ErrMeetingTimeRequired = errors.New("meeting_datetime is required")
)

// Application is a candidate's submission against a job. (UserID, JobID)
// is unique.
type Application struct {
	ID              uint64            `json:"id"`
	UserID          uint64            `json:"user_id"`
	JobID           uint64            `json:"job_id"`
	Resume          string            `json:"resume"`
	CoverLetter     string            `json:"cover_letter"`
	Status          ApplicationStatus `json:"status"`
	MeetingStatus   MeetingStatus     `json:"meeting_status"`
	MeetingDatetime *time.Time        `json:"meeting_datetime"`
	AppliedAt       time.Time         `json:"applied_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Populated by list queries that join the job or applicant.
	JobTitle       string `json:"job_title,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
}

// NewApplication returns a pending application with no meeting.
func NewApplication(userID, jobID uint64, resume, coverLetter string) Application {
	return Application{
		UserID:        userID,
		JobID:         jobID,
		Resume:        resume,
		CoverLetter:   coverLetter,
		Status:        StatusPending,
		MeetingStatus: MeetingNotScheduled,
	}
}

// Transition applies a consultant action and returns the resulting record.
// The receiver is not modified. changed is false for unknown actions, which
// are silent no-ops, and for actions that leave the record as it was.
//
// Status never returns to PENDING; SHORTLISTED and REJECTED may be swapped.
// Scheduling is possible from any meeting state and always needs a time.
// Postpone, cancel and complete only apply to a scheduled meeting.
func (a Application) Transition(action ApplicantAction, meetingAt *time.Time) (next Application, changed bool, err error) {
	next = a
	switch action {
	case ActionShortlist:
		next.Status = StatusShortlisted
	case ActionReject:
		next.Status = StatusRejected
	case ActionScheduleMeeting, ActionChangeMeeting:
		if meetingAt == nil || meetingAt.IsZero() {
			return a, false, ErrMeetingTimeRequired
		}
		t := meetingAt.UTC()
		next.MeetingStatus = MeetingScheduled
		next.MeetingDatetime = &t
	case ActionPostponeMeeting:
		if a.MeetingStatus != MeetingScheduled {
			return a, false, ErrInvalidTransition
		}
		next.MeetingStatus = MeetingPostponed
	case ActionCancelMeeting:
		if a.MeetingStatus != MeetingScheduled {
			return a, false, ErrInvalidTransition
		}
		next.MeetingStatus = MeetingCancelled
		next.MeetingDatetime = nil
	case ActionCompleteMeeting:
		if a.MeetingStatus != MeetingScheduled {
			return a, false, ErrInvalidTransition
		}
		next.MeetingStatus = MeetingCompleted
	default:
		return a, false, nil
	}
	return next, !sameState(a, next), nil
}

func sameState(a, b Application) bool {
	if a.Status != b.Status || a.MeetingStatus != b.MeetingStatus {
		return false
	}
	switch {
	case a.MeetingDatetime == nil && b.MeetingDatetime == nil:
		return true
	case a.MeetingDatetime == nil || b.MeetingDatetime == nil:
		return false
	}
	return a.MeetingDatetime.Equal(*b.MeetingDatetime)
}
