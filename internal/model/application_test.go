package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionStatus(t *testing.T) {
	a := NewApplication(1, 2, "r.pdf", "")

	next, changed, err := a.Transition(ActionShortlist, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusShortlisted, next.Status)
	assert.Equal(t, StatusPending, a.Status, "receiver must not change")

	next, changed, err = next.Transition(ActionReject, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusRejected, next.Status)

	next, changed, err = next.Transition(ActionShortlist, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusShortlisted, next.Status)

	_, changed, err = next.Transition(ActionShortlist, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTransitionUnknownActionIsNoop(t *testing.T) {
	a := NewApplication(1, 2, "r.pdf", "")
	next, changed, err := a.Transition("archive", nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, a, next)
}

func TestTransitionMeeting(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	a := NewApplication(1, 2, "r.pdf", "")

	_, _, err := a.Transition(ActionScheduleMeeting, nil)
	assert.ErrorIs(t, err, ErrMeetingTimeRequired)

	_, _, err = a.Transition(ActionCancelMeeting, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	s, changed, err := a.Transition(ActionScheduleMeeting, &at)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, MeetingScheduled, s.MeetingStatus)
	require.NotNil(t, s.MeetingDatetime)
	assert.True(t, at.Equal(*s.MeetingDatetime))

	p, _, err := s.Transition(ActionPostponeMeeting, nil)
	require.NoError(t, err)
	assert.Equal(t, MeetingPostponed, p.MeetingStatus)

	_, _, err = p.Transition(ActionCompleteMeeting, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	later := at.Add(48 * time.Hour)
	r, changed, err := p.Transition(ActionChangeMeeting, &later)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, MeetingScheduled, r.MeetingStatus)

	c, _, err := r.Transition(ActionCancelMeeting, nil)
	require.NoError(t, err)
	assert.Equal(t, MeetingCancelled, c.MeetingStatus)
	assert.Nil(t, c.MeetingDatetime)

	done, _, err := r.Transition(ActionCompleteMeeting, nil)
	require.NoError(t, err)
	assert.Equal(t, MeetingCompleted, done.MeetingStatus)
	assert.Equal(t, StatusPending, done.Status, "meeting actions leave status alone")
}

func TestSortQueue(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	qs := []JobQuery{
		{ID: 1, IsResolved: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 2, IsResolved: false, CreatedAt: base.Add(1 * time.Hour)},
		{ID: 3, IsResolved: false, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, IsResolved: true, CreatedAt: base},
		{ID: 5, IsResolved: false, CreatedAt: base.Add(2 * time.Hour)},
	}
	SortQueue(qs)

	ids := make([]uint64, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	assert.Equal(t, []uint64{5, 3, 2, 1, 4}, ids)
}

func TestSortReplies(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := []JobQueryReply{
		{ID: 3, CreatedAt: base.Add(time.Minute)},
		{ID: 2, CreatedAt: base},
		{ID: 1, CreatedAt: base},
	}
	SortReplies(rs)
	assert.Equal(t, uint64(1), rs[0].ID)
	assert.Equal(t, uint64(2), rs[1].ID)
	assert.Equal(t, uint64(3), rs[2].ID)
}
