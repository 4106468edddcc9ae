package model

import (
	"sort"
	"time"
)

// JobQuery is a question a candidate asked about a job. A candidate may
// open any number of them per job.
type JobQuery struct {
	ID         uint64          `json:"id"`
	JobID      uint64          `json:"job_id"`
	UserID     uint64          `json:"user_id"`
	Question   string          `json:"question"`
	IsResolved bool            `json:"is_resolved"`
	CreatedAt  time.Time       `json:"created_at"`
	JobTitle   string          `json:"job_title,omitempty"`
	AskerEmail string          `json:"asker_email,omitempty"`
	Replies    []JobQueryReply `json:"replies,omitempty"`
}

// JobQueryReply is one message on a query thread, written either by the
// asking candidate or by the consultant owning the job.
type JobQueryReply struct {
	ID          uint64    `json:"id"`
	QueryID     uint64    `json:"query_id"`
	UserID      uint64    `json:"user_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorEmail string    `json:"author_email,omitempty"`
}

// SortQueue orders a consultant's query queue: unresolved before resolved,
// newest first within each group. Ties on creation time fall back to the
// higher id first.
func SortQueue(qs []JobQuery) {
	sort.SliceStable(qs, func(i, j int) bool {
		a, b := qs[i], qs[j]
		if a.IsResolved != b.IsResolved {
			return !a.IsResolved
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// SortReplies orders replies oldest first.
func SortReplies(rs []JobQueryReply) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.Before(rs[j].CreatedAt)
		}
		return rs[i].ID < rs[j].ID
	})
}
