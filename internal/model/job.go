package model

import (
	"strings"
	"time"
)

// JobType is the two-letter employment type code stored in jobs.job_type.
type JobType string

const (
	JobFullTime JobType = "FT"
	JobPartTime JobType = "PT"
	JobRemote   JobType = "RM"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobRemote:
		return true
	}
	return false
}

// Label is the human readable name of the job type.
func (t JobType) Label() string {
	switch t {
	case JobFullTime:
		return "Full Time"
	case JobPartTime:
		return "Part Time"
	case JobRemote:
		return "Remote"
	}
	return string(t)
}

// Job is a posting owned by one consultant.
type Job struct {
	ID           uint64    `json:"id"`
	ConsultantID uint64    `json:"consultant_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Experience   int       `json:"experience"`
	JobType      JobType   `json:"job_type"`
	Domain       string    `json:"domain"`
	Skills       string    `json:"skills"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	PostedOn     time.Time `json:"posted_on"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SavedJob marks a job bookmarked by a candidate. (UserID, JobID) is unique.
type SavedJob struct {
	ID      uint64    `json:"id"`
	UserID  uint64    `json:"user_id"`
	JobID   uint64    `json:"job_id"`
	SavedAt time.Time `json:"saved_at"`
}

// JobFilter narrows a job listing. Zero values mean "no constraint".
// All set constraints combine with AND.
type JobFilter struct {
	ConsultantID  uint64
	ActiveOnly    bool
	MaxExperience *int
	Location      string
	Domain        string
	Skills        string
	JobType       JobType
	// AnySkill matches jobs where any entry is a substring of the title,
	// domain or description.
	AnySkill []string
}

// ParseSkills splits a comma separated skill list into trimmed, lowercased,
// de-duplicated entries. Empty entries are dropped.
func ParseSkills(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		k := strings.ToLower(strings.TrimSpace(part))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
