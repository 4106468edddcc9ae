package model

import (
	"strings"
	"time"
)

type Course struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Enrollment links a candidate profile to a course. (CandidateID, CourseID)
// is unique. Progress is a percentage in [0, 100].
type Enrollment struct {
	ID          uint64    `json:"id"`
	CandidateID uint64    `json:"candidate_id"`
	CourseID    uint64    `json:"course_id"`
	AppliedAt   time.Time `json:"applied_at"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	Certificate string    `json:"certificate"`
	Course      *Course   `json:"course,omitempty"`
}

// FAQ is one chatbot entry. Keywords is a comma separated list.
type FAQ struct {
	ID        uint64    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Keywords  string    `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// KeywordList returns the trimmed, lowercased, non-empty keywords.
func (f FAQ) KeywordList() []string {
	var out []string
	for _, k := range strings.Split(f.Keywords, ",") {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}
