package model

import (
	"strings"
	"time"
)

// CandidateProfile is created for every account by the provisioner.
// Resume and ProfileImage hold storage keys, empty when nothing is attached.
type CandidateProfile struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	ExperienceYears *float64  `json:"experience_years"`
	Skills          string    `json:"skills"`
	Resume          string    `json:"resume"`
	ProfileImage    string    `json:"profile_image"`
	Bio             string    `json:"bio"`
	LinkedIn        string    `json:"linkedin"`
	GitHub          string    `json:"github"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ConsultantProfile exists only for consultant accounts.
type ConsultantProfile struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Company      string    `json:"company"`
	Designation  string    `json:"designation"`
	ProfileImage string    `json:"profile_image"`
	Bio          string    `json:"bio"`
	LinkedIn     string    `json:"linkedin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Completeness returns the integer percentage (rounded down) of the 11
// tracked candidate fields that are filled in.
func (p CandidateProfile) Completeness() int {
	return percentFilled(
		filled(p.FirstName),
		filled(p.LastName),
		filled(p.Phone),
		filled(p.Location),
		p.ExperienceYears != nil,
		filled(p.Skills),
		filled(p.Resume),
		filled(p.ProfileImage),
		filled(p.Bio),
		filled(p.LinkedIn),
		filled(p.GitHub),
	)
}

// Completeness returns the integer percentage (rounded down) of the 8
// tracked consultant fields that are filled in.
func (p ConsultantProfile) Completeness() int {
	return percentFilled(
		filled(p.FirstName),
		filled(p.LastName),
		filled(p.Phone),
		filled(p.Company),
		filled(p.Designation),
		filled(p.ProfileImage),
		filled(p.Bio),
		filled(p.LinkedIn),
	)
}

// filled treats whitespace-only text as empty, so a field of spaces does
// not raise completeness.
func filled(s string) bool { return strings.TrimSpace(s) != "" }

func percentFilled(fields ...bool) int {
	if len(fields) == 0 {
		return 0
	}
	n := 0
	for _, f := range fields {
		if f {
			n++
		}
	}
	return n * 100 / len(fields)
}
