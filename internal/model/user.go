package model

import (
	"strings"
	"time"
)

// Role is the closed set of account kinds. It is stored as-is in
// users.role and carried in the "role" claim of access tokens.
type Role string

const (
	RoleCandidate  Role = "CANDIDATE"
	RoleConsultant Role = "CONSULTANT"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleConsultant, RoleAdmin:
		return true
	}
	return false
}

// ParseSignupRole maps a self-service signup choice to a role. Only
// candidate and consultant accounts can be self-registered; anything else
// (including ADMIN) falls back to candidate.
func ParseSignupRole(s string) Role {
	if Role(strings.ToUpper(strings.TrimSpace(s))) == RoleConsultant {
		return RoleConsultant
	}
	return RoleCandidate
}

// NormalizeEmail lowercases and trims an email so it can be used as the
// login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User mirrors a row of the `users` table.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is persisted.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
