package model

import "time"

type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// ProPlanDays is the length of one Pro period.
const ProPlanDays = 30

// Subscription is the per-user plan state. One row per user.
type Subscription struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	Plan      Plan       `json:"plan"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewFreeSubscription is the state a fresh account starts in.
func NewFreeSubscription(userID uint64, now time.Time) Subscription {
	return Subscription{UserID: userID, Plan: PlanFree, StartDate: now.UTC(), IsActive: true}
}

// IsPro reports whether the subscription grants Pro access at now: the plan
// is PRO and there is either no end date or the end date has not passed.
func (s Subscription) IsPro(now time.Time) bool {
	if s.Plan != PlanPro {
		return false
	}
	return s.EndDate == nil || !s.EndDate.Before(now)
}

// ActivatePro switches the subscription to PRO for days starting at now.
func (s *Subscription) ActivatePro(now time.Time, days int) {
	if days <= 0 {
		days = ProPlanDays
	}
	start := now.UTC()
	end := start.AddDate(0, 0, days)
	s.Plan = PlanPro
	s.StartDate = start
	s.EndDate = &end
	s.IsActive = true
}

// PlanInfo describes a purchasable plan.
type PlanInfo struct {
	Plan         Plan     `json:"plan"`
	Name         string   `json:"name"`
	PriceCents   int64    `json:"price_cents"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
)

// PaymentTransaction is a stub gateway transaction keyed by a UUID.
type PaymentTransaction struct {
	ID          string        `json:"id"`
	UserID      uint64        `json:"user_id"`
	Plan        Plan          `json:"plan"`
	AmountCents int64         `json:"amount_cents"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at"`
}
