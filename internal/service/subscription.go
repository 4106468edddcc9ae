package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/payment"
)

// SubscriptionService exposes the plan gate and the upgrade flow. The
// payment step sits behind PaymentGateway so a real processor can replace
// the stub without touching the plan logic.
type SubscriptionService struct {
	Provisioner   *Provisioner
	Subscriptions SubscriptionStore
	Gateway       PaymentGateway
	ProDays       int
	PriceCents    int64
	Now           func() time.Time
}

func NewSubscriptionService(prov *Provisioner, gw PaymentGateway, proDays int, priceCents int64) *SubscriptionService {
	if prov == nil || gw == nil {
		panic("nil dependency passed to NewSubscriptionService")
	}
	if proDays <= 0 {
		proDays = model.ProPlanDays
	}
	return &SubscriptionService{
		Provisioner:   prov,
		Subscriptions: prov.Subscriptions,
		Gateway:       gw,
		ProDays:       proDays,
		PriceCents:    priceCents,
		Now:           time.Now,
	}
}

type SubscriptionView struct {
	Subscription model.Subscription `json:"subscription"`
	IsPro        bool               `json:"is_pro"`
	DaysLeft     *int               `json:"days_left,omitempty"`
}

type Checkout struct {
	TransactionID string     `json:"transaction_id"`
	Plan          model.Plan `json:"plan"`
	AmountCents   int64      `json:"amount_cents"`
}

func (s *SubscriptionService) Plans() []model.PlanInfo {
	return []model.PlanInfo{
		{
			Plan:     model.PlanFree,
			Name:     "Free",
			Features: []string{"Browse and apply to jobs", "Ask consultants questions", "FAQ assistant"},
		},
		{
			Plan:         model.PlanPro,
			Name:         "Pro",
			PriceCents:   s.PriceCents,
			DurationDays: s.ProDays,
			Features:     []string{"Everything in Free", "Enroll in training courses", "Course certificates"},
		},
	}
}

// Current returns the caller's subscription, starting a free one if the
// account predates subscriptions.
func (s *SubscriptionService) Current(ctx context.Context, userID uint64) (SubscriptionView, error) {
	sub, err := s.Provisioner.EnsureSubscription(ctx, userID)
	if err != nil {
		return SubscriptionView{}, err
	}
	return s.view(sub), nil
}

// IsPro reports whether userID currently has Pro access.
func (s *SubscriptionService) IsPro(ctx context.Context, userID uint64) (bool, error) {
	sub, err := s.Provisioner.EnsureSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.IsPro(s.Now()), nil
}

// InitiateUpgrade opens a pending Pro payment.
func (s *SubscriptionService) InitiateUpgrade(ctx context.Context, userID uint64) (Checkout, error) {
	pro, err := s.IsPro(ctx, userID)
	if err != nil {
		return Checkout{}, err
	}
	if pro {
		return Checkout{}, ErrAlreadyPro
	}
	txID, err := s.Gateway.Initiate(ctx, userID, model.PlanPro, s.PriceCents)
	if err != nil {
		return Checkout{}, err
	}
	return Checkout{TransactionID: txID, Plan: model.PlanPro, AmountCents: s.PriceCents}, nil
}

// ConfirmUpgrade settles the caller's transaction and switches the plan to
// Pro for ProDays from now. A transaction that was already confirmed only
// returns the current state.
func (s *SubscriptionService) ConfirmUpgrade(ctx context.Context, userID uint64, txID string) (SubscriptionView, error) {
	tx, err := s.Gateway.Transaction(ctx, txID)
	if err != nil {
		if errors.Is(err, payment.ErrUnknownTransaction) {
			return SubscriptionView{}, ErrNotFound
		}
		return SubscriptionView{}, err
	}
	if tx.UserID != userID {
		return SubscriptionView{}, ErrForbidden
	}
	if tx.Status == model.PaymentConfirmed {
		return s.Current(ctx, userID)
	}
	if _, err := s.Gateway.Confirm(ctx, txID); err != nil {
		return SubscriptionView{}, err
	}
	sub, err := s.Provisioner.EnsureSubscription(ctx, userID)
	if err != nil {
		return SubscriptionView{}, err
	}
	sub.ActivatePro(s.Now(), s.ProDays)
	if err := s.Subscriptions.Update(ctx, sub); err != nil {
		return SubscriptionView{}, err
	}
	return s.view(sub), nil
}

func (s *SubscriptionService) view(sub model.Subscription) SubscriptionView {
	now := s.Now()
	v := SubscriptionView{Subscription: sub, IsPro: sub.IsPro(now)}
	if v.IsPro && sub.EndDate != nil {
		days := int(math.Ceil(sub.EndDate.Sub(now).Hours() / 24))
		v.DaysLeft = &days
	}
	return v
}
