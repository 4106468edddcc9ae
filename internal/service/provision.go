package service

import (
	"context"
	"errors"
	"time"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// Provisioner creates the records that hang off an account. Every Ensure
// method is idempotent: it reads, creates when missing and, when a
// concurrent request won the insert, reads again. The unique key on user_id
// decides the winner.
type Provisioner struct {
	Profiles      ProfileStore
	Subscriptions SubscriptionStore
	Now           func() time.Time
}

func NewProvisioner(p ProfileStore, s SubscriptionStore) *Provisioner {
	if p == nil || s == nil {
		panic("nil store passed to NewProvisioner")
	}
	return &Provisioner{Profiles: p, Subscriptions: s, Now: time.Now}
}

// Provisioned is what ProvisionAccount created or found.
type Provisioned struct {
	Candidate    model.CandidateProfile
	Consultant   *model.ConsultantProfile
	Subscription *model.Subscription
}

// ProvisionAccount runs right after an account is created. Every account
// gets a candidate profile, consultants also get a consultant profile and
// candidates start on the free plan.
func (p *Provisioner) ProvisionAccount(ctx context.Context, u model.User) (Provisioned, error) {
	var out Provisioned
	cp, err := p.EnsureCandidateProfile(ctx, u.ID)
	if err != nil {
		return out, err
	}
	out.Candidate = cp

	switch u.Role {
	case model.RoleConsultant:
		con, err := p.EnsureConsultantProfile(ctx, u.ID)
		if err != nil {
			return out, err
		}
		out.Consultant = &con
	case model.RoleCandidate:
		sub, err := p.EnsureSubscription(ctx, u.ID)
		if err != nil {
			return out, err
		}
		out.Subscription = &sub
	}
	return out, nil
}

func (p *Provisioner) EnsureCandidateProfile(ctx context.Context, userID uint64) (model.CandidateProfile, error) {
	return ensure(
		func() (model.CandidateProfile, error) { return p.Profiles.GetCandidate(ctx, userID) },
		func() (model.CandidateProfile, error) { return p.Profiles.CreateCandidate(ctx, userID) })
}

func (p *Provisioner) EnsureConsultantProfile(ctx context.Context, userID uint64) (model.ConsultantProfile, error) {
	return ensure(
		func() (model.ConsultantProfile, error) { return p.Profiles.GetConsultant(ctx, userID) },
		func() (model.ConsultantProfile, error) { return p.Profiles.CreateConsultant(ctx, userID) })
}

// EnsureSubscription returns the user's subscription, starting a free one
// when none exists.
func (p *Provisioner) EnsureSubscription(ctx context.Context, userID uint64) (model.Subscription, error) {
	return ensure(
		func() (model.Subscription, error) { return p.Subscriptions.Get(ctx, userID) },
		func() (model.Subscription, error) {
			return p.Subscriptions.Create(ctx, model.NewFreeSubscription(userID, p.Now()))
		})
}

func ensure[T any](get, create func() (T, error)) (T, error) {
	v, err := get()
	if err == nil || !errors.Is(err, ErrNotFound) {
		return v, err
	}
	v, err = create()
	if errors.Is(err, ErrConflict) {
		return get()
	}
	return v, err
}
