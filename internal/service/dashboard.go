package service

import (
	"context"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
)

// DashboardService assembles the per-role landing summary.
type DashboardService struct {
	Provisioner   *Provisioner
	Jobs          JobStore
	Saved         SavedJobStore
	Apps          ApplicationStore
	Queries       QueryStore
	Enrollments   EnrollmentStore
	Subscriptions *SubscriptionService
}

type CandidateDashboard struct {
	Completeness int `json:"profile_completeness"`
	Applications int `json:"applications"`
	Shortlisted  int `json:"shortlisted"`
	SavedJobs    int `json:"saved_jobs"`
	Courses      int `json:"courses"`
}

type ConsultantDashboard struct {
	Completeness      int `json:"profile_completeness"`
	PostedJobs        int `json:"posted_jobs"`
	ActiveJobs        int `json:"active_jobs"`
	Shortlisted       int `json:"shortlisted"`
	UnresolvedQueries int `json:"unresolved_queries"`
}

type Dashboard struct {
	Role         model.Role           `json:"role"`
	Subscription SubscriptionView     `json:"subscription"`
	Candidate    *CandidateDashboard  `json:"candidate,omitempty"`
	Consultant   *ConsultantDashboard `json:"consultant,omitempty"`
}

func (s *DashboardService) Build(ctx context.Context, a policy.Actor) (Dashboard, error) {
	sub, err := s.Subscriptions.Current(ctx, a.UserID)
	if err != nil {
		return Dashboard{}, err
	}
	d := Dashboard{Role: a.Role, Subscription: sub}
	switch {
	case a.IsCandidate():
		c, err := s.candidate(ctx, a)
		if err != nil {
			return Dashboard{}, err
		}
		d.Candidate = &c
	case a.IsConsultant():
		c, err := s.consultant(ctx, a)
		if err != nil {
			return Dashboard{}, err
		}
		d.Consultant = &c
	}
	return d, nil
}

func (s *DashboardService) candidate(ctx context.Context, a policy.Actor) (CandidateDashboard, error) {
	var out CandidateDashboard
	p, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return out, err
	}
	out.Completeness = p.Completeness()
	apps, err := s.Apps.ListByUser(ctx, a.UserID)
	if err != nil {
		return out, err
	}
	out.Applications = len(apps)
	for _, app := range apps {
		if app.Status == model.StatusShortlisted {
			out.Shortlisted++
		}
	}
	saved, err := s.Saved.JobIDs(ctx, a.UserID)
	if err != nil {
		return out, err
	}
	out.SavedJobs = len(saved)
	courses, err := s.Enrollments.CourseIDs(ctx, p.ID)
	if err != nil {
		return out, err
	}
	out.Courses = len(courses)
	return out, nil
}

func (s *DashboardService) consultant(ctx context.Context, a policy.Actor) (ConsultantDashboard, error) {
	var out ConsultantDashboard
	p, err := s.Provisioner.EnsureConsultantProfile(ctx, a.UserID)
	if err != nil {
		return out, err
	}
	out.Completeness = p.Completeness()
	if _, out.PostedJobs, err = s.Jobs.List(ctx, model.JobFilter{ConsultantID: a.UserID}, 1, 0); err != nil {
		return out, err
	}
	if _, out.ActiveJobs, err = s.Jobs.List(ctx, model.JobFilter{ConsultantID: a.UserID, ActiveOnly: true}, 1, 0); err != nil {
		return out, err
	}
	shortlisted, err := s.Apps.ListShortlisted(ctx, a.UserID)
	if err != nil {
		return out, err
	}
	out.Shortlisted = len(shortlisted)
	if out.UnresolvedQueries, err = s.Queries.CountUnresolved(ctx, a.UserID); err != nil {
		return out, err
	}
	return out, nil
}

func NewDashboardService(prov *Provisioner, jobs JobStore, saved SavedJobStore, apps ApplicationStore, queries QueryStore, enrollments EnrollmentStore, subs *SubscriptionService) *DashboardService {
	if prov == nil || jobs == nil || saved == nil || apps == nil || queries == nil || enrollments == nil || subs == nil {
		panic("nil dependency passed to NewDashboardService")
	}
	return &DashboardService{
		Provisioner:   prov,
		Jobs:          jobs,
		Saved:         saved,
		Apps:          apps,
		Queries:       queries,
		Enrollments:   enrollments,
		Subscriptions: subs,
	}
}
