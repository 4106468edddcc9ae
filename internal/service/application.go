package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/queue"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

// ApplicationService runs the apply flow and the consultant side of the
// application state machine.
type ApplicationService struct {
	Jobs        JobStore
	Apps        ApplicationStore
	Users       UserStore
	Provisioner *Provisioner
	Files       storage.Storage
	events      emitter
}

func NewApplicationService(jobs JobStore, apps ApplicationStore, users UserStore, prov *Provisioner, files storage.Storage, pub EventPublisher, log echo.Logger) *ApplicationService {
	if jobs == nil || apps == nil || users == nil || prov == nil || files == nil {
		panic("nil dependency passed to NewApplicationService")
	}
	return &ApplicationService{
		Jobs:        jobs,
		Apps:        apps,
		Users:       users,
		Provisioner: prov,
		Files:       files,
		events:      emitter{pub: pub, log: log},
	}
}

type ApplyInput struct {
	CoverLetter string
	Resume      *storage.Upload
}

// Apply submits the candidate's application. The uploaded resume wins over
// the profile resume; having neither is a validation error. A second
// attempt returns *ExistingError pointing at the first application.
func (s *ApplicationService) Apply(ctx context.Context, a policy.Actor, jobID uint64, in ApplyInput) (model.Application, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return model.Application{}, err
	}
	if !a.IsCandidate() {
		return model.Application{}, ErrForbidden
	}
	// An earlier application is returned even when the job has since been
	// deactivated.
	if prev, err := s.Apps.GetByUserJob(ctx, a.UserID, jobID); err == nil {
		return prev, &ExistingError{Kind: "application", ID: prev.ID}
	} else if !errors.Is(err, ErrNotFound) {
		return model.Application{}, err
	}
	if !policy.CanApply(a, job) {
		return model.Application{}, ErrForbidden
	}

	upload, err := prepareUpload("resume", in.Resume, storage.PrepareResume,
		func(ext string) string { return storage.ApplicationResumeKey(a.UserID, ext) })
	if err != nil {
		return model.Application{}, err
	}
	resume := ""
	if upload != nil {
		resume = upload.key
	} else {
		p, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
		if err != nil {
			return model.Application{}, err
		}
		resume = p.Resume
	}
	if resume == "" {
		return model.Application{}, invalid("resume", "upload a resume or add one to your profile")
	}

	if err := storeAll(ctx, s.Files, upload); err != nil {
		return model.Application{}, err
	}
	app, err := s.Apps.Create(ctx, model.NewApplication(a.UserID, jobID, resume, strings.TrimSpace(in.CoverLetter)))
	if err != nil {
		removeAll(ctx, s.Files, keysOf(upload)...)
		if errors.Is(err, ErrConflict) {
			if prev, gerr := s.Apps.GetByUserJob(ctx, a.UserID, jobID); gerr == nil {
				return prev, &ExistingError{Kind: "application", ID: prev.ID}
			}
		}
		return model.Application{}, err
	}

	ev := queue.Event{
		Type:          queue.ApplicationSubmitted,
		UserID:        a.UserID,
		Email:         app.ApplicantEmail,
		ApplicationID: app.ID,
		JobID:         jobID,
		JobTitle:      job.Title,
	}
	if owner, err := s.Users.GetByID(ctx, job.ConsultantID); err == nil {
		ev.ConsultantEmail = owner.Email
	}
	s.events.emit(ctx, ev)
	return app, nil
}

type ApplicationView struct {
	Application model.Application `json:"application"`
	Job         model.Job         `json:"job"`
	ResumeURL   string            `json:"resume_url,omitempty"`
}

// Get shows an application to its candidate or to the job owner.
func (s *ApplicationService) Get(ctx context.Context, a policy.Actor, appID uint64) (ApplicationView, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return ApplicationView{}, err
	}
	if !policy.CanViewApplication(a, app, job) {
		return ApplicationView{}, ErrForbidden
	}
	return s.view(app, job), nil
}

// Applicant is the consultant view of one application.
func (s *ApplicationService) Applicant(ctx context.Context, a policy.Actor, appID uint64) (ApplicationView, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return ApplicationView{}, err
	}
	if !policy.CanManageApplication(a, job) {
		return ApplicationView{}, ErrForbidden
	}
	return s.view(app, job), nil
}

// Act applies a consultant action. Unknown actions change nothing and
// return the application as stored.
func (s *ApplicationService) Act(ctx context.Context, a policy.Actor, appID uint64, action model.ApplicantAction, meetingAt *time.Time) (ApplicationView, error) {
	app, job, err := s.load(ctx, appID)
	if err != nil {
		return ApplicationView{}, err
	}
	if !policy.CanManageApplication(a, job) {
		return ApplicationView{}, ErrForbidden
	}
	next, changed, err := app.Transition(action, meetingAt)
	if err != nil {
		if errors.Is(err, model.ErrMeetingTimeRequired) {
			return ApplicationView{}, invalid("meeting_datetime", "a meeting time is required")
		}
		return ApplicationView{}, err
	}
	if !changed {
		return s.view(app, job), nil
	}
	if err := s.Apps.UpdateState(ctx, next); err != nil {
		return ApplicationView{}, err
	}
	s.events.emit(ctx, queue.Event{
		Type:          queue.ApplicationUpdated,
		UserID:        next.UserID,
		Email:         next.ApplicantEmail,
		ApplicationID: next.ID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		Status:        string(next.Status),
		MeetingStatus: string(next.MeetingStatus),
		MeetingAt:     next.MeetingDatetime,
	})
	return s.view(next, job), nil
}

type ApplicantList struct {
	Job          model.Job           `json:"job"`
	Applications []model.Application `json:"applications"`
}

func (s *ApplicationService) Applicants(ctx context.Context, a policy.Actor, jobID uint64) (ApplicantList, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return ApplicantList{}, err
	}
	if !policy.CanViewApplicants(a, job) {
		return ApplicantList{}, ErrForbidden
	}
	apps, err := s.Apps.ListByJob(ctx, jobID)
	if err != nil {
		return ApplicantList{}, err
	}
	return ApplicantList{Job: job, Applications: apps}, nil
}

// Shortlisted lists shortlisted applications across the consultant's jobs.
func (s *ApplicationService) Shortlisted(ctx context.Context, a policy.Actor) ([]model.Application, error) {
	if !a.IsConsultant() {
		return nil, ErrForbidden
	}
	return s.Apps.ListShortlisted(ctx, a.UserID)
}

func (s *ApplicationService) Mine(ctx context.Context, a policy.Actor) ([]model.Application, error) {
	if !a.IsCandidate() {
		return nil, ErrForbidden
	}
	return s.Apps.ListByUser(ctx, a.UserID)
}

func (s *ApplicationService) load(ctx context.Context, appID uint64) (model.Application, model.Job, error) {
	app, err := s.Apps.GetByID(ctx, appID)
	if err != nil {
		return model.Application{}, model.Job{}, err
	}
	job, err := s.Jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return model.Application{}, model.Job{}, err
	}
	return app, job, nil
}

func (s *ApplicationService) view(app model.Application, job model.Job) ApplicationView {
	return ApplicationView{Application: app, Job: job, ResumeURL: fileURL(s.Files, app.Resume)}
}
