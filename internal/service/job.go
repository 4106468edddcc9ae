package service

import (
	"context"
	"errors"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
)

// JobService covers the catalog: listing, detail, bookmarks,
// recommendations and consultant CRUD.
type JobService struct {
	Jobs        JobStore
	Saved       SavedJobStore
	Apps        ApplicationStore
	Provisioner *Provisioner
}

func NewJobService(jobs JobStore, saved SavedJobStore, apps ApplicationStore, prov *Provisioner) *JobService {
	if jobs == nil || saved == nil || apps == nil || prov == nil {
		panic("nil dependency passed to NewJobService")
	}
	return &JobService{Jobs: jobs, Saved: saved, Apps: apps, Provisioner: prov}
}

// ListJobsInput holds the optional candidate filters. Blank strings and a
// nil MaxExperience mean no constraint.
type ListJobsInput struct {
	MaxExperience *int
	Location      string
	Domain        string
	Skills        string
	JobType       string
	Page          int
}

type JobList struct {
	Jobs          []model.Job `json:"jobs"`
	Page          Page        `json:"pagination"`
	SavedJobIDs   []uint64    `json:"saved_job_ids"`
	AppliedJobIDs []uint64    `json:"applied_job_ids"`
}

// List returns active jobs, newest first. Consultants only see their own
// postings and the candidate filters do not apply to them.
func (s *JobService) List(ctx context.Context, a policy.Actor, in ListJobsInput) (JobList, error) {
	f := model.JobFilter{ActiveOnly: true}
	if a.IsConsultant() {
		f.ConsultantID = a.UserID
	} else {
		f.MaxExperience = in.MaxExperience
		f.Location = strings.TrimSpace(in.Location)
		f.Domain = strings.TrimSpace(in.Domain)
		f.Skills = strings.TrimSpace(in.Skills)
		if jt := model.JobType(strings.ToUpper(strings.TrimSpace(in.JobType))); jt.Valid() {
			f.JobType = jt
		}
	}
	out, err := s.page(ctx, f, in.Page, JobsPageSize)
	if err != nil {
		return JobList{}, err
	}
	if a.IsCandidate() {
		if err := s.markCandidate(ctx, a, &out); err != nil {
			return JobList{}, err
		}
	}
	return out, nil
}

// Recommended matches active jobs against the candidate's profile skills.
// A job qualifies when any skill occurs in its title, domain or
// description. No skills means no recommendations.
func (s *JobService) Recommended(ctx context.Context, a policy.Actor, page int) (JobList, error) {
	if !a.IsCandidate() {
		return JobList{}, ErrForbidden
	}
	p, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return JobList{}, err
	}
	skills := model.ParseSkills(p.Skills)
	if len(skills) == 0 {
		return JobList{
			Jobs:          []model.Job{},
			Page:          clampPage(1, RecommendedPageSize, 0),
			SavedJobIDs:   []uint64{},
			AppliedJobIDs: []uint64{},
		}, nil
	}
	out, err := s.page(ctx, model.JobFilter{ActiveOnly: true, AnySkill: skills}, page, RecommendedPageSize)
	if err != nil {
		return JobList{}, err
	}
	if err := s.markCandidate(ctx, a, &out); err != nil {
		return JobList{}, err
	}
	return out, nil
}

// page fetches one page of f. A page past the end is served as the last
// page, which costs a second query.
func (s *JobService) page(ctx context.Context, f model.JobFilter, requested, size int) (JobList, error) {
	n := max(requested, 1)
	jobs, total, err := s.Jobs.List(ctx, f, size, (n-1)*size)
	if err != nil {
		return JobList{}, err
	}
	pg := clampPage(n, size, total)
	if pg.Number != n && total > 0 {
		if jobs, _, err = s.Jobs.List(ctx, f, size, pg.offset()); err != nil {
			return JobList{}, err
		}
	}
	return JobList{Jobs: jobs, Page: pg, SavedJobIDs: []uint64{}, AppliedJobIDs: []uint64{}}, nil
}

func (s *JobService) markCandidate(ctx context.Context, a policy.Actor, out *JobList) error {
	saved, err := s.Saved.JobIDs(ctx, a.UserID)
	if err != nil {
		return err
	}
	applied, err := s.Apps.JobIDsByUser(ctx, a.UserID)
	if err != nil {
		return err
	}
	out.SavedJobIDs = orEmpty(saved)
	out.AppliedJobIDs = orEmpty(applied)
	return nil
}

type JobDetail struct {
	Job             model.Job          `json:"job"`
	IsOwner         bool               `json:"is_owner"`
	Saved           bool               `json:"saved"`
	Applied         bool               `json:"applied"`
	Application     *model.Application `json:"application,omitempty"`
	ApplicantsCount *int               `json:"applicants_count,omitempty"`
}

// Detail returns a job with the flags relevant to the caller. Inactive jobs
// are only visible to their owner and admins.
func (s *JobService) Detail(ctx context.Context, a policy.Actor, jobID uint64) (JobDetail, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return JobDetail{}, err
	}
	if !policy.CanViewJob(a, job) {
		return JobDetail{}, ErrForbidden
	}
	d := JobDetail{Job: job, IsOwner: policy.CanEditJob(a, job)}
	if d.IsOwner {
		n, err := s.Apps.CountByJob(ctx, jobID)
		if err != nil {
			return JobDetail{}, err
		}
		d.ApplicantsCount = &n
	}
	if a.IsCandidate() {
		if d.Saved, err = s.Saved.IsSaved(ctx, a.UserID, jobID); err != nil {
			return JobDetail{}, err
		}
		app, err := s.Apps.GetByUserJob(ctx, a.UserID, jobID)
		switch {
		case err == nil:
			d.Applied = true
			d.Application = &app
		case !errors.Is(err, ErrNotFound):
			return JobDetail{}, err
		}
	}
	return d, nil
}

// Save bookmarks a job. Saving twice keeps one bookmark.
func (s *JobService) Save(ctx context.Context, a policy.Actor, jobID uint64) error {
	if !policy.CanSaveJob(a) {
		return ErrForbidden
	}
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	return s.Saved.Save(ctx, a.UserID, jobID)
}

// Unsave removes a bookmark; removing one that does not exist is a no-op.
func (s *JobService) Unsave(ctx context.Context, a policy.Actor, jobID uint64) error {
	if !policy.CanSaveJob(a) {
		return ErrForbidden
	}
	return s.Saved.Remove(ctx, a.UserID, jobID)
}

func (s *JobService) SavedJobs(ctx context.Context, a policy.Actor) ([]model.Job, error) {
	if !policy.CanSaveJob(a) {
		return nil, ErrForbidden
	}
	return s.Saved.ListJobs(ctx, a.UserID)
}

type PostedJob struct {
	model.Job
	ApplicantsCount int `json:"applicants_count"`
}

// Posted lists every job of the consultant, inactive ones included.
func (s *JobService) Posted(ctx context.Context, a policy.Actor) ([]PostedJob, error) {
	if !policy.CanPostJob(a) {
		return nil, ErrForbidden
	}
	jobs, _, err := s.Jobs.List(ctx, model.JobFilter{ConsultantID: a.UserID}, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]PostedJob, 0, len(jobs))
	for _, j := range jobs {
		n, err := s.Apps.CountByJob(ctx, j.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, PostedJob{Job: j, ApplicantsCount: n})
	}
	return out, nil
}

type JobInput struct {
	Title       string
	Company     string
	Location    string
	Experience  *int
	JobType     string
	Domain      string
	Skills      string
	Description string
	IsActive    *bool
}

func (in JobInput) apply(j *model.Job) error {
	fe := fieldErrors{}
	req := func(field, v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			fe.add(field, "this field is required")
		}
		return v
	}
	j.Title = req("title", in.Title)
	j.Company = req("company", in.Company)
	j.Location = req("location", in.Location)
	j.Domain = req("domain", in.Domain)
	j.Skills = req("skills", in.Skills)
	j.Description = req("description", in.Description)
	switch {
	case in.Experience == nil:
		fe.add("experience", "this field is required")
	case *in.Experience < 0:
		fe.add("experience", "must be zero or more")
	default:
		j.Experience = *in.Experience
	}
	jt := model.JobType(strings.ToUpper(strings.TrimSpace(in.JobType)))
	if !jt.Valid() {
		fe.add("job_type", "must be one of FT, PT, RM")
	}
	j.JobType = jt
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}
	return fe.err()
}

func (s *JobService) Create(ctx context.Context, a policy.Actor, in JobInput) (model.Job, error) {
	if !policy.CanPostJob(a) {
		return model.Job{}, ErrForbidden
	}
	j := model.Job{ConsultantID: a.UserID, IsActive: true}
	if err := in.apply(&j); err != nil {
		return model.Job{}, err
	}
	return s.Jobs.Create(ctx, j)
}

func (s *JobService) Update(ctx context.Context, a policy.Actor, jobID uint64, in JobInput) (model.Job, error) {
	j, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return model.Job{}, err
	}
	if !policy.CanEditJob(a, j) {
		return model.Job{}, ErrForbidden
	}
	if err := in.apply(&j); err != nil {
		return model.Job{}, err
	}
	if err := s.Jobs.Update(ctx, j); err != nil {
		return model.Job{}, err
	}
	return s.Jobs.GetByID(ctx, jobID)
}

func (s *JobService) Delete(ctx context.Context, a policy.Actor, jobID uint64) error {
	j, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !policy.CanDeleteJob(a, j) {
		return ErrForbidden
	}
	return s.Jobs.Delete(ctx, jobID)
}

func orEmpty(ids []uint64) []uint64 {
	if ids == nil {
		return []uint64{}
	}
	return ids
}
