package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

func TestSaveTwiceKeepsOneUnsaveIsNoop(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cons := e.signup(t, "hr@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	job := e.postJob(t, cons, "Go Developer", "Backend", "APIs")

	require.NoError(t, e.job.Save(ctx, cand, job.ID))
	require.NoError(t, e.job.Save(ctx, cand, job.ID))
	saved, err := e.job.SavedJobs(ctx, cand)
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	require.NoError(t, e.job.Unsave(ctx, cand, job.ID))
	saved, _ = e.job.SavedJobs(ctx, cand)
	assert.Empty(t, saved)
	require.NoError(t, e.job.Unsave(ctx, cand, job.ID))

	assert.ErrorIs(t, e.job.Save(ctx, cand, 999), ErrNotFound)
	assert.ErrorIs(t, e.job.Save(ctx, cons, job.ID), ErrForbidden)
}

func TestListIsRoleScopedAndFiltered(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c1 := e.signup(t, "one@acme.io", model.RoleConsultant)
	c2 := e.signup(t, "two@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)

	a := e.postJob(t, c1, "Go Developer", "Backend", "APIs")
	b := e.postJob(t, c2, "Data Analyst", "Analytics", "SQL")
	hidden := e.postJob(t, c1, "Old Role", "Backend", "gone")
	off := false
	_, err := e.job.Update(ctx, c1, hidden.ID, JobInput{
		Title: hidden.Title, Company: "Acme", Location: "Chennai", Experience: &hidden.Experience,
		JobType: "FT", Domain: "Backend", Skills: "go", Description: "gone", IsActive: &off,
	})
	require.NoError(t, err)

	all, err := e.job.List(ctx, cand, ListJobsInput{})
	require.NoError(t, err)
	require.Len(t, all.Jobs, 2)
	assert.Equal(t, b.ID, all.Jobs[0].ID, "newest first")

	mine, err := e.job.List(ctx, c1, ListJobsInput{Domain: "Analytics"})
	require.NoError(t, err)
	require.Len(t, mine.Jobs, 1, "consultants see their own active jobs and filters do not apply")
	assert.Equal(t, a.ID, mine.Jobs[0].ID)

	filtered, err := e.job.List(ctx, cand, ListJobsInput{Domain: "analy", JobType: "ft"})
	require.NoError(t, err)
	require.Len(t, filtered.Jobs, 1)
	assert.Equal(t, b.ID, filtered.Jobs[0].ID)

	one := 1
	none, err := e.job.List(ctx, cand, ListJobsInput{MaxExperience: &one})
	require.NoError(t, err)
	assert.Empty(t, none.Jobs)

	posted, err := e.job.Posted(ctx, c1)
	require.NoError(t, err)
	assert.Len(t, posted, 2, "posted jobs include inactive ones")
}

func TestListMarksSavedAndApplied(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cons := e.signup(t, "hr@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	e.giveResume(t, cand)
	j1 := e.postJob(t, cons, "A", "d", "x")
	j2 := e.postJob(t, cons, "B", "d", "x")

	require.NoError(t, e.job.Save(ctx, cand, j1.ID))
	_, err := e.application.Apply(ctx, cand, j2.ID, ApplyInput{})
	require.NoError(t, err)

	l, err := e.job.List(ctx, cand, ListJobsInput{})
	require.NoError(t, err)
	assert.Equal(t, []uint64{j1.ID}, l.SavedJobIDs)
	assert.Equal(t, []uint64{j2.ID}, l.AppliedJobIDs)

	d, err := e.job.Detail(ctx, cand, j2.ID)
	require.NoError(t, err)
	assert.True(t, d.Applied)
	assert.False(t, d.Saved)
	require.NotNil(t, d.Application)
	assert.Nil(t, d.ApplicantsCount)

	d, err = e.job.Detail(ctx, cons, j2.ID)
	require.NoError(t, err)
	assert.True(t, d.IsOwner)
	require.NotNil(t, d.ApplicantsCount)
	assert.Equal(t, 1, *d.ApplicantsCount)
}

func TestListPagination(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cons := e.signup(t, "hr@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	for i := 0; i < 13; i++ {
		e.postJob(t, cons, fmt.Sprintf("Job %d", i), "d", "x")
	}

	p2, err := e.job.List(ctx, cand, ListJobsInput{Page: 2})
	require.NoError(t, err)
	assert.Len(t, p2.Jobs, 6)
	assert.Equal(t, Page{Number: 2, Size: 6, Total: 13, NumPages: 3, HasNext: true, HasPrevious: true}, p2.Page)

	last, err := e.job.List(ctx, cand, ListJobsInput{Page: 40})
	require.NoError(t, err)
	assert.Equal(t, 3, last.Page.Number)
	assert.Len(t, last.Jobs, 1)
	assert.Equal(t, "Job 0", last.Jobs[0].Title)

	first, err := e.job.List(ctx, cand, ListJobsInput{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page.Number)
	assert.Equal(t, "Job 12", first.Jobs[0].Title)
}

func TestRecommended(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cons := e.signup(t, "hr@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)

	goJob := e.postJob(t, cons, "Senior Golang Engineer", "Backend", "services")
	sqlJob := e.postJob(t, cons, "Analyst", "Data", "heavy SQL reporting")
	e.postJob(t, cons, "Designer", "UX", "figma")

	empty, err := e.job.Recommended(ctx, cand, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Jobs)
	assert.Equal(t, 1, empty.Page.NumPages)

	p := e.profiles.candidates[cand.UserID]
	p.Skills = " Golang, sql ,, GOLANG"
	e.profiles.candidates[cand.UserID] = p

	rec, err := e.job.Recommended(ctx, cand, 1)
	require.NoError(t, err)
	ids := []uint64{}
	for _, j := range rec.Jobs {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []uint64{sqlJob.ID, goJob.ID}, ids)
	assert.Equal(t, RecommendedPageSize, rec.Page.Size)

	_, err = e.job.Recommended(ctx, cons, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestJobOwnershipEnforced(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.signup(t, "one@acme.io", model.RoleConsultant)
	other := e.signup(t, "two@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	job := e.postJob(t, owner, "Go", "d", "x")

	exp := 1
	in := JobInput{Title: "T", Company: "C", Location: "L", Experience: &exp, JobType: "RM", Domain: "D", Skills: "S", Description: "X"}
	_, err := e.job.Update(ctx, other, job.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, e.job.Delete(ctx, other, job.ID), ErrForbidden)
	_, err = e.job.Create(ctx, cand, in)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := e.job.Update(ctx, owner, job.ID, in)
	require.NoError(t, err)
	assert.Equal(t, model.JobRemote, updated.JobType)
	assert.True(t, updated.IsActive, "omitted is_active keeps the current value")

	require.NoError(t, e.job.Delete(ctx, owner, job.ID))
	_, err = e.job.Detail(ctx, owner, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobInputValidation(t *testing.T) {
	e := newEnv(t)
	cons := e.signup(t, "hr@acme.io", model.RoleConsultant)
	neg := -1
	_, err := e.job.Create(context.Background(), cons, JobInput{Title: " ", Experience: &neg, JobType: "XX"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	for _, f := range []string{"title", "company", "location", "domain", "skills", "description", "experience", "job_type"} {
		assert.Contains(t, ve.Fields, f)
	}
	assert.Empty(t, e.jobs.rows)
}

func TestInactiveJobHiddenFromOthers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.signup(t, "hr@acme.io", model.RoleConsultant)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	job := e.postJob(t, owner, "Go", "d", "x")
	j := e.jobs.rows[job.ID]
	j.IsActive = false
	e.jobs.rows[job.ID] = j

	_, err := e.job.Detail(ctx, cand, job.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.job.Detail(ctx, owner, job.ID)
	assert.NoError(t, err)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 4, ParsePage("4"))
	assert.Equal(t, Page{Number: 1, Size: 6, NumPages: 1}, clampPage(5, 6, 0))
}
