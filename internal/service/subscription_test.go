package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

func TestUpgradeGrantsProForThirtyDays(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cand := e.signup(t, "c@x.io", model.RoleCandidate)

	cur, err := e.subscription.Current(ctx, cand.UserID)
	require.NoError(t, err)
	assert.False(t, cur.IsPro)
	assert.Nil(t, cur.DaysLeft)

	co, err := e.subscription.InitiateUpgrade(ctx, cand.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(49900), co.AmountCents)
	assert.Equal(t, model.PlanPro, co.Plan)

	v, err := e.subscription.ConfirmUpgrade(ctx, cand.UserID, co.TransactionID)
	require.NoError(t, err)
	assert.True(t, v.IsPro)
	require.NotNil(t, v.DaysLeft)
	assert.Equal(t, 30, *v.DaysLeft)
	require.NotNil(t, v.Subscription.EndDate)
	assert.Equal(t, epoch.AddDate(0, 0, 30), *v.Subscription.EndDate)

	again, err := e.subscription.ConfirmUpgrade(ctx, cand.UserID, co.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, v.Subscription.EndDate, again.Subscription.EndDate, "confirming twice does not extend")

	_, err = e.subscription.InitiateUpgrade(ctx, cand.UserID)
	assert.ErrorIs(t, err, ErrAlreadyPro)

	e.now = epoch.AddDate(0, 0, 31)
	pro, err := e.subscription.IsPro(ctx, cand.UserID)
	require.NoError(t, err)
	assert.False(t, pro, "Pro lapses after its end date")
}

func TestConfirmUpgradeGuards(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.signup(t, "a@x.io", model.RoleCandidate)
	b := e.signup(t, "b@x.io", model.RoleCandidate)

	co, err := e.subscription.InitiateUpgrade(ctx, a.UserID)
	require.NoError(t, err)
	_, err = e.subscription.ConfirmUpgrade(ctx, b.UserID, co.TransactionID)
	assert.ErrorIs(t, err, ErrForbidden)
	pro, _ := e.subscription.IsPro(ctx, b.UserID)
	assert.False(t, pro)

	_, err = e.subscription.ConfirmUpgrade(ctx, a.UserID, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.subscription.ConfirmUpgrade(ctx, a.UserID, "0b4e7a0e-5e5c-4bb8-9d3c-3f2f1b1f6e55")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriptionEnsuredForLegacyAccounts(t *testing.T) {
	e := newEnv(t)
	cons := e.signup(t, "hr@acme.io", model.RoleConsultant)
	v, err := e.subscription.Current(context.Background(), cons.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, v.Subscription.Plan)
	assert.Contains(t, e.subs.rows, cons.UserID)
}

func TestPlans(t *testing.T) {
	e := newEnv(t)
	plans := e.subscription.Plans()
	require.Len(t, plans, 2)
	assert.Equal(t, model.PlanFree, plans[0].Plan)
	assert.Equal(t, int64(49900), plans[1].PriceCents)
	assert.Equal(t, 30, plans[1].DurationDays)
}

func upgrade(t *testing.T, e *env, userID uint64) {
	t.Helper()
	co, err := e.subscription.InitiateUpgrade(context.Background(), userID)
	require.NoError(t, err)
	_, err = e.subscription.ConfirmUpgrade(context.Background(), userID, co.TransactionID)
	require.NoError(t, err)
}

func TestEnrollRequiresPro(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	adm := e.admin(t)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	course, err := e.training.CreateCourse(ctx, adm, "Go in Production", "Services and tooling")
	require.NoError(t, err)

	_, err = e.training.Enroll(ctx, cand, course.ID)
	assert.ErrorIs(t, err, ErrProRequired)
	assert.Empty(t, e.enrollments.rows)

	upgrade(t, e, cand.UserID)
	en, err := e.training.Enroll(ctx, cand, course.ID)
	require.NoError(t, err)
	assert.Equal(t, e.profiles.candidates[cand.UserID].ID, en.CandidateID)

	_, err = e.training.Enroll(ctx, cand, course.ID)
	var ex *ExistingError
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, course.ID, ex.ID)
	assert.Len(t, e.enrollments.rows, 1)

	// An existing enrollment is reported even after Pro lapses.
	e.now = epoch.Add(60 * 24 * time.Hour)
	_, err = e.training.Enroll(ctx, cand, course.ID)
	require.ErrorAs(t, err, &ex)

	_, err = e.training.Enroll(ctx, cand, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := e.training.List(ctx, cand)
	require.NoError(t, err)
	assert.Equal(t, []uint64{course.ID}, list.EnrolledCourseIDs)

	d, err := e.training.Detail(ctx, cand, course.ID)
	require.NoError(t, err)
	require.NotNil(t, d.Enrollment)
	assert.False(t, d.Subscription.IsPro)
}

func TestMyCourseAndAdminUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	adm := e.admin(t)
	cand := e.signup(t, "c@x.io", model.RoleCandidate)
	course, err := e.training.CreateCourse(ctx, adm, "SQL", "Joins")
	require.NoError(t, err)

	_, err = e.training.MyCourse(ctx, cand, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	upgrade(t, e, cand.UserID)
	en, err := e.training.Enroll(ctx, cand, course.ID)
	require.NoError(t, err)

	bad := 101
	_, err = e.training.UpdateEnrollment(ctx, adm, en.ID, EnrollmentUpdate{Progress: &bad})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = e.training.UpdateEnrollment(ctx, cand, en.ID, EnrollmentUpdate{})
	assert.ErrorIs(t, err, ErrForbidden)

	progress, done := 100, true
	got, err := e.training.UpdateEnrollment(ctx, adm, en.ID, EnrollmentUpdate{
		Progress: &progress, Completed: &done, Certificate: pdfUpload(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.True(t, got.Completed)
	assert.Contains(t, got.Certificate, "certificates/candidate_")
	assert.Equal(t, "/media/"+got.Certificate, e.training.CertificateURL(got))

	mine, err := e.training.MyCourses(ctx, cand)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Completed)

	_, err = e.training.CreateCourse(ctx, cand, "x", "y")
	assert.ErrorIs(t, err, ErrForbidden)
}
