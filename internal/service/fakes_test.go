package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/payment"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/queue"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/repository"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/utils"
)

// The fakes mimic the repository contracts: sentinel errors, unique keys
// and ordering.

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]model.User
}

func (f *fakeUsers) Create(_ context.Context, email, password string, role model.Role, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = model.NormalizeEmail(email)
	for _, u := range f.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.byID[f.nextID] = model.User{ID: f.nextID, Email: email, PasswordHash: hash, Role: role, IsActive: true}
	return f.nextID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == model.NormalizeEmail(email) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeTokens struct {
	rows map[string]uint64
}

func (f *fakeTokens) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	f.rows[hash] = userID
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	id, ok := f.rows[hash]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) (bool, error) {
	_, ok := f.rows[hash]
	delete(f.rows, hash)
	return ok, nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	for h, id := range f.rows {
		if id == userID {
			delete(f.rows, h)
		}
	}
	return nil
}

type fakeProfiles struct {
	mu          sync.Mutex
	nextID      uint64
	candidates  map[uint64]model.CandidateProfile
	consultants map[uint64]model.ConsultantProfile
	// hideOnce makes the next GetCandidate miss, as if another request
	// inserted the row right after our read.
	hideOnce bool
	// createErr fails every CreateCandidate call.
	createErr error
}

func (f *fakeProfiles) GetCandidate(_ context.Context, userID uint64) (model.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideOnce {
		f.hideOnce = false
		return model.CandidateProfile{}, repository.ErrNotFound
	}
	p, ok := f.candidates[userID]
	if !ok {
		return p, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) CreateCandidate(_ context.Context, userID uint64) (model.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.CandidateProfile{}, f.createErr
	}
	if _, ok := f.candidates[userID]; ok {
		return model.CandidateProfile{}, repository.ErrConflict
	}
	f.nextID++
	// Offset so profile ids never coincide with user ids.
	p := model.CandidateProfile{ID: f.nextID + 100, UserID: userID}
	f.candidates[userID] = p
	return p, nil
}

func (f *fakeProfiles) UpdateCandidate(_ context.Context, p model.CandidateProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.candidates[p.UserID]; !ok {
		return repository.ErrNotFound
	}
	f.candidates[p.UserID] = p
	return nil
}

func (f *fakeProfiles) GetConsultant(_ context.Context, userID uint64) (model.ConsultantProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.consultants[userID]
	if !ok {
		return p, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) CreateConsultant(_ context.Context, userID uint64) (model.ConsultantProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.consultants[userID]; ok {
		return model.ConsultantProfile{}, repository.ErrConflict
	}
	f.nextID++
	p := model.ConsultantProfile{ID: f.nextID, UserID: userID}
	f.consultants[userID] = p
	return p, nil
}

func (f *fakeProfiles) UpdateConsultant(_ context.Context, p model.ConsultantProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.consultants[p.UserID]; !ok {
		return repository.ErrNotFound
	}
	f.consultants[p.UserID] = p
	return nil
}

type fakeSubs struct {
	mu   sync.Mutex
	rows map[uint64]model.Subscription
}

func (f *fakeSubs) Get(_ context.Context, userID uint64) (model.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[userID]
	if !ok {
		return s, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubs) Create(_ context.Context, s model.Subscription) (model.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[s.UserID]; ok {
		return model.Subscription{}, repository.ErrConflict
	}
	s.ID = uint64(len(f.rows) + 1)
	f.rows[s.UserID] = s
	return s, nil
}

func (f *fakeSubs) Update(_ context.Context, s model.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[s.UserID] = s
	return nil
}

type fakeJobs struct {
	nextID uint64
	rows   map[uint64]model.Job
}

func (f *fakeJobs) Create(_ context.Context, j model.Job) (model.Job, error) {
	f.nextID++
	j.ID = f.nextID
	if j.PostedOn.IsZero() {
		j.PostedOn = epoch.Add(time.Duration(j.ID) * time.Minute)
	}
	f.rows[j.ID] = j
	return j, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id uint64) (model.Job, error) {
	j, ok := f.rows[id]
	if !ok {
		return j, repository.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobs) Update(_ context.Context, j model.Job) error {
	if _, ok := f.rows[j.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[j.ID] = j
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeJobs) List(_ context.Context, flt model.JobFilter, limit, offset int) ([]model.Job, int, error) {
	has := func(field, sub string) bool {
		return strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}
	var all []model.Job
	for _, j := range f.rows {
		switch {
		case flt.ActiveOnly && !j.IsActive,
			flt.ConsultantID != 0 && j.ConsultantID != flt.ConsultantID,
			flt.MaxExperience != nil && j.Experience > *flt.MaxExperience,
			flt.Location != "" && !has(j.Location, flt.Location),
			flt.Domain != "" && !has(j.Domain, flt.Domain),
			flt.Skills != "" && !has(j.Skills, flt.Skills),
			flt.JobType != "" && j.JobType != flt.JobType:
			continue
		}
		if len(flt.AnySkill) > 0 {
			hit := false
			for _, s := range flt.AnySkill {
				if has(j.Title, s) || has(j.Domain, s) || has(j.Description, s) {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		all = append(all, j)
	}
	sort.Slice(all, func(a, b int) bool {
		if !all[a].PostedOn.Equal(all[b].PostedOn) {
			return all[a].PostedOn.After(all[b].PostedOn)
		}
		return all[a].ID > all[b].ID
	})
	total := len(all)
	if limit > 0 {
		if offset > total {
			offset = total
		}
		end := min(offset+limit, total)
		all = all[offset:end]
	}
	if all == nil {
		all = []model.Job{}
	}
	return all, total, nil
}

type fakeSaved struct {
	jobs *fakeJobs
	rows map[[2]uint64]bool
}

func (f *fakeSaved) Save(_ context.Context, userID, jobID uint64) error {
	f.rows[[2]uint64{userID, jobID}] = true
	return nil
}

func (f *fakeSaved) Remove(_ context.Context, userID, jobID uint64) error {
	delete(f.rows, [2]uint64{userID, jobID})
	return nil
}

func (f *fakeSaved) IsSaved(_ context.Context, userID, jobID uint64) (bool, error) {
	return f.rows[[2]uint64{userID, jobID}], nil
}

func (f *fakeSaved) JobIDs(_ context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	for k := range f.rows {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeSaved) ListJobs(ctx context.Context, userID uint64) ([]model.Job, error) {
	ids, _ := f.JobIDs(ctx, userID)
	out := []model.Job{}
	for _, id := range ids {
		if j, ok := f.jobs.rows[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeApps struct {
	nextID uint64
	jobs   *fakeJobs
	users  *fakeUsers
	rows   map[uint64]model.Application
}

func (f *fakeApps) decorate(a model.Application) model.Application {
	a.JobTitle = f.jobs.rows[a.JobID].Title
	if u, ok := f.users.byID[a.UserID]; ok {
		a.ApplicantEmail = u.Email
	}
	return a
}

func (f *fakeApps) Create(_ context.Context, a model.Application) (model.Application, error) {
	for _, r := range f.rows {
		if r.UserID == a.UserID && r.JobID == a.JobID {
			return model.Application{}, repository.ErrConflict
		}
	}
	f.nextID++
	a.ID = f.nextID
	a.AppliedAt = epoch.Add(time.Duration(a.ID) * time.Minute)
	f.rows[a.ID] = a
	return f.decorate(a), nil
}

func (f *fakeApps) GetByID(_ context.Context, id uint64) (model.Application, error) {
	a, ok := f.rows[id]
	if !ok {
		return a, repository.ErrNotFound
	}
	return f.decorate(a), nil
}

func (f *fakeApps) GetByUserJob(_ context.Context, userID, jobID uint64) (model.Application, error) {
	for _, a := range f.rows {
		if a.UserID == userID && a.JobID == jobID {
			return f.decorate(a), nil
		}
	}
	return model.Application{}, repository.ErrNotFound
}

func (f *fakeApps) UpdateState(_ context.Context, a model.Application) error {
	cur, ok := f.rows[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Status, cur.MeetingStatus, cur.MeetingDatetime = a.Status, a.MeetingStatus, a.MeetingDatetime
	f.rows[a.ID] = cur
	return nil
}

func (f *fakeApps) filter(keep func(model.Application) bool) []model.Application {
	out := []model.Application{}
	for _, a := range f.rows {
		if keep(a) {
			out = append(out, f.decorate(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeApps) ListByJob(_ context.Context, jobID uint64) ([]model.Application, error) {
	return f.filter(func(a model.Application) bool { return a.JobID == jobID }), nil
}

func (f *fakeApps) ListByUser(_ context.Context, userID uint64) ([]model.Application, error) {
	return f.filter(func(a model.Application) bool { return a.UserID == userID }), nil
}

func (f *fakeApps) ListShortlisted(_ context.Context, consultantID uint64) ([]model.Application, error) {
	return f.filter(func(a model.Application) bool {
		return a.Status == model.StatusShortlisted && f.jobs.rows[a.JobID].ConsultantID == consultantID
	}), nil
}

func (f *fakeApps) CountByJob(ctx context.Context, jobID uint64) (int, error) {
	l, _ := f.ListByJob(ctx, jobID)
	return len(l), nil
}

func (f *fakeApps) JobIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	l, _ := f.ListByUser(ctx, userID)
	var ids []uint64
	for _, a := range l {
		ids = append(ids, a.JobID)
	}
	return ids, nil
}

type fakeQueries struct {
	nextID      uint64
	nextReplyID uint64
	jobs        *fakeJobs
	rows        map[uint64]model.JobQuery
	replies     []model.JobQueryReply
	clock       time.Time
}

func (f *fakeQueries) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeQueries) Create(_ context.Context, q model.JobQuery) (model.JobQuery, error) {
	f.nextID++
	q.ID = f.nextID
	q.CreatedAt = f.tick()
	f.rows[q.ID] = q
	return q, nil
}

func (f *fakeQueries) GetByID(_ context.Context, id uint64) (model.JobQuery, error) {
	q, ok := f.rows[id]
	if !ok {
		return q, repository.ErrNotFound
	}
	return q, nil
}

func (f *fakeQueries) newestFirst(keep func(model.JobQuery) bool) []model.JobQuery {
	out := []model.JobQuery{}
	for _, q := range f.rows {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeQueries) ListByJob(_ context.Context, jobID, askerID uint64) ([]model.JobQuery, error) {
	return f.newestFirst(func(q model.JobQuery) bool {
		return q.JobID == jobID && (askerID == 0 || q.UserID == askerID)
	}), nil
}

// ListByConsultant deliberately returns plain newest-first order so the
// service's own queue ordering is what the tests observe.
func (f *fakeQueries) ListByConsultant(_ context.Context, consultantID uint64) ([]model.JobQuery, error) {
	return f.newestFirst(func(q model.JobQuery) bool {
		return f.jobs.rows[q.JobID].ConsultantID == consultantID
	}), nil
}

func (f *fakeQueries) CountUnresolved(ctx context.Context, consultantID uint64) (int, error) {
	qs, _ := f.ListByConsultant(ctx, consultantID)
	n := 0
	for _, q := range qs {
		if !q.IsResolved {
			n++
		}
	}
	return n, nil
}

func (f *fakeQueries) SetResolved(_ context.Context, id uint64, resolved bool) error {
	q, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.IsResolved = resolved
	f.rows[id] = q
	return nil
}

func (f *fakeQueries) AddReply(_ context.Context, r model.JobQueryReply) (model.JobQueryReply, error) {
	f.nextReplyID++
	r.ID = f.nextReplyID
	r.CreatedAt = f.tick()
	f.replies = append(f.replies, r)
	return r, nil
}

// ListReplies returns replies newest first; the service must reorder.
func (f *fakeQueries) ListReplies(_ context.Context, ids []uint64) ([]model.JobQueryReply, error) {
	want := map[uint64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []model.JobQueryReply{}
	for i := len(f.replies) - 1; i >= 0; i-- {
		if want[f.replies[i].QueryID] {
			out = append(out, f.replies[i])
		}
	}
	return out, nil
}

type fakeCourses struct {
	rows []model.Course
}

func (f *fakeCourses) Create(_ context.Context, c model.Course) (model.Course, error) {
	c.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, c)
	return c, nil
}

func (f *fakeCourses) GetByID(_ context.Context, id uint64) (model.Course, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Course{}, repository.ErrNotFound
}

func (f *fakeCourses) List(context.Context) ([]model.Course, error) {
	return append([]model.Course{}, f.rows...), nil
}

type fakeEnrollments struct {
	rows []model.Enrollment
}

func (f *fakeEnrollments) Create(_ context.Context, e model.Enrollment) (model.Enrollment, error) {
	for _, r := range f.rows {
		if r.CandidateID == e.CandidateID && r.CourseID == e.CourseID {
			return model.Enrollment{}, repository.ErrConflict
		}
	}
	e.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, e)
	return e, nil
}

func (f *fakeEnrollments) GetByID(_ context.Context, id uint64) (model.Enrollment, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Enrollment{}, repository.ErrNotFound
}

func (f *fakeEnrollments) Get(_ context.Context, candidateID, courseID uint64) (model.Enrollment, error) {
	for _, r := range f.rows {
		if r.CandidateID == candidateID && r.CourseID == courseID {
			return r, nil
		}
	}
	return model.Enrollment{}, repository.ErrNotFound
}

func (f *fakeEnrollments) ListByCandidate(_ context.Context, candidateID uint64) ([]model.Enrollment, error) {
	out := []model.Enrollment{}
	for _, r := range f.rows {
		if r.CandidateID == candidateID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEnrollments) CourseIDs(ctx context.Context, candidateID uint64) ([]uint64, error) {
	l, _ := f.ListByCandidate(ctx, candidateID)
	var ids []uint64
	for _, e := range l {
		ids = append(ids, e.CourseID)
	}
	return ids, nil
}

func (f *fakeEnrollments) Update(_ context.Context, e model.Enrollment) error {
	for i, r := range f.rows {
		if r.ID == e.ID {
			f.rows[i] = e
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeFAQs struct {
	rows []model.FAQ
}

func (f *fakeFAQs) List(context.Context) ([]model.FAQ, error) {
	return append([]model.FAQ{}, f.rows...), nil
}

func (f *fakeFAQs) Create(_ context.Context, q model.FAQ) (model.FAQ, error) {
	q.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, q)
	return q, nil
}

type fakePayments struct {
	rows map[string]model.PaymentTransaction
}

func (f *fakePayments) Create(_ context.Context, tx model.PaymentTransaction) error {
	f.rows[tx.ID] = tx
	return nil
}

func (f *fakePayments) Get(_ context.Context, id string) (model.PaymentTransaction, error) {
	tx, ok := f.rows[id]
	if !ok {
		return tx, repository.ErrNotFound
	}
	return tx, nil
}

func (f *fakePayments) MarkConfirmed(_ context.Context, id string, at time.Time) (bool, error) {
	tx, ok := f.rows[id]
	if !ok || tx.Status == model.PaymentConfirmed {
		return false, nil
	}
	tx.Status = model.PaymentConfirmed
	tx.ConfirmedAt = &at
	f.rows[id] = tx
	return true, nil
}

type memFiles struct {
	data map[string][]byte
}

func (m *memFiles) Save(_ context.Context, key string, r io.Reader, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memFiles) URL(key string) string { return "/media/" + key }

type capturePublisher struct {
	events []queue.Event
}

func (c *capturePublisher) Publish(_ context.Context, ev queue.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func (c *capturePublisher) types() []queue.EventType {
	var out []queue.EventType
	for _, e := range c.events {
		out = append(out, e.Type)
	}
	return out
}

// env wires every service over the fakes.
type env struct {
	users       *fakeUsers
	tokens      *fakeTokens
	profiles    *fakeProfiles
	subs        *fakeSubs
	jobs        *fakeJobs
	saved       *fakeSaved
	apps        *fakeApps
	queries     *fakeQueries
	courses     *fakeCourses
	enrollments *fakeEnrollments
	faqs        *fakeFAQs
	files       *memFiles
	events      *capturePublisher
	now         time.Time

	prov         *Provisioner
	account      *AccountService
	profile      *ProfileService
	job          *JobService
	application  *ApplicationService
	query        *QueryService
	subscription *SubscriptionService
	training     *TrainingService
	chatbot      *ChatbotService
	dashboard    *DashboardService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		users:       &fakeUsers{byID: map[uint64]model.User{}},
		tokens:      &fakeTokens{rows: map[string]uint64{}},
		profiles:    &fakeProfiles{candidates: map[uint64]model.CandidateProfile{}, consultants: map[uint64]model.ConsultantProfile{}},
		subs:        &fakeSubs{rows: map[uint64]model.Subscription{}},
		jobs:        &fakeJobs{rows: map[uint64]model.Job{}},
		courses:     &fakeCourses{},
		enrollments: &fakeEnrollments{},
		faqs:        &fakeFAQs{},
		files:       &memFiles{data: map[string][]byte{}},
		events:      &capturePublisher{},
		now:         epoch,
	}
	e.saved = &fakeSaved{jobs: e.jobs, rows: map[[2]uint64]bool{}}
	e.apps = &fakeApps{jobs: e.jobs, users: e.users, rows: map[uint64]model.Application{}}
	e.queries = &fakeQueries{jobs: e.jobs, rows: map[uint64]model.JobQuery{}, clock: epoch}
	clock := func() time.Time { return e.now }

	e.prov = NewProvisioner(e.profiles, e.subs)
	e.prov.Now = clock
	settings := TokenSettings{JWTSecret: "s3cret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: bcrypt.MinCost}
	e.account = NewAccountService(e.users, e.tokens, e.prov, settings, e.events, nil)
	e.profile = NewProfileService(e.prov, e.files)
	e.job = NewJobService(e.jobs, e.saved, e.apps, e.prov)
	e.application = NewApplicationService(e.jobs, e.apps, e.users, e.prov, e.files, e.events, nil)
	e.query = NewQueryService(e.jobs, e.queries)
	e.subscription = NewSubscriptionService(e.prov, payment.NewStubGateway(&fakePayments{rows: map[string]model.PaymentTransaction{}}), 30, 49900)
	e.subscription.Now = clock
	e.training = NewTrainingService(e.courses, e.enrollments, e.subscription, e.files)
	e.chatbot = NewChatbotService(e.faqs, e.users, e.subscription)
	e.dashboard = NewDashboardService(e.prov, e.jobs, e.saved, e.apps, e.queries, e.enrollments, e.subscription)
	return e
}

// signup registers an account through the real flow and returns its actor.
func (e *env) signup(t *testing.T, email string, role model.Role) policy.Actor {
	t.Helper()
	sess, err := e.account.Register(context.Background(), RegisterInput{
		Email: email, Password: "password1", PasswordConfirm: "password1", Role: string(role),
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return policy.Actor{UserID: sess.User.ID, Role: sess.User.Role}
}

func (e *env) admin(t *testing.T) policy.Actor {
	t.Helper()
	u, err := e.account.CreateUser(context.Background(), "admin@vetri.io", "password1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return policy.Actor{UserID: u.ID, Role: u.Role}
}

func (e *env) postJob(t *testing.T, owner policy.Actor, title, domain, description string) model.Job {
	t.Helper()
	exp := 2
	j, err := e.job.Create(context.Background(), owner, JobInput{
		Title: title, Company: "Acme", Location: "Chennai", Experience: &exp, JobType: "FT",
		Domain: domain, Skills: "go", Description: description,
	})
	if err != nil {
		t.Fatalf("post job: %v", err)
	}
	return j
}

func (e *env) giveResume(t *testing.T, a policy.Actor) {
	t.Helper()
	p := e.profiles.candidates[a.UserID]
	p.Resume = "resumes/user_1/cv.pdf"
	e.profiles.candidates[a.UserID] = p
}

func pdfUpload(size int) *storage.Upload {
	body := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), size)...)
	return &storage.Upload{Filename: "cv.pdf", Size: int64(len(body)), Content: bytes.NewReader(body)}
}
