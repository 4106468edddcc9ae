package service

import (
	"context"
	"time"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/queue"
)

// The interfaces below are satisfied by the repository package and by the
// in-memory fakes used in tests.

type UserStore interface {
	Create(ctx context.Context, email, password string, role model.Role, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Delete(ctx context.Context, id uint64) error
}

type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

type ProfileStore interface {
	GetCandidate(ctx context.Context, userID uint64) (model.CandidateProfile, error)
	CreateCandidate(ctx context.Context, userID uint64) (model.CandidateProfile, error)
	UpdateCandidate(ctx context.Context, p model.CandidateProfile) error
	GetConsultant(ctx context.Context, userID uint64) (model.ConsultantProfile, error)
	CreateConsultant(ctx context.Context, userID uint64) (model.ConsultantProfile, error)
	UpdateConsultant(ctx context.Context, p model.ConsultantProfile) error
}

type SubscriptionStore interface {
	Get(ctx context.Context, userID uint64) (model.Subscription, error)
	Create(ctx context.Context, s model.Subscription) (model.Subscription, error)
	Update(ctx context.Context, s model.Subscription) error
}

type JobStore interface {
	Create(ctx context.Context, j model.Job) (model.Job, error)
	GetByID(ctx context.Context, id uint64) (model.Job, error)
	Update(ctx context.Context, j model.Job) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, f model.JobFilter, limit, offset int) ([]model.Job, int, error)
}

type SavedJobStore interface {
	Save(ctx context.Context, userID, jobID uint64) error
	Remove(ctx context.Context, userID, jobID uint64) error
	IsSaved(ctx context.Context, userID, jobID uint64) (bool, error)
	JobIDs(ctx context.Context, userID uint64) ([]uint64, error)
	ListJobs(ctx context.Context, userID uint64) ([]model.Job, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, a model.Application) (model.Application, error)
	GetByID(ctx context.Context, id uint64) (model.Application, error)
	GetByUserJob(ctx context.Context, userID, jobID uint64) (model.Application, error)
	UpdateState(ctx context.Context, a model.Application) error
	ListByJob(ctx context.Context, jobID uint64) ([]model.Application, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Application, error)
	ListShortlisted(ctx context.Context, consultantID uint64) ([]model.Application, error)
	CountByJob(ctx context.Context, jobID uint64) (int, error)
	JobIDsByUser(ctx context.Context, userID uint64) ([]uint64, error)
}

type QueryStore interface {
	Create(ctx context.Context, q model.JobQuery) (model.JobQuery, error)
	GetByID(ctx context.Context, id uint64) (model.JobQuery, error)
	ListByJob(ctx context.Context, jobID, askerID uint64) ([]model.JobQuery, error)
	ListByConsultant(ctx context.Context, consultantID uint64) ([]model.JobQuery, error)
	CountUnresolved(ctx context.Context, consultantID uint64) (int, error)
	SetResolved(ctx context.Context, id uint64, resolved bool) error
	AddReply(ctx context.Context, rep model.JobQueryReply) (model.JobQueryReply, error)
	ListReplies(ctx context.Context, queryIDs []uint64) ([]model.JobQueryReply, error)
}

type CourseStore interface {
	Create(ctx context.Context, c model.Course) (model.Course, error)
	GetByID(ctx context.Context, id uint64) (model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
}

type EnrollmentStore interface {
	Create(ctx context.Context, e model.Enrollment) (model.Enrollment, error)
	GetByID(ctx context.Context, id uint64) (model.Enrollment, error)
	Get(ctx context.Context, candidateID, courseID uint64) (model.Enrollment, error)
	ListByCandidate(ctx context.Context, candidateID uint64) ([]model.Enrollment, error)
	CourseIDs(ctx context.Context, candidateID uint64) ([]uint64, error)
	Update(ctx context.Context, e model.Enrollment) error
}

type FAQStore interface {
	List(ctx context.Context) ([]model.FAQ, error)
	Create(ctx context.Context, f model.FAQ) (model.FAQ, error)
}

// PaymentGateway starts and settles upgrade payments. payment.StubGateway
// is the only implementation today.
type PaymentGateway interface {
	Initiate(ctx context.Context, userID uint64, plan model.Plan, amountCents int64) (string, error)
	Transaction(ctx context.Context, txID string) (model.PaymentTransaction, error)
	Confirm(ctx context.Context, txID string) (model.PaymentTransaction, error)
}

// EventPublisher is the subset of queue.Publisher services use.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}
