package service

import (
	"context"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
)

// QueryService handles question threads on jobs.
type QueryService struct {
	Jobs    JobStore
	Queries QueryStore
}

func NewQueryService(jobs JobStore, queries QueryStore) *QueryService {
	if jobs == nil || queries == nil {
		panic("nil dependency passed to NewQueryService")
	}
	return &QueryService{Jobs: jobs, Queries: queries}
}

// Ask opens a new query. Every question is its own thread.
func (s *QueryService) Ask(ctx context.Context, a policy.Actor, jobID uint64, question string) (model.JobQuery, error) {
	if !policy.CanAskQuery(a) {
		return model.JobQuery{}, ErrForbidden
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return model.JobQuery{}, err
	}
	if !policy.CanViewJob(a, job) {
		return model.JobQuery{}, ErrForbidden
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return model.JobQuery{}, invalid("question", "this field is required")
	}
	q, err := s.Queries.Create(ctx, model.JobQuery{JobID: jobID, UserID: a.UserID, Question: question})
	if err != nil {
		return model.JobQuery{}, err
	}
	q.Replies = []model.JobQueryReply{}
	return q, nil
}

// ForJob lists the queries on a job, newest first, each with its replies
// oldest first. The owner sees every query; a candidate sees their own.
func (s *QueryService) ForJob(ctx context.Context, a policy.Actor, jobID uint64) ([]model.JobQuery, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	var asker uint64
	switch {
	case policy.CanResolveQuery(a, job):
	case a.IsCandidate():
		asker = a.UserID
	default:
		return nil, ErrForbidden
	}
	qs, err := s.Queries.ListByJob(ctx, jobID, asker)
	if err != nil {
		return nil, err
	}
	return s.withReplies(ctx, qs)
}

// Reply appends a message to a thread. Only the asking candidate and the
// job owner may write.
func (s *QueryService) Reply(ctx context.Context, a policy.Actor, queryID uint64, message string) (model.JobQueryReply, error) {
	q, job, err := s.load(ctx, queryID)
	if err != nil {
		return model.JobQueryReply{}, err
	}
	if !policy.CanReplyToQuery(a, q, job) {
		return model.JobQueryReply{}, ErrForbidden
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return model.JobQueryReply{}, invalid("message", "this field is required")
	}
	return s.Queries.AddReply(ctx, model.JobQueryReply{QueryID: queryID, UserID: a.UserID, Message: message})
}

// ToggleResolved flips the resolved flag. Calling it twice restores the
// original state.
func (s *QueryService) ToggleResolved(ctx context.Context, a policy.Actor, queryID uint64) (model.JobQuery, error) {
	q, job, err := s.load(ctx, queryID)
	if err != nil {
		return model.JobQuery{}, err
	}
	if !policy.CanResolveQuery(a, job) {
		return model.JobQuery{}, ErrForbidden
	}
	q.IsResolved = !q.IsResolved
	if err := s.Queries.SetResolved(ctx, queryID, q.IsResolved); err != nil {
		return model.JobQuery{}, err
	}
	return q, nil
}

type QueryQueue struct {
	Queries    []model.JobQuery `json:"queries"`
	Unresolved int              `json:"unresolved"`
}

// Queue gathers the queries on all of the consultant's jobs, unresolved
// first and newest first within each group.
func (s *QueryService) Queue(ctx context.Context, a policy.Actor) (QueryQueue, error) {
	if !policy.CanViewQueryQueue(a) {
		return QueryQueue{}, ErrForbidden
	}
	qs, err := s.Queries.ListByConsultant(ctx, a.UserID)
	if err != nil {
		return QueryQueue{}, err
	}
	model.SortQueue(qs)
	qs, err = s.withReplies(ctx, qs)
	if err != nil {
		return QueryQueue{}, err
	}
	out := QueryQueue{Queries: qs}
	for _, q := range qs {
		if !q.IsResolved {
			out.Unresolved++
		}
	}
	return out, nil
}

func (s *QueryService) load(ctx context.Context, queryID uint64) (model.JobQuery, model.Job, error) {
	q, err := s.Queries.GetByID(ctx, queryID)
	if err != nil {
		return model.JobQuery{}, model.Job{}, err
	}
	job, err := s.Jobs.GetByID(ctx, q.JobID)
	if err != nil {
		return model.JobQuery{}, model.Job{}, err
	}
	return q, job, nil
}

func (s *QueryService) withReplies(ctx context.Context, qs []model.JobQuery) ([]model.JobQuery, error) {
	if len(qs) == 0 {
		return []model.JobQuery{}, nil
	}
	ids := make([]uint64, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	replies, err := s.Queries.ListReplies(ctx, ids)
	if err != nil {
		return nil, err
	}
	model.SortReplies(replies)
	byQuery := make(map[uint64][]model.JobQueryReply, len(qs))
	for _, r := range replies {
		byQuery[r.QueryID] = append(byQuery[r.QueryID], r)
	}
	for i := range qs {
		qs[i].Replies = byQuery[qs[i].ID]
		if qs[i].Replies == nil {
			qs[i].Replies = []model.JobQueryReply{}
		}
	}
	return qs, nil
}
