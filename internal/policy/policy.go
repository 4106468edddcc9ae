// Package policy holds the permission rules of the job board as pure
// predicates over an actor and the records it wants to touch. Nothing here
// talks to storage or HTTP.
package policy

import "github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"

// Actor is the authenticated caller.
type Actor struct {
	UserID uint64
	Role   model.Role
}

func (a Actor) IsCandidate() bool  { return a.Role == model.RoleCandidate }
func (a Actor) IsConsultant() bool { return a.Role == model.RoleConsultant }
func (a Actor) IsAdmin() bool      { return a.Role == model.RoleAdmin }

func owns(a Actor, job model.Job) bool {
	return a.IsConsultant() && job.ConsultantID == a.UserID
}

func CanPostJob(a Actor) bool { return a.IsConsultant() }

func CanEditJob(a Actor, job model.Job) bool { return owns(a, job) }

func CanDeleteJob(a Actor, job model.Job) bool { return owns(a, job) }

func CanViewApplicants(a Actor, job model.Job) bool { return owns(a, job) }

// CanManageApplication covers viewing an applicant and changing the
// application or meeting state.
func CanManageApplication(a Actor, job model.Job) bool { return owns(a, job) }

// CanViewApplication lets the applicant read their own record and the job
// owner read any application on the job.
func CanViewApplication(a Actor, app model.Application, job model.Job) bool {
	return (a.IsCandidate() && app.UserID == a.UserID) || owns(a, job)
}

func CanSaveJob(a Actor) bool { return a.IsCandidate() }

// CanApply requires a candidate and an active job.
func CanApply(a Actor, job model.Job) bool { return a.IsCandidate() && job.IsActive }

func CanAskQuery(a Actor) bool { return a.IsCandidate() }

// CanViewQuery allows the asking candidate and the job owner.
func CanViewQuery(a Actor, q model.JobQuery, job model.Job) bool {
	return q.UserID == a.UserID || owns(a, job)
}

// CanReplyToQuery allows the two parties to the thread.
func CanReplyToQuery(a Actor, q model.JobQuery, job model.Job) bool {
	return CanViewQuery(a, q, job)
}

func CanResolveQuery(a Actor, job model.Job) bool { return owns(a, job) }

func CanViewQueryQueue(a Actor) bool { return a.IsConsultant() }

// CanViewJob decides whether a job detail is visible: the owner always,
// everyone else only while the job is active.
func CanViewJob(a Actor, job model.Job) bool {
	return job.IsActive || owns(a, job) || a.IsAdmin()
}

func CanAdminister(a Actor) bool { return a.IsAdmin() }
