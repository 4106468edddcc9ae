package service

import (
	"context"
	"errors"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

// TrainingService lists courses and manages enrollments. Enrollments
// reference the candidate profile, not the user.
type TrainingService struct {
	Courses       CourseStore
	Enrollments   EnrollmentStore
	Provisioner   *Provisioner
	Subscriptions *SubscriptionService
	Files         storage.Storage
}

func NewTrainingService(courses CourseStore, enrollments EnrollmentStore, subs *SubscriptionService, files storage.Storage) *TrainingService {
	if courses == nil || enrollments == nil || subs == nil || files == nil {
		panic("nil dependency passed to NewTrainingService")
	}
	return &TrainingService{
		Courses:       courses,
		Enrollments:   enrollments,
		Provisioner:   subs.Provisioner,
		Subscriptions: subs,
		Files:         files,
	}
}

type CourseList struct {
	Courses           []model.Course `json:"courses"`
	EnrolledCourseIDs []uint64       `json:"enrolled_course_ids"`
}

func (s *TrainingService) List(ctx context.Context, a policy.Actor) (CourseList, error) {
	courses, err := s.Courses.List(ctx)
	if err != nil {
		return CourseList{}, err
	}
	cp, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return CourseList{}, err
	}
	ids, err := s.Enrollments.CourseIDs(ctx, cp.ID)
	if err != nil {
		return CourseList{}, err
	}
	return CourseList{Courses: courses, EnrolledCourseIDs: orEmpty(ids)}, nil
}

type CourseDetail struct {
	Course       model.Course      `json:"course"`
	Enrollment   *model.Enrollment `json:"enrollment,omitempty"`
	Subscription SubscriptionView  `json:"subscription"`
}

func (s *TrainingService) Detail(ctx context.Context, a policy.Actor, courseID uint64) (CourseDetail, error) {
	c, err := s.Courses.GetByID(ctx, courseID)
	if err != nil {
		return CourseDetail{}, err
	}
	sub, err := s.Subscriptions.Current(ctx, a.UserID)
	if err != nil {
		return CourseDetail{}, err
	}
	out := CourseDetail{Course: c, Subscription: sub}
	e, err := s.enrollment(ctx, a, courseID)
	switch {
	case err == nil:
		out.Enrollment = &e
	case !errors.Is(err, ErrNotFound):
		return CourseDetail{}, err
	}
	return out, nil
}

// Enroll requires an active Pro plan at the moment of enrollment. An
// existing enrollment is reported through *ExistingError with the course
// id, whatever the current plan.
func (s *TrainingService) Enroll(ctx context.Context, a policy.Actor, courseID uint64) (model.Enrollment, error) {
	c, err := s.Courses.GetByID(ctx, courseID)
	if err != nil {
		return model.Enrollment{}, err
	}
	cp, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if e, err := s.Enrollments.Get(ctx, cp.ID, courseID); err == nil {
		return e, &ExistingError{Kind: "enrollment", ID: courseID}
	} else if !errors.Is(err, ErrNotFound) {
		return model.Enrollment{}, err
	}
	pro, err := s.Subscriptions.IsPro(ctx, a.UserID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if !pro {
		return model.Enrollment{}, ErrProRequired
	}
	e, err := s.Enrollments.Create(ctx, model.Enrollment{CandidateID: cp.ID, CourseID: c.ID})
	if errors.Is(err, ErrConflict) {
		return e, &ExistingError{Kind: "enrollment", ID: courseID}
	}
	return e, err
}

func (s *TrainingService) MyCourses(ctx context.Context, a policy.Actor) ([]model.Enrollment, error) {
	cp, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	return s.Enrollments.ListByCandidate(ctx, cp.ID)
}

// MyCourse returns the caller's enrollment in a course, ErrNotFound when
// there is none.
func (s *TrainingService) MyCourse(ctx context.Context, a policy.Actor, courseID uint64) (model.Enrollment, error) {
	return s.enrollment(ctx, a, courseID)
}

func (s *TrainingService) enrollment(ctx context.Context, a policy.Actor, courseID uint64) (model.Enrollment, error) {
	cp, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return model.Enrollment{}, err
	}
	return s.Enrollments.Get(ctx, cp.ID, courseID)
}

// CertificateURL is the public address of an enrollment certificate.
func (s *TrainingService) CertificateURL(e model.Enrollment) string {
	return fileURL(s.Files, e.Certificate)
}

func (s *TrainingService) CreateCourse(ctx context.Context, a policy.Actor, title, description string) (model.Course, error) {
	if !policy.CanAdminister(a) {
		return model.Course{}, ErrForbidden
	}
	fe := fieldErrors{}
	if title = strings.TrimSpace(title); title == "" {
		fe.add("title", "this field is required")
	}
	if description = strings.TrimSpace(description); description == "" {
		fe.add("description", "this field is required")
	}
	if err := fe.err(); err != nil {
		return model.Course{}, err
	}
	return s.Courses.Create(ctx, model.Course{Title: title, Description: description})
}

// EnrollmentUpdate changes only the fields that are set.
type EnrollmentUpdate struct {
	Progress    *int
	Completed   *bool
	Certificate *storage.Upload
}

func (s *TrainingService) UpdateEnrollment(ctx context.Context, a policy.Actor, enrollmentID uint64, in EnrollmentUpdate) (model.Enrollment, error) {
	if !policy.CanAdminister(a) {
		return model.Enrollment{}, ErrForbidden
	}
	e, err := s.Enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return model.Enrollment{}, invalid("progress", "must be between 0 and 100")
	}
	cert, err := prepareUpload("certificate", in.Certificate, storage.PrepareCertificate,
		func(ext string) string { return storage.CertificateKey(e.CandidateID, ext) })
	if err != nil {
		return model.Enrollment{}, err
	}

	next := e
	if in.Progress != nil {
		next.Progress = *in.Progress
	}
	if in.Completed != nil {
		next.Completed = *in.Completed
	}
	if cert != nil {
		next.Certificate = cert.key
	}
	if err := storeAll(ctx, s.Files, cert); err != nil {
		return model.Enrollment{}, err
	}
	if err := s.Enrollments.Update(ctx, next); err != nil {
		removeAll(ctx, s.Files, keysOf(cert)...)
		return model.Enrollment{}, err
	}
	if cert != nil {
		removeAll(ctx, s.Files, e.Certificate)
	}
	return next, nil
}
