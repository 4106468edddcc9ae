package service

import (
	"context"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

// ProfileService reads and edits candidate and consultant profiles.
type ProfileService struct {
	Provisioner *Provisioner
	Profiles    ProfileStore
	Files       storage.Storage
}

func NewProfileService(prov *Provisioner, files storage.Storage) *ProfileService {
	if prov == nil || files == nil {
		panic("nil dependency passed to NewProfileService")
	}
	return &ProfileService{Provisioner: prov, Profiles: prov.Profiles, Files: files}
}

type CandidateView struct {
	Profile         model.CandidateProfile `json:"profile"`
	Completeness    int                    `json:"completeness"`
	ResumeURL       string                 `json:"resume_url,omitempty"`
	ProfileImageURL string                 `json:"profile_image_url,omitempty"`
}

type ConsultantView struct {
	Profile         model.ConsultantProfile `json:"profile"`
	Completeness    int                     `json:"completeness"`
	ProfileImageURL string                  `json:"profile_image_url,omitempty"`
}

// CandidateInput replaces every text field of the profile. Files are only
// replaced when a new upload is given.
type CandidateInput struct {
	FirstName       string
	LastName        string
	Phone           string
	Location        string
	ExperienceYears *float64
	Skills          string
	Bio             string
	LinkedIn        string
	GitHub          string
	Resume          *storage.Upload
	ProfileImage    *storage.Upload
}

type ConsultantInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Company      string
	Designation  string
	Bio          string
	LinkedIn     string
	ProfileImage *storage.Upload
}

func (s *ProfileService) Candidate(ctx context.Context, a policy.Actor) (CandidateView, error) {
	p, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return CandidateView{}, err
	}
	return s.candidateView(p), nil
}

// UpdateCandidate validates everything before the first write, so a
// rejected upload leaves the stored profile untouched.
func (s *ProfileService) UpdateCandidate(ctx context.Context, a policy.Actor, in CandidateInput) (CandidateView, error) {
	if !a.IsCandidate() {
		return CandidateView{}, ErrForbidden
	}
	p, err := s.Provisioner.EnsureCandidateProfile(ctx, a.UserID)
	if err != nil {
		return CandidateView{}, err
	}

	fe := fieldErrors{}
	if in.ExperienceYears != nil && (*in.ExperienceYears < 0 || *in.ExperienceYears > 99.9) {
		fe.add("experience_years", "must be between 0 and 99.9")
	}
	resume, err := prepareUpload("resume", in.Resume, storage.PrepareResume,
		func(ext string) string { return storage.ResumeKey(a.UserID, ext) })
	if err := fe.absorb(err); err != nil {
		return CandidateView{}, err
	}
	image, err := prepareUpload("profile_image", in.ProfileImage, storage.PrepareImage,
		func(ext string) string { return storage.ProfileImageKey(a.UserID, ext) })
	if err := fe.absorb(err); err != nil {
		return CandidateView{}, err
	}
	if err := fe.err(); err != nil {
		return CandidateView{}, err
	}

	next := p
	next.FirstName = strings.TrimSpace(in.FirstName)
	next.LastName = strings.TrimSpace(in.LastName)
	next.Phone = strings.TrimSpace(in.Phone)
	next.Location = strings.TrimSpace(in.Location)
	next.ExperienceYears = in.ExperienceYears
	next.Skills = strings.TrimSpace(in.Skills)
	next.Bio = strings.TrimSpace(in.Bio)
	next.LinkedIn = strings.TrimSpace(in.LinkedIn)
	next.GitHub = strings.TrimSpace(in.GitHub)
	var replaced []string
	if resume != nil {
		next.Resume = resume.key
		replaced = append(replaced, p.Resume)
	}
	if image != nil {
		next.ProfileImage = image.key
		replaced = append(replaced, p.ProfileImage)
	}

	if err := storeAll(ctx, s.Files, resume, image); err != nil {
		return CandidateView{}, err
	}
	if err := s.Profiles.UpdateCandidate(ctx, next); err != nil {
		removeAll(ctx, s.Files, keysOf(resume, image)...)
		return CandidateView{}, err
	}
	removeAll(ctx, s.Files, replaced...)
	return s.candidateView(next), nil
}

func (s *ProfileService) Consultant(ctx context.Context, a policy.Actor) (ConsultantView, error) {
	if !a.IsConsultant() {
		return ConsultantView{}, ErrForbidden
	}
	p, err := s.Provisioner.EnsureConsultantProfile(ctx, a.UserID)
	if err != nil {
		return ConsultantView{}, err
	}
	return s.consultantView(p), nil
}

func (s *ProfileService) UpdateConsultant(ctx context.Context, a policy.Actor, in ConsultantInput) (ConsultantView, error) {
	if !a.IsConsultant() {
		return ConsultantView{}, ErrForbidden
	}
	p, err := s.Provisioner.EnsureConsultantProfile(ctx, a.UserID)
	if err != nil {
		return ConsultantView{}, err
	}
	image, err := prepareUpload("profile_image", in.ProfileImage, storage.PrepareImage,
		func(ext string) string { return storage.ConsultantImageKey(a.UserID, ext) })
	if err != nil {
		return ConsultantView{}, err
	}

	next := p
	next.FirstName = strings.TrimSpace(in.FirstName)
	next.LastName = strings.TrimSpace(in.LastName)
	next.Phone = strings.TrimSpace(in.Phone)
	next.Company = strings.TrimSpace(in.Company)
	next.Designation = strings.TrimSpace(in.Designation)
	next.Bio = strings.TrimSpace(in.Bio)
	next.LinkedIn = strings.TrimSpace(in.LinkedIn)
	if image != nil {
		next.ProfileImage = image.key
	}

	if err := storeAll(ctx, s.Files, image); err != nil {
		return ConsultantView{}, err
	}
	if err := s.Profiles.UpdateConsultant(ctx, next); err != nil {
		removeAll(ctx, s.Files, keysOf(image)...)
		return ConsultantView{}, err
	}
	if image != nil {
		removeAll(ctx, s.Files, p.ProfileImage)
	}
	return s.consultantView(next), nil
}

func (s *ProfileService) candidateView(p model.CandidateProfile) CandidateView {
	return CandidateView{
		Profile:         p,
		Completeness:    p.Completeness(),
		ResumeURL:       fileURL(s.Files, p.Resume),
		ProfileImageURL: fileURL(s.Files, p.ProfileImage),
	}
}

func (s *ProfileService) consultantView(p model.ConsultantProfile) ConsultantView {
	return ConsultantView{
		Profile:         p,
		Completeness:    p.Completeness(),
		ProfileImageURL: fileURL(s.Files, p.ProfileImage),
	}
}
