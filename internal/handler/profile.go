package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

// ProfileHandler reads and updates profiles. Updates are multipart forms
// so the resume and the picture can travel with the text fields.
type ProfileHandler struct {
	Profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	if profiles == nil {
		panic("nil service passed to NewProfileHandler")
	}
	return &ProfileHandler{Profiles: profiles}
}

func (h *ProfileHandler) GetCandidate(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	v, err := h.Profiles.Candidate(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ProfileHandler) UpdateCandidate(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	exp, err := optFloat("experience_years", c.FormValue("experience_years"))
	if err != nil {
		return respondError(c, err)
	}
	files, closeFiles, err := formUploads(c, "resume", "profile_image")
	if err != nil {
		return respondError(c, err)
	}
	defer closeFiles()

	ctx, cancel := withTimeout(c, uploadTimeout)
	defer cancel()
	v, err := h.Profiles.UpdateCandidate(ctx, a, service.CandidateInput{
		FirstName:       c.FormValue("first_name"),
		LastName:        c.FormValue("last_name"),
		Phone:           c.FormValue("phone"),
		Location:        c.FormValue("location"),
		ExperienceYears: exp,
		Skills:          c.FormValue("skills"),
		Bio:             c.FormValue("bio"),
		LinkedIn:        c.FormValue("linkedin"),
		GitHub:          c.FormValue("github"),
		Resume:          files["resume"],
		ProfileImage:    files["profile_image"],
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ProfileHandler) GetConsultant(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	v, err := h.Profiles.Consultant(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ProfileHandler) UpdateConsultant(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	image, closeImage, err := formUpload(c, "profile_image")
	if err != nil {
		return respondError(c, err)
	}
	defer closeImage()

	ctx, cancel := withTimeout(c, uploadTimeout)
	defer cancel()
	v, err := h.Profiles.UpdateConsultant(ctx, a, service.ConsultantInput{
		FirstName:    c.FormValue("first_name"),
		LastName:     c.FormValue("last_name"),
		Phone:        c.FormValue("phone"),
		Company:      c.FormValue("company"),
		Designation:  c.FormValue("designation"),
		Bio:          c.FormValue("bio"),
		LinkedIn:     c.FormValue("linkedin"),
		ProfileImage: image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
