package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

type TrainingHandler struct {
	Training *service.TrainingService
}

func NewTrainingHandler(training *service.TrainingService) *TrainingHandler {
	if training == nil {
		panic("nil service passed to NewTrainingHandler")
	}
	return &TrainingHandler{Training: training}
}

type enrollmentResp struct {
	model.Enrollment
	CertificateURL string `json:"certificate_url,omitempty"`
}

func (h *TrainingHandler) withURL(e model.Enrollment) enrollmentResp {
	return enrollmentResp{Enrollment: e, CertificateURL: h.Training.CertificateURL(e)}
}

func (h *TrainingHandler) List(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	out, err := h.Training.List(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TrainingHandler) Detail(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	out, err := h.Training.Detail(ctx, a, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Enroll answers 201 on a new enrollment, 303 to the existing one and
// 403 with the plans page when the caller is not Pro.
func (h *TrainingHandler) Enroll(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	e, err := h.Training.Enroll(ctx, a, id)
	var ex *service.ExistingError
	switch {
	case errors.As(err, &ex):
		return seeOther(c, existingLocation(ex), h.withURL(e))
	case err != nil:
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, h.withURL(e))
}

func (h *TrainingHandler) MyCourses(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	list, err := h.Training.MyCourses(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]enrollmentResp, 0, len(list))
	for _, e := range list {
		out = append(out, h.withURL(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"enrollments": out})
}

func (h *TrainingHandler) MyCourse(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	e, err := h.Training.MyCourse(ctx, a, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.withURL(e))
}

type courseReq struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

func (h *TrainingHandler) CreateCourse(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req courseReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	course, err := h.Training.CreateCourse(ctx, a, req.Title, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, course)
}

// UpdateEnrollment reads a multipart form with optional progress,
// completed and certificate fields.
func (h *TrainingHandler) UpdateEnrollment(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	progress, err := optInt("progress", c.FormValue("progress"))
	if err != nil {
		return respondError(c, err)
	}
	completed, err := optBool("completed", c.FormValue("completed"))
	if err != nil {
		return respondError(c, err)
	}
	cert, closeCert, err := formUpload(c, "certificate")
	if err != nil {
		return respondError(c, err)
	}
	defer closeCert()

	ctx, cancel := withTimeout(c, uploadTimeout)
	defer cancel()
	e, err := h.Training.UpdateEnrollment(ctx, a, id, service.EnrollmentUpdate{
		Progress:    progress,
		Completed:   completed,
		Certificate: cert,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.withURL(e))
}
