package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

type ApplicationHandler struct {
	Applications *service.ApplicationService
}

func NewApplicationHandler(apps *service.ApplicationService) *ApplicationHandler {
	if apps == nil {
		panic("nil service passed to NewApplicationHandler")
	}
	return &ApplicationHandler{Applications: apps}
}

// Apply handles the multipart POST /v1/jobs/:id/apply with an optional
// resume file and cover_letter. Applying twice answers 303 with the
// existing application.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resume, closeResume, err := formUpload(c, "resume")
	if err != nil {
		return respondError(c, err)
	}
	defer closeResume()

	ctx, cancel := withTimeout(c, uploadTimeout)
	defer cancel()
	app, err := h.Applications.Apply(ctx, a, jobID, service.ApplyInput{
		CoverLetter: c.FormValue("cover_letter"),
		Resume:      resume,
	})
	var ex *service.ExistingError
	switch {
	case errors.As(err, &ex):
		return seeOther(c, existingLocation(ex), app)
	case err != nil:
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

// Get is the applicant's own view of an application.
func (h *ApplicationHandler) Get(c echo.Context) error {
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

	v, err := h.Applications.Get(ctx, a, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApplicationHandler) Mine(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	apps, err := h.Applications.Mine(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

func (h *ApplicationHandler) Applicants(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	out, err := h.Applications.Applicants(ctx, a, jobID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) Applicant(c echo.Context) error {
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

	v, err := h.Applications.Applicant(ctx, a, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type actionReq struct {
	Action          string `json:"action" form:"action"`
	MeetingDatetime string `json:"meeting_datetime" form:"meeting_datetime"`
}

// meetingTimeFor parses meeting_datetime for the actions that use it and
// ignores it for every other action.
func meetingTimeFor(action model.ApplicantAction, raw string) (*time.Time, error) {
	if !action.TakesMeetingTime() {
		return nil, nil
	}
	return parseMeetingTime(raw)
}

// Act handles POST /v1/applicants/:id. Unknown or empty actions leave the
// application unchanged and still answer 200.
func (h *ApplicationHandler) Act(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req actionReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	action := model.ApplicantAction(req.Action)
	at, err := meetingTimeFor(action, req.MeetingDatetime)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	v, err := h.Applications.Act(ctx, a, id, action, at)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApplicationHandler) Shortlisted(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	apps, err := h.Applications.Shortlisted(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}
