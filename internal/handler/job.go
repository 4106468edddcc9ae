package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

// JobHandler serves the job catalog, bookmarks and consultant job CRUD.
type JobHandler struct {
	Jobs *service.JobService
}

func NewJobHandler(jobs *service.JobService) *JobHandler {
	if jobs == nil {
		panic("nil service passed to NewJobHandler")
	}
	return &JobHandler{Jobs: jobs}
}

// List handles GET /v1/jobs?experience=&location=&domain=&skills=&job_type=&page=.
// An experience value that is not a number is ignored.
func (h *JobHandler) List(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	in := service.ListJobsInput{
		Location: c.QueryParam("location"),
		Domain:   c.QueryParam("domain"),
		Skills:   c.QueryParam("skills"),
		JobType:  c.QueryParam("job_type"),
		Page:     service.ParsePage(c.QueryParam("page")),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("experience"))); err == nil && n >= 0 {
		in.MaxExperience = &n
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	out, err := h.Jobs.List(ctx, a, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JobHandler) Recommended(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	out, err := h.Jobs.Recommended(ctx, a, service.ParsePage(c.QueryParam("page")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JobHandler) Detail(c echo.Context) error {
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

	d, err := h.Jobs.Detail(ctx, a, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *JobHandler) Save(c echo.Context) error {
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

	if err := h.Jobs.Save(ctx, a, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"job_id": id, "saved": true})
}

func (h *JobHandler) Unsave(c echo.Context) error {
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

	if err := h.Jobs.Unsave(ctx, a, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"job_id": id, "saved": false})
}

func (h *JobHandler) SavedJobs(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	jobs, err := h.Jobs.SavedJobs(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

func (h *JobHandler) Posted(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	jobs, err := h.Jobs.Posted(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

type jobReq struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Experience  *int   `json:"experience" validate:"required,min=0"`
	JobType     string `json:"job_type" validate:"required"`
	Domain      string `json:"domain" validate:"required"`
	Skills      string `json:"skills" validate:"required"`
	Description string `json:"description" validate:"required"`
	IsActive    *bool  `json:"is_active"`
}

func (r jobReq) input() service.JobInput {
	return service.JobInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		Experience:  r.Experience,
		JobType:     r.JobType,
		Domain:      r.Domain,
		Skills:      r.Skills,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

func (h *JobHandler) Create(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req jobReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	job, err := h.Jobs.Create(ctx, a, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req jobReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	job, err := h.Jobs.Update(ctx, a, id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c echo.Context) error {
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

	if err := h.Jobs.Delete(ctx, a, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
