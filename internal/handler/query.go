package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

type QueryHandler struct {
	Queries *service.QueryService
}

func NewQueryHandler(queries *service.QueryService) *QueryHandler {
	if queries == nil {
		panic("nil service passed to NewQueryHandler")
	}
	return &QueryHandler{Queries: queries}
}

type askReq struct {
	Question string `json:"question" form:"question" validate:"required"`
}

type replyReq struct {
	Message string `json:"message" form:"message" validate:"required"`
}

func (h *QueryHandler) ForJob(c echo.Context) error {
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

	qs, err := h.Queries.ForJob(ctx, a, jobID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"queries": qs})
}

func (h *QueryHandler) Ask(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req askReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	q, err := h.Queries.Ask(ctx, a, jobID, req.Question)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, q)
}

func (h *QueryHandler) Reply(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req replyReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	r, err := h.Queries.Reply(ctx, a, id, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *QueryHandler) Resolve(c echo.Context) error {
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

	q, err := h.Queries.ToggleResolved(ctx, a, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *QueryHandler) Queue(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	q, err := h.Queries.Queue(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
