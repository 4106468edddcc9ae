package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

type DashboardHandler struct {
	Dashboards *service.DashboardService
}

func NewDashboardHandler(d *service.DashboardService) *DashboardHandler {
	if d == nil {
		panic("nil service passed to NewDashboardHandler")
	}
	return &DashboardHandler{Dashboards: d}
}

// Show returns the dashboard for the caller's role.
func (h *DashboardHandler) Show(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	d, err := h.Dashboards.Build(ctx, a)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
