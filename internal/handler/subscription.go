package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

type SubscriptionHandler struct {
	Subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(subs *service.SubscriptionService) *SubscriptionHandler {
	if subs == nil {
		panic("nil service passed to NewSubscriptionHandler")
	}
	return &SubscriptionHandler{Subscriptions: subs}
}

func (h *SubscriptionHandler) Current(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	v, err := h.Subscriptions.Current(ctx, a.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *SubscriptionHandler) Plans(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"plans": h.Subscriptions.Plans()})
}

// Upgrade opens a stub payment and returns the transaction to confirm.
func (h *SubscriptionHandler) Upgrade(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	co, err := h.Subscriptions.InitiateUpgrade(ctx, a.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, co)
}

func (h *SubscriptionHandler) Confirm(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	v, err := h.Subscriptions.ConfirmUpgrade(ctx, a.UserID, c.Param("tx"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
