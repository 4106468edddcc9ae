package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/middleware"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
)

// AuthHandler serves registration and the session endpoints.
type AuthHandler struct {
	Accounts *service.AccountService
}

func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	if accounts == nil {
		panic("nil service passed to NewAuthHandler")
	}
	return &AuthHandler{Accounts: accounts}
}

type registerReq struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role"` // CANDIDATE | CONSULTANT
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func sessionResp(s service.Session) authResp {
	return authResp{
		User:    userPart{ID: s.User.ID, Email: s.User.Email, Role: string(s.User.Role)},
		Access:  tokenPart{Token: s.Access.Token, Expires: s.Access.Exp},
		Refresh: tokenPart{Token: s.Refresh.Raw, Expires: s.Refresh.Exp},
	}
}

// Register creates the account and returns a session right away.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	sess, err := h.Accounts.Register(ctx, service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, sessionResp(sess))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	sess, err := h.Accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp(sess))
}

// Refresh rotates the refresh token and returns a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	sess, err := h.Accounts.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sessionResp(sess))
}

// Logout revokes the refresh token in the body, or every session of the
// bearer when the body has none. It runs behind OptionalJWT.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	uid, _ := middleware.UserID(c)

	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()
	if err := h.Accounts.Logout(ctx, uid, req.RefreshToken); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	u, err := h.Accounts.Me(ctx, a.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Email: u.Email, Role: string(u.Role)})
}
