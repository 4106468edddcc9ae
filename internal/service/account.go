package service

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/queue"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/repository"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/utils"
)

// TokenSettings are the credential parameters taken from config.
type TokenSettings struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// AccountService registers users and manages their sessions.
type AccountService struct {
	Users       UserStore
	Tokens      TokenStore
	Provisioner *Provisioner
	Settings    TokenSettings
	events      emitter
}

func NewAccountService(users UserStore, tokens TokenStore, prov *Provisioner, settings TokenSettings, pub EventPublisher, log echo.Logger) *AccountService {
	if users == nil || tokens == nil || prov == nil {
		panic("nil dependency passed to NewAccountService")
	}
	return &AccountService{
		Users:       users,
		Tokens:      tokens,
		Provisioner: prov,
		Settings:    settings,
		events:      emitter{pub: pub, log: log},
	}
}

// Session is an issued access/refresh pair.
type Session struct {
	User    model.User
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
}

// Register creates the account, provisions its profile and subscription
// and signs the user in.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := model.NormalizeEmail(in.Email)
	fe := fieldErrors{}
	if email == "" || !strings.Contains(email, "@") {
		fe.add("email", "enter a valid email address")
	}
	if len(in.Password) < 8 {
		fe.add("password", "must be at least 8 characters")
	}
	if in.Password != in.PasswordConfirm {
		fe.add("password_confirm", "passwords do not match")
	}
	if err := fe.err(); err != nil {
		return Session{}, err
	}
	role := model.ParseSignupRole(in.Role)

	uid, err := s.Users.Create(ctx, email, in.Password, role, s.Settings.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return Session{}, invalid("email", "an account with this email already exists")
		}
		return Session{}, err
	}
	u := model.User{ID: uid, Email: email, Role: role, IsActive: true}
	if _, err := s.Provisioner.ProvisionAccount(ctx, u); err != nil {
		s.discard(ctx, uid)
		return Session{}, err
	}
	sess, err := s.issue(ctx, u)
	if err != nil {
		return Session{}, err
	}
	s.events.emit(ctx, queue.Event{Type: queue.UserRegistered, UserID: uid, Email: email, Role: string(role)})
	return sess, nil
}

// CreateUser adds an account with an explicit role, ADMIN included. It is
// meant for operator tooling and does not sign the user in.
func (s *AccountService) CreateUser(ctx context.Context, email, password string, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, invalid("role", "unknown role")
	}
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, invalid("email", "email and password are required")
	}
	uid, err := s.Users.Create(ctx, email, password, role, s.Settings.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{ID: uid, Email: email, Role: role, IsActive: true}
	if _, err := s.Provisioner.ProvisionAccount(ctx, u); err != nil {
		s.discard(ctx, uid)
		return model.User{}, err
	}
	return u, nil
}

// discard removes an account whose provisioning failed so the email can
// be registered again. A failed delete leaves the account in place; the
// Ensure* calls provision it on first use.
func (s *AccountService) discard(ctx context.Context, uid uint64) {
	if err := s.Users.Delete(ctx, uid); err != nil && s.events.log != nil {
		s.events.log.Warnf("discard user %d after failed provisioning: %v", uid, err)
	}
}

func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.Users.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(ctx, u)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued. Only the caller whose revoke lands gets the new pair.
func (s *AccountService) Refresh(ctx context.Context, raw string) (Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Session{}, ErrInvalidRefresh
	}
	hash := utils.HashRefreshRaw(raw)
	uid, err := s.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidRefresh
		}
		return Session{}, err
	}
	revoked, err := s.Tokens.RevokeByHash(ctx, hash)
	if err != nil {
		return Session{}, err
	}
	if !revoked {
		return Session{}, ErrInvalidRefresh
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidRefresh
		}
		return Session{}, err
	}
	if !u.IsActive {
		return Session{}, ErrInvalidRefresh
	}
	return s.issue(ctx, u)
}

// Logout revokes the given refresh token, or every token of userID when
// raw is empty.
func (s *AccountService) Logout(ctx context.Context, userID uint64, raw string) error {
	if raw = strings.TrimSpace(raw); raw != "" {
		_, err := s.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
		return err
	}
	if userID == 0 {
		return invalid("refresh_token", "refresh_token or bearer token required")
	}
	return s.Tokens.RevokeAllForUser(ctx, userID)
}

func (s *AccountService) Me(ctx context.Context, userID uint64) (model.User, error) {
	return s.Users.GetByID(ctx, userID)
}

func (s *AccountService) issue(ctx context.Context, u model.User) (Session, error) {
	access, err := utils.NewAccessToken(s.Settings.JWTSecret, u.ID, string(u.Role), s.Settings.AccessTTLMin)
	if err != nil {
		return Session{}, err
	}
	refresh, err := utils.NewRefreshToken(s.Settings.RefreshTTLDays)
	if err != nil {
		return Session{}, err
	}
	if err := s.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return Session{}, err
	}
	u.PasswordHash = ""
	return Session{User: u, Access: access, Refresh: refresh}, nil
}
