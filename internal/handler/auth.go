package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsense/eventsense-api/internal/config"
	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/repository"
	"github.com/eventsense/eventsense-api/internal/utils"
)

// AuthHandler bundles dependencies for registration, login, token rotation
// and profile endpoints.
type AuthHandler struct {
	responder
	Cfg      config.Config
	Accounts *repository.AccountRepo
	Tokens   *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, accounts *repository.AccountRepo, tokens *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{responder: responder{Env: cfg.Env}, Cfg: cfg, Accounts: accounts, Tokens: tokens}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // user | organizer
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// issueTokens creates an access/refresh pair for an account and stores the
// refresh token hash.
func (h *AuthHandler) issueTokens(ctx context.Context, accountID uint64, role string) (tokenPart, tokenPart, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, accountID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	return tokenPart{Token: access.Token, Expires: access.Exp},
		tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, nil // raw back to client
}

// Register handles POST /v1/auth/register. The role may be user or
// organizer; anything else (including admin, which is never self-served)
// falls back to user. Duplicate emails are a 409.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required")
	}
	if !strings.Contains(req.Email, "@") {
		return fail(c, http.StatusBadRequest, "invalid email address")
	}
	if len(req.Password) < 8 {
		return fail(c, http.StatusBadRequest, "password must be at least 8 characters")
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleOrganizer {
		role = model.RoleUser
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Accounts.Create(ctx, req.Name, req.Email, req.Password, req.Phone, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusConflict, "email already exists")
		}
		return h.unexpected(c, "failed to create account", err)
	}

	access, refresh, err := h.issueTokens(ctx, id, role)
	if err != nil {
		return h.unexpected(c, "failed to issue tokens", err)
	}

	acct, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		return h.unexpected(c, "failed to load account", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    newAccountJSON(acct),
		"access":  access,
		"refresh": refresh,
	})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acct, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		return h.unexpected(c, "failed to load account", err)
	}
	if !utils.VerifyPassword(acct.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	access, refresh, err := h.issueTokens(ctx, acct.ID, acct.Role)
	if err != nil {
		return h.unexpected(c, "failed to issue tokens", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    newAccountJSON(acct),
		"access":  access,
		"refresh": refresh,
	})
}

// Refresh handles POST /v1/auth/refresh: validate by hash, revoke the old
// token, issue a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "refreshToken is required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accountID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	acct, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return h.unexpected(c, "failed to load account", err)
	}
	access, refresh, err := h.issueTokens(ctx, acct.ID, acct.Role)
	if err != nil {
		return h.unexpected(c, "failed to issue tokens", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    newAccountJSON(acct),
		"access":  access,
		"refresh": refresh,
	})
}

// Logout handles POST /v1/auth/logout (protected). With a refreshToken in
// the body only that session is revoked; without one, every session for the
// account is.
func (h *AuthHandler) Logout(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req refreshReq
	_ = c.Bind(&req)
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw != "" {
		if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw)); err != nil {
			return h.unexpected(c, "logout failed", err)
		}
	} else if err := h.Tokens.RevokeAllForAccount(ctx, accountID); err != nil {
		return h.unexpected(c, "logout failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me handles GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	acct, err := h.Accounts.GetByID(c.Request().Context(), accountID)
	if err != nil {
		return h.unexpected(c, "failed to load account", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": newAccountJSON(acct)})
}

type preferencesReq struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

// UpdatePreferences handles PUT /v1/me/preferences. The stored preference
// sets only feed the recommended-events projection; empty arrays clear them.
func (h *AuthHandler) UpdatePreferences(c echo.Context) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req preferencesReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	for _, cat := range req.Categories {
		if !model.ValidCategory(strings.TrimSpace(cat)) {
			return fail(c, http.StatusBadRequest, "unknown category: "+cat)
		}
	}

	ctx := c.Request().Context()
	if err := h.Accounts.UpdatePreferences(ctx, accountID, joinPrefs(req.Categories), joinPrefs(req.Locations)); err != nil {
		return h.unexpected(c, "failed to update preferences", err)
	}
	acct, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return h.unexpected(c, "failed to load account", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": newAccountJSON(acct)})
}
