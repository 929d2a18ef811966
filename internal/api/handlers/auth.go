package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/httpx"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/validate"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/auth"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/config"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/middleware"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	repo "github.com/Ogezi-Emmanuel/campus-planner-backend/internal/repository"
)

type AuthHandler struct {
	TM       *auth.TokenManager
	Profiles repo.Profiles
	Cfg      config.Config
}

func NewAuthHandler(tm *auth.TokenManager, profiles repo.Profiles, cfg config.Config) *AuthHandler {
	return &AuthHandler{TM: tm, Profiles: profiles, Cfg: cfg}
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct{ Username, Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	var errs validate.Errs
	if e := validate.Required("username", req.Username); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.Required("email", req.Email); e != nil {
		errs = append(errs, *e)
	}
	if e := validate.MinLen("password", req.Password, 6); e != nil {
		errs = append(errs, *e)
	}
	if len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, "validation", errs.Error(), errs)
		return
	}

	p := models.Profile{Username: req.Username, Email: req.Email}
	if err := p.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", err.Error(), nil)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "hash failed", nil)
		return
	}
	created, err := h.Profiles.Create(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	p, err := h.Profiles.GetByEmail(r.Context(), req.Email)
	if err != nil || auth.VerifyPassword(req.Password, p.PasswordHash) != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}
	h.writeTokenPair(w, p.ID)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	claims, isRefresh, err := h.TM.ParseAny(req.RefreshToken)
	if err != nil || !isRefresh {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	h.writeTokenPair(w, claims.UserID)
}

// Logout is stateless: tokens simply expire. The endpoint exists so
// clients have a definite point to drop their session at.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "not signed in", nil)
		return
	}
	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if e := validate.MinLen("new_password", req.NewPassword, 6); e != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", e.Field+": "+e.Msg, nil)
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "hash failed", nil)
		return
	}
	if err := h.Profiles.UpdatePassword(r.Context(), uid, hash); err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "password_updated"})
}

// GoogleRedirect sends the browser to Google's OAuth consent screen.
func (h *AuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	if h.Cfg.GoogleClientID == "" {
		httpx.WriteError(w, http.StatusNotImplemented, "not_configured", "google sign-in not configured", nil)
		return
	}
	q := url.Values{}
	q.Set("client_id", h.Cfg.GoogleClientID)
	q.Set("redirect_uri", h.Cfg.GoogleRedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	http.Redirect(w, r, "https://accounts.google.com/o/oauth2/v2/auth?"+q.Encode(), http.StatusFound)
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "not signed in", nil)
		return
	}
	p, err := h.Profiles.GetByID(r.Context(), uid)
	if err != nil {
		httpx.WriteAppError(w, err, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *AuthHandler) writeTokenPair(w http.ResponseWriter, userID string) {
	access, refresh, exp, err := h.TM.GeneratePair(userID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(time.Until(exp).Seconds()),
	})
}
