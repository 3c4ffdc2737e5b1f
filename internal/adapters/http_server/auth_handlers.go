package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"travelnest/internal/app"
	"travelnest/internal/domain"
)

type signUpRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Identity  domain.Identity `json:"identity"`
	User      *domain.User    `json:"user,omitempty"`
	UserError string          `json:"user_error,omitempty"`
}

func (h *Handlers) issue(w http.ResponseWriter, r *http.Request, status int, id domain.Identity) {
	tok, exp, err := h.Tokens.Issue(id)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := sessionResponse{Token: tok, ExpiresAt: exp, Identity: id}
	// A broken user record does not block the session; the client is told separately.
	u, err := h.Auth.FetchUser(r.Context(), id.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id.UserID).Msg("user record unavailable")
		resp.UserError = domain.Cause(err).Error()
	} else {
		resp.User = &u
	}
	writeJSON(w, status, resp)
}

func (h *Handlers) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.Auth.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeError(w, err)
		return
	}
	h.issue(w, r, http.StatusCreated, id)
}

func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.issue(w, r, http.StatusOK, id)
}

func (h *Handlers) passwordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	msg, err := h.Auth.ResetPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *Handlers) signOut(w http.ResponseWriter, r *http.Request) {
	id, _ := app.CurrentIdentity(r.Context())
	if err := h.Tokens.Revoke(r.Context(), tokenFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Auth.SignOut(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("user_id", id.UserID).Msg("credential sign-out failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	id, _ := app.CurrentIdentity(r.Context())
	u, err := h.Auth.FetchUser(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
