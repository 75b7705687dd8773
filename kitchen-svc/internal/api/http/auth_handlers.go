package httpapi

import (
	"errors"
	"net/http"

	"cloud-kitchen/kitchen-svc/internal/domain"
	"cloud-kitchen/session"
)

type userResponse struct {
	User *domain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.Auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *domain.User) bool {
	token, expiresAt, err := h.Sessions.Issue(user.ID, user.Role)
	if err != nil {
		writeError(w, r, err)
		return false
	}
	h.Sessions.SetCookie(w, token, expiresAt)
	return true
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	principal, _ := session.FromContext(r.Context())
	user, err := h.Auth.Me(r.Context(), principal.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		h.Sessions.ClearCookie(w)
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user})
}
