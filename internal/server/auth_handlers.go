package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bfilipov/warehouse-game/internal/auth"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/models"
)

const sessionCookie = "wgame_session"

type userHandler func(w http.ResponseWriter, r *http.Request, user models.User)

// requireUser resolves the session token into a user or rejects with
// 401. Tokens come from the session cookie or a bearer header.
func (h *Handler) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				token = c.Value
			}
		}
		userID, ok := h.sessions.Lookup(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		user, err := h.store.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				h.sessions.Revoke(token)
				writeError(w, http.StatusUnauthorized, "not logged in")
				return
			}
			writeError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		next(w, r, user)
	}
}

func (h *Handler) requireAdmin(next userHandler) http.HandlerFunc {
	return h.requireUser(func(w http.ResponseWriter, r *http.Request, user models.User) {
		if !user.IsAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r, user)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// One answer for unknown user and wrong password.
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session issue failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"token": token,
		"user":  publicUser(user),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie(sessionCookie); err == nil {
			token = c.Value
		}
	}
	h.sessions.Revoke(token)
	http.SetCookie(w, &http.Cookie{
		Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, user models.User) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": publicUser(user)})
}

// publicUser strips the password hash before a user leaves the server.
func publicUser(u models.User) map[string]any {
	return map[string]any{
		"id":           u.ID,
		"username":     u.Username,
		"display_name": u.DisplayName,
		"is_admin":     u.IsAdmin,
		"is_manager":   u.IsManager,
		"is_cashier":   u.IsCashier,
		"team_id":      u.TeamID,
	}
}
