package server

import (
	"net/http"
	"strconv"

	"github.com/bfilipov/warehouse-game/internal/auth"
	"github.com/bfilipov/warehouse-game/internal/models"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request, _ models.User) {
	game, err := h.store.CreateGame(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create game failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "game": game})
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request, _ models.User) {
	games, err := h.store.ListActiveGames(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list games failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": games})
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request, _ models.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	game, err := h.store.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, storeErrorStatus(err), "game not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "game": game})
}

func (h *Handler) advanceGame(w http.ResponseWriter, r *http.Request, _ models.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	game, err := h.store.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, storeErrorStatus(err), "game not found")
		return
	}
	sum, err := h.engine.AdvancePeriod(r.Context(), game)
	if err != nil {
		h.logger.Printf("advance game %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "advance failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "summary": sum})
}

func (h *Handler) rewindGame(w http.ResponseWriter, r *http.Request, _ models.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	game, err := h.store.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, storeErrorStatus(err), "game not found")
		return
	}
	sum, err := h.engine.RewindPeriod(r.Context(), game)
	if err != nil {
		h.logger.Printf("rewind game %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "rewind failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "summary": sum})
}

func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request, _ models.User) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	team, err := h.store.CreateTeam(r.Context(), req.DisplayName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create team failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "team": team})
}

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request, _ models.User) {
	teams, err := h.store.ListActiveTeams(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list teams failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "teams": teams})
}

// assignTeam attaches a team to a game and resolves its first period,
// so the team has an account the moment it joins. game_id 0 detaches.
func (h *Handler) assignTeam(w http.ResponseWriter, r *http.Request, _ models.User) {
	var req struct {
		TeamID int64 `json:"team_id"`
		GameID int64 `json:"game_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	team, err := h.store.GetTeam(r.Context(), req.TeamID)
	if err != nil {
		writeError(w, storeErrorStatus(err), "team not found")
		return
	}
	if req.GameID == 0 {
		if err := h.store.AssignTeamToGame(r.Context(), team.ID, 0); err != nil {
			writeError(w, http.StatusInternalServerError, "detach failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	game, err := h.store.GetGame(r.Context(), req.GameID)
	if err != nil {
		writeError(w, storeErrorStatus(err), "game not found")
		return
	}
	if err := h.store.AssignTeamToGame(r.Context(), team.ID, game.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "assign failed")
		return
	}
	if _, err := h.engine.ResolvePeriod(r.Context(), game, team); err != nil {
		h.logger.Printf("resolve period for team %d: %v", team.ID, err)
		writeError(w, http.StatusInternalServerError, "initial period resolve failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request, _ models.User) {
	var req struct {
		Username      string `json:"username"`
		DisplayName   string `json:"display_name"`
		Email         string `json:"email"`
		FacultyNumber string `json:"faculty_number"`
		Password      string `json:"password"`
		IsAdmin       bool   `json:"is_admin"`
		IsManager     bool   `json:"is_manager"`
		IsCashier     bool   `json:"is_cashier"`
		TeamID        *int64 `json:"team_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "password hashing failed")
		return
	}
	user, err := h.store.CreateUser(r.Context(), models.User{
		Username:      req.Username,
		DisplayName:   req.DisplayName,
		Email:         req.Email,
		FacultyNumber: req.FacultyNumber,
		PasswordHash:  hash,
		IsAdmin:       req.IsAdmin,
		IsManager:     req.IsManager,
		IsCashier:     req.IsCashier,
		TeamID:        req.TeamID,
	})
	if err != nil {
		writeError(w, http.StatusConflict, "create user failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "user": publicUser(user)})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request, _ models.User) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list users failed")
		return
	}
	public := make([]map[string]any, 0, len(users))
	for _, u := range users {
		public = append(public, publicUser(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "users": public})
}

func (h *Handler) assignUser(w http.ResponseWriter, r *http.Request, _ models.User) {
	var req struct {
		UserID int64 `json:"user_id"`
		TeamID int64 `json:"team_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := h.store.AssignUserToTeam(r.Context(), req.UserID, req.TeamID); err != nil {
		writeError(w, storeErrorStatus(err), "assign failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
