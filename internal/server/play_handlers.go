package server

import (
	"errors"
	"net/http"

	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
	"github.com/bfilipov/warehouse-game/internal/models"
)

// canAct reports whether the user may queue activities or request
// credit. Plain players only observe.
func canAct(u models.User) bool {
	return u.IsAdmin || u.IsManager || u.IsCashier
}

// teamContext resolves the caller's team and its game, rejecting users
// without one.
func (h *Handler) teamContext(w http.ResponseWriter, r *http.Request, user models.User) (models.Game, models.Team, bool) {
	if user.TeamID == nil {
		writeError(w, http.StatusConflict, "user is not on a team")
		return models.Game{}, models.Team{}, false
	}
	team, err := h.store.GetTeam(r.Context(), *user.TeamID)
	if err != nil {
		writeError(w, storeErrorStatus(err), "team not found")
		return models.Game{}, models.Team{}, false
	}
	if team.GameID == nil {
		writeError(w, http.StatusConflict, "team is not in a game")
		return models.Game{}, models.Team{}, false
	}
	game, err := h.store.GetGame(r.Context(), *team.GameID)
	if err != nil {
		writeError(w, storeErrorStatus(err), "game not found")
		return models.Game{}, models.Team{}, false
	}
	return game, team, true
}

type attemptView struct {
	ActivityID  string `json:"activity_id"`
	Status      string `json:"status"`
	InputDay    int    `json:"input_day"`
	StartedDay  int    `json:"started_day,omitempty"`
	FinishedDay int    `json:"finished_day,omitempty"`
}

type activityView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Cost         int      `json:"cost"`
	DaysNeeded   int      `json:"days_needed"`
	Requirements []string `json:"requirements"`
	Finished     bool     `json:"finished"`
	Requested    bool     `json:"requested"`
}

// playState returns everything a team's screen needs: the current
// period's figures, the team's attempts, and the catalog annotated
// with what this team has finished or requested.
func (h *Handler) playState(w http.ResponseWriter, r *http.Request, user models.User) {
	game, team, ok := h.teamContext(w, r, user)
	if !ok {
		return
	}
	ctx := r.Context()

	input, err := h.engine.ResolvePeriod(ctx, game, team)
	if err != nil {
		h.logger.Printf("resolve period for team %d: %v", team.ID, err)
		writeError(w, http.StatusInternalServerError, "period resolve failed")
		return
	}
	attempts, err := h.store.ListTeamActivities(ctx, game.ID, team.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list attempts failed")
		return
	}
	activities, err := h.store.ListActivities(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list activities failed")
		return
	}
	finished, err := h.store.FinishedActivityIDs(ctx, game.ID, team.ID, game.CurrentDay)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "finished lookup failed")
		return
	}

	attemptViews := make([]attemptView, 0, len(attempts))
	requested := make(map[string]bool, len(attempts))
	for _, ta := range attempts {
		requested[ta.ActivityID] = true
		p := ta.ProgressAt(game.CurrentDay)
		v := attemptView{
			ActivityID: ta.ActivityID,
			Status:     p.State.String(),
			InputDay:   ta.InputDay,
		}
		if p.State != models.StateQueued {
			v.StartedDay = p.StartedDay
			v.FinishedDay = p.FinishedDay
		}
		attemptViews = append(attemptViews, v)
	}

	activityViews := make([]activityView, 0, len(activities))
	for _, a := range activities {
		reqs, err := h.store.GetActivityRequirements(ctx, a.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "requirements lookup failed")
			return
		}
		activityViews = append(activityViews, activityView{
			ID:           a.ID,
			Title:        a.Title,
			Cost:         a.Cost,
			DaysNeeded:   a.DaysNeeded,
			Requirements: reqs,
			Finished:     finished[a.ID],
			Requested:    requested[a.ID],
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"game":       game,
		"team":       team,
		"input":      input,
		"attempts":   attemptViews,
		"activities": activityViews,
	})
}

func (h *Handler) requestCredit(w http.ResponseWriter, r *http.Request, user models.User) {
	if !canAct(user) {
		writeError(w, http.StatusForbidden, "player may only observe")
		return
	}
	game, team, ok := h.teamContext(w, r, user)
	if !ok {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	input, err := h.engine.ResolvePeriod(r.Context(), game, team)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "period resolve failed")
		return
	}
	if err := h.engine.RequestCredit(r.Context(), input, req.Amount); err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "credit request failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "credit_requested": req.Amount})
}

// addActivity queues an attempt for the current period. A team gets
// one attempt per activity per game, ever; duplicates are rejected.
func (h *Handler) addActivity(w http.ResponseWriter, r *http.Request, user models.User) {
	if !canAct(user) {
		writeError(w, http.StatusForbidden, "player may only observe")
		return
	}
	game, team, ok := h.teamContext(w, r, user)
	if !ok {
		return
	}
	var req struct {
		ActivityID string `json:"activity_id"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	ctx := r.Context()

	if _, err := h.store.GetActivity(ctx, req.ActivityID); err != nil {
		writeError(w, storeErrorStatus(err), "unknown activity")
		return
	}
	if _, err := h.store.GetTeamActivity(ctx, game.ID, team.ID, req.ActivityID); err == nil {
		writeError(w, http.StatusConflict, "activity already requested")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "attempt lookup failed")
		return
	}

	// Anchor to the current period; the evaluator picks it up on the
	// next advance.
	if _, err := h.engine.ResolvePeriod(ctx, game, team); err != nil {
		writeError(w, http.StatusInternalServerError, "period resolve failed")
		return
	}
	err := h.store.CreateTeamActivity(ctx, models.TeamActivity{
		GameID:         game.ID,
		TeamID:         team.ID,
		ActivityID:     req.ActivityID,
		InputDay:       game.CurrentDay,
		RequestedOnDay: game.CurrentDay,
		InitiatedOnDay: game.CurrentDay,
		StartedOnDay:   models.SentinelDay,
		FinishedOnDay:  models.SentinelDay,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "queue attempt failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "activity_id": req.ActivityID})
}

// removeActivity withdraws a queued attempt. Attempts that already
// started consuming funds cannot be withdrawn.
func (h *Handler) removeActivity(w http.ResponseWriter, r *http.Request, user models.User) {
	if !canAct(user) {
		writeError(w, http.StatusForbidden, "player may only observe")
		return
	}
	game, team, ok := h.teamContext(w, r, user)
	if !ok {
		return
	}
	activityID := r.PathValue("id")

	ta, err := h.store.GetTeamActivity(r.Context(), game.ID, team.ID, activityID)
	if err != nil {
		writeError(w, storeErrorStatus(err), "attempt not found")
		return
	}
	if ta.ProgressAt(game.CurrentDay).State != models.StateQueued {
		writeError(w, http.StatusConflict, "activity already started")
		return
	}
	if err := h.store.DeleteTeamActivity(r.Context(), game.ID, team.ID, activityID); err != nil {
		writeError(w, http.StatusInternalServerError, "withdraw failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
