package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bfilipov/warehouse-game/internal/models"
	"github.com/bfilipov/warehouse-game/internal/report"
)

func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request, user models.User) (report.TeamReport, bool) {
	game, team, ok := h.teamContext(w, r, user)
	if !ok {
		return report.TeamReport{}, false
	}
	rep, err := report.Build(r.Context(), h.store, game.ID, team.ID)
	if err != nil {
		h.logger.Printf("build report for team %d: %v", team.ID, err)
		writeError(w, http.StatusInternalServerError, "report build failed")
		return report.TeamReport{}, false
	}
	return rep, true
}

func (h *Handler) reportCSV(w http.ResponseWriter, r *http.Request, user models.User) {
	rep, ok := h.buildReport(w, r, user)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("team_%d_history.csv", rep.Team.ID)))
	if err := rep.WriteCSV(w); err != nil {
		h.logger.Printf("write csv report: %v", err)
	}
}

func (h *Handler) reportPDF(w http.ResponseWriter, r *http.Request, user models.User) {
	rep, ok := h.buildReport(w, r, user)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("team_%d_history.pdf", rep.Team.ID)))
	if err := rep.WritePDF(w); err != nil {
		h.logger.Printf("write pdf report: %v", err)
	}
}

// buildAdminReport builds the report for the game and team named in
// the path, for instructors inspecting any team.
func (h *Handler) buildAdminReport(w http.ResponseWriter, r *http.Request) (report.TeamReport, bool) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return report.TeamReport{}, false
	}
	teamID, err := strconv.ParseInt(r.PathValue("team"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return report.TeamReport{}, false
	}
	rep, err := report.Build(r.Context(), h.store, gameID, teamID)
	if err != nil {
		writeError(w, storeErrorStatus(err), "report build failed")
		return report.TeamReport{}, false
	}
	return rep, true
}

func (h *Handler) adminReportCSV(w http.ResponseWriter, r *http.Request, _ models.User) {
	rep, ok := h.buildAdminReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("team_%d_history.csv", rep.Team.ID)))
	if err := rep.WriteCSV(w); err != nil {
		h.logger.Printf("write csv report: %v", err)
	}
}

func (h *Handler) adminReportPDF(w http.ResponseWriter, r *http.Request, _ models.User) {
	rep, ok := h.buildAdminReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("team_%d_history.pdf", rep.Team.ID)))
	if err := rep.WritePDF(w); err != nil {
		h.logger.Printf("write pdf report: %v", err)
	}
}
