// Package server exposes the simulation over HTTP: session login,
// admin management of games, teams and users, the team play surface,
// and report downloads. All endpoints speak JSON except the report
// downloads.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/bfilipov/warehouse-game/internal/auth"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
)

// Options configures the HTTP handler.
type Options struct {
	Store    database.Store
	Engine   *engine.Engine
	Sessions *auth.Sessions
	Logger   *log.Logger
}

// Handler carries the shared dependencies of all endpoints.
type Handler struct {
	store    database.Store
	engine   *engine.Engine
	sessions *auth.Sessions
	logger   *log.Logger
}

// NewHandler builds the full route table.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Store == nil || opts.Engine == nil {
		return nil, errors.New("store and engine are required")
	}
	if opts.Sessions == nil {
		opts.Sessions = auth.NewSessions(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	h := &Handler{
		store:    opts.Store,
		engine:   opts.Engine,
		sessions: opts.Sessions,
		logger:   opts.Logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "warehouse-game",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.HandleFunc("GET /api/auth/session", h.requireUser(h.session))

	mux.HandleFunc("POST /api/admin/games", h.requireAdmin(h.createGame))
	mux.HandleFunc("GET /api/admin/games", h.requireAdmin(h.listGames))
	mux.HandleFunc("GET /api/admin/games/{id}", h.requireAdmin(h.getGame))
	mux.HandleFunc("POST /api/admin/games/{id}/advance", h.requireAdmin(h.advanceGame))
	mux.HandleFunc("POST /api/admin/games/{id}/rewind", h.requireAdmin(h.rewindGame))

	mux.HandleFunc("POST /api/admin/teams", h.requireAdmin(h.createTeam))
	mux.HandleFunc("GET /api/admin/teams", h.requireAdmin(h.listTeams))
	mux.HandleFunc("POST /api/admin/teams/assign", h.requireAdmin(h.assignTeam))

	mux.HandleFunc("POST /api/admin/users", h.requireAdmin(h.createUser))
	mux.HandleFunc("GET /api/admin/users", h.requireAdmin(h.listUsers))
	mux.HandleFunc("POST /api/admin/users/assign", h.requireAdmin(h.assignUser))

	mux.HandleFunc("GET /api/play/state", h.requireUser(h.playState))
	mux.HandleFunc("POST /api/play/credit", h.requireUser(h.requestCredit))
	mux.HandleFunc("POST /api/play/activities", h.requireUser(h.addActivity))
	mux.HandleFunc("DELETE /api/play/activities/{id}", h.requireUser(h.removeActivity))

	mux.HandleFunc("GET /api/reports/history.csv", h.requireUser(h.reportCSV))
	mux.HandleFunc("GET /api/reports/history.pdf", h.requireUser(h.reportPDF))
	mux.HandleFunc("GET /api/admin/games/{id}/teams/{team}/report.csv", h.requireAdmin(h.adminReportCSV))
	mux.HandleFunc("GET /api/admin/games/{id}/teams/{team}/report.pdf", h.requireAdmin(h.adminReportPDF))

	return withAccessLog(withRecover(mux, opts.Logger), opts.Logger), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"ok": false, "error": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// storeErrorStatus maps store failures to HTTP status codes.
func storeErrorStatus(err error) int {
	if errors.Is(err, database.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func withAccessLog(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
