package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/models"
)

func setupEngine(t *testing.T, ctx context.Context) (*Engine, *database.Database) {
	t.Helper()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	if err := catalog.Seed(ctx, db); err != nil {
		t.Fatalf("catalog seed failed: %v", err)
	}
	return New(db, config.DefaultRules()), db
}

func newGameWithTeam(t *testing.T, ctx context.Context, db *database.Database) (models.Game, models.Team) {
	t.Helper()
	game, err := db.CreateGame(ctx)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	team, err := db.CreateTeam(ctx, "Alpha")
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}
	if err := db.AssignTeamToGame(ctx, team.ID, game.ID); err != nil {
		t.Fatalf("AssignTeamToGame failed: %v", err)
	}
	team.GameID = &game.ID
	return game, team
}

func queueAttempt(t *testing.T, ctx context.Context, db *database.Database, gameID, teamID int64, activityID string, day int) {
	t.Helper()
	err := db.CreateTeamActivity(ctx, models.TeamActivity{
		GameID: gameID, TeamID: teamID, ActivityID: activityID,
		InputDay: day, RequestedOnDay: day, InitiatedOnDay: day,
		StartedOnDay: models.SentinelDay, FinishedOnDay: models.SentinelDay,
	})
	if err != nil {
		t.Fatalf("CreateTeamActivity %s failed: %v", activityID, err)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
