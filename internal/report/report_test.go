package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
	"github.com/bfilipov/warehouse-game/internal/models"
	"github.com/bfilipov/warehouse-game/internal/testutil"
)

func buildFixture(t *testing.T, ctx context.Context) (TeamReport, *database.Database) {
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
	if err := db.CreateTeamActivity(ctx,
		testutil.NewAttempt(game.ID, team.ID, "A").Build()); err != nil {
		t.Fatalf("CreateTeamActivity failed: %v", err)
	}

	e := engine.New(db, config.DefaultRules())
	if _, err := e.AdvancePeriod(ctx, game); err != nil {
		t.Fatalf("AdvancePeriod failed: %v", err)
	}

	r, err := Build(ctx, db, game.ID, team.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return r, db
}

func TestCSVHistory(t *testing.T) {
	ctx := context.Background()
	r, _ := buildFixture(t, ctx)

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus the day-1 and day-11 periods.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 8+catalog.Size() {
		t.Fatalf("expected %d columns, got %d", 8+catalog.Size(), len(rows[0]))
	}
	if rows[1][0] != "1" || rows[2][0] != "11" {
		t.Fatalf("rows out of order: %v %v", rows[1][0], rows[2][0])
	}
	if rows[1][1] != "2100" {
		t.Fatalf("expected starting funds 2100, got %q", rows[1][1])
	}

	// A (20 days from day 1) is in progress at both snapshots.
	aCol := 8 // first activity column
	if rows[0][aCol] != "A" {
		t.Fatalf("expected activity column A, got %q", rows[0][aCol])
	}
	if rows[1][aCol] != models.StateInProgress.String() {
		t.Fatalf("expected A in progress on day 1, got %q", rows[1][aCol])
	}
}

func TestCSVOmitsUnrequestedActivities(t *testing.T) {
	ctx := context.Background()
	r, _ := buildFixture(t, ctx)

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// B was never requested; its cell stays blank.
	bCol := 9
	if rows[0][bCol] != "B" || rows[1][bCol] != "" {
		t.Fatalf("unrequested activity should render blank, got %q", rows[1][bCol])
	}
}

func TestPDFRenders(t *testing.T) {
	ctx := context.Background()
	r, _ := buildFixture(t, ctx)

	var buf bytes.Buffer
	if err := r.WritePDF(&buf); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Fatalf("output does not look like a PDF")
	}
}
