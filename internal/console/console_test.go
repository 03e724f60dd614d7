package console

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
)

func setupModel(t *testing.T, ctx context.Context) (Model, *database.Database) {
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
	return New(ctx, db, engine.New(db, config.DefaultRules())), db
}

func refresh(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadGames()
	if err, ok := msg.(errMsg); ok {
		t.Fatalf("loadGames failed: %v", err.err)
	}
	model, _ := m.Update(msg)
	return model.(Model)
}

func TestViewListsGames(t *testing.T) {
	ctx := context.Background()
	m, db := setupModel(t, ctx)

	if !strings.Contains(m.View(), "no active games") {
		t.Fatalf("empty view should invite game creation")
	}

	if _, err := db.CreateGame(ctx); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	m = refresh(t, m)
	if !strings.Contains(m.View(), "game 1  day 1") {
		t.Fatalf("view missing game row:\n%s", m.View())
	}
}

func TestAdvanceKeyMovesClock(t *testing.T) {
	ctx := context.Background()
	m, db := setupModel(t, ctx)
	game, err := db.CreateGame(ctx)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	m = refresh(t, m)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = model.(Model)
	if cmd == nil {
		t.Fatalf("advance key should produce a command")
	}
	if _, ok := cmd().(statusMsg); !ok {
		t.Fatalf("advance should report a status")
	}
	stored, err := db.GetGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if stored.CurrentDay != 11 {
		t.Fatalf("expected day 11 after advance, got %d", stored.CurrentDay)
	}
}

func TestTeamNamingFlow(t *testing.T) {
	ctx := context.Background()
	m, db := setupModel(t, ctx)
	game, err := db.CreateGame(ctx)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	m = refresh(t, m)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = model.(Model)
	if !m.naming {
		t.Fatalf("t should open the team name input")
	}
	for _, r := range "Alpha" {
		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(Model)
	}
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	if m.naming {
		t.Fatalf("enter should close the input")
	}
	if cmd == nil {
		t.Fatalf("enter should produce a create command")
	}
	if _, ok := cmd().(statusMsg); !ok {
		t.Fatalf("create team should report a status")
	}

	teams, err := db.ListTeamsForGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("ListTeamsForGame failed: %v", err)
	}
	if len(teams) != 1 || teams[0].DisplayName != "Alpha" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
	// Joining resolves the team's first period.
	if _, err := db.GetInput(ctx, game.ID, teams[0].ID, 1); err != nil {
		t.Fatalf("expected day-1 input after join: %v", err)
	}
}

func TestStandingsToggle(t *testing.T) {
	ctx := context.Background()
	m, db := setupModel(t, ctx)
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
	if _, err := m.engine.ResolvePeriod(ctx, game, team); err != nil {
		t.Fatalf("ResolvePeriod failed: %v", err)
	}
	m = refresh(t, m)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	if cmd == nil {
		t.Fatalf("enter should load standings")
	}
	model, _ = m.Update(cmd())
	m = model.(Model)
	if m.standingsFor != game.ID || len(m.standings) != 1 {
		t.Fatalf("standings not loaded: for=%d rows=%d", m.standingsFor, len(m.standings))
	}
	if !strings.Contains(m.View(), "Alpha") || !strings.Contains(m.View(), "2100") {
		t.Fatalf("standings view missing team figures:\n%s", m.View())
	}

	// Enter again hides them.
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	if m.standingsFor != 0 {
		t.Fatalf("enter should toggle standings off")
	}
}

func TestEscapeCancelsNaming(t *testing.T) {
	ctx := context.Background()
	m, db := setupModel(t, ctx)
	if _, err := db.CreateGame(ctx); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	m = refresh(t, m)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = model.(Model)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)
	if m.naming {
		t.Fatalf("esc should cancel naming")
	}
}
