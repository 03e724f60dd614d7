package engine

import (
	"context"
	"testing"

	"github.com/bfilipov/warehouse-game/internal/models"
)

func TestRentCadence(t *testing.T) {
	ctx := context.Background()
	e, _ := setupEngine(t, ctx)

	due := []int{1, 31, 61, 91}
	notDue := []int{11, 21, 41, 51}
	for _, day := range due {
		if !e.rentDue(day) {
			t.Errorf("rent should be due on day %d", day)
		}
	}
	for _, day := range notDue {
		if e.rentDue(day) {
			t.Errorf("rent should not be due on day %d", day)
		}
	}
}

func TestInterestForPeriod(t *testing.T) {
	ctx := context.Background()
	e, _ := setupEngine(t, ctx)

	// 2100 at 4.2% monthly over a third of a month.
	if got := e.interestFor(2100); !almostEqual(got, 29.4) {
		t.Fatalf("expected 29.4 interest, got %v", got)
	}
	if got := e.interestFor(0); got != 0 {
		t.Fatalf("no credit, no interest; got %v", got)
	}
}

func TestAdvanceLedgerCarriesFigures(t *testing.T) {
	ctx := context.Background()
	e, db := setupEngine(t, ctx)
	game, team := newGameWithTeam(t, ctx, db)

	current, err := e.ResolvePeriod(ctx, game, team)
	if err != nil {
		t.Fatalf("ResolvePeriod failed: %v", err)
	}
	current.CreditToTake = 300
	if err := db.UpdateInput(ctx, current); err != nil {
		t.Fatalf("UpdateInput failed: %v", err)
	}
	next, _, err := db.GetOrCreateInput(ctx, game.ID, team.ID, 11)
	if err != nil {
		t.Fatalf("GetOrCreateInput failed: %v", err)
	}

	if err := e.AdvanceLedger(ctx, &current, &next, 300, false); err != nil {
		t.Fatalf("AdvanceLedger failed: %v", err)
	}

	if next.CreditTaken != 2400 {
		t.Fatalf("expected cumulative credit 2400, got %v", next.CreditTaken)
	}
	if !almostEqual(next.InterestCost, 29.4) {
		t.Fatalf("expected 29.4 interest, got %v", next.InterestCost)
	}
	if next.RentCost != 0 {
		t.Fatalf("no rent due on day 11, got %v", next.RentCost)
	}
	// 300 leftover + 300 fresh credit - 29.4 interest.
	if !almostEqual(next.MoneyAtStart, 570.6) {
		t.Fatalf("expected 570.6 at start, got %v", next.MoneyAtStart)
	}
	if current.MoneyAtEnd != next.MoneyAtStart {
		t.Fatalf("continuity broken: end %v vs start %v", current.MoneyAtEnd, next.MoneyAtStart)
	}

	// Both records must be persisted, not just mutated in memory.
	stored, err := db.GetInput(ctx, game.ID, team.ID, 11)
	if err != nil {
		t.Fatalf("GetInput failed: %v", err)
	}
	if !almostEqual(stored.MoneyAtStart, 570.6) {
		t.Fatalf("next input not persisted: %+v", stored)
	}
	stored, err = db.GetInput(ctx, game.ID, team.ID, 1)
	if err != nil {
		t.Fatalf("GetInput failed: %v", err)
	}
	if !almostEqual(stored.MoneyAtEnd, 570.6) {
		t.Fatalf("current input not persisted: %+v", stored)
	}
}

func TestAdvanceLedgerChargesRentAndPenalties(t *testing.T) {
	ctx := context.Background()
	e, db := setupEngine(t, ctx)
	game, team := newGameWithTeam(t, ctx, db)

	current, _, err := db.GetOrCreateInput(ctx, game.ID, team.ID, 21)
	if err != nil {
		t.Fatalf("GetOrCreateInput failed: %v", err)
	}
	current.CreditTaken = 2400
	next, _, err := db.GetOrCreateInput(ctx, game.ID, team.ID, 31)
	if err != nil {
		t.Fatalf("GetOrCreateInput failed: %v", err)
	}
	if err := db.AddPenalty(ctx, models.Penalty{
		GameID: game.ID, TeamID: team.ID, InputDay: 31, ActivityID: "B", Amount: 60,
	}); err != nil {
		t.Fatalf("AddPenalty failed: %v", err)
	}

	if err := e.AdvanceLedger(ctx, &current, &next, 100, false); err != nil {
		t.Fatalf("AdvanceLedger failed: %v", err)
	}

	if next.RentCost != 900 {
		t.Fatalf("rent due on day 31, got %v", next.RentCost)
	}
	if next.PenaltyCost != 60 {
		t.Fatalf("expected 60 in penalties, got %v", next.PenaltyCost)
	}
	// 100 leftover - 60 fine - 33.6 interest - 900 rent. Going negative
	// is allowed; teams dig themselves out with credit.
	if !almostEqual(next.MoneyAtStart, -893.6) {
		t.Fatalf("expected -893.6 at start, got %v", next.MoneyAtStart)
	}
}

func TestCompletionBonusPaysDownCredit(t *testing.T) {
	ctx := context.Background()
	e, db := setupEngine(t, ctx)
	game, team := newGameWithTeam(t, ctx, db)

	current, _, err := db.GetOrCreateInput(ctx, game.ID, team.ID, 41)
	if err != nil {
		t.Fatalf("GetOrCreateInput failed: %v", err)
	}
	current.CreditTaken = 3000
	next, _, err := db.GetOrCreateInput(ctx, game.ID, team.ID, 51)
	if err != nil {
		t.Fatalf("GetOrCreateInput failed: %v", err)
	}

	if err := e.AdvanceLedger(ctx, &current, &next, 500, true); err != nil {
		t.Fatalf("AdvanceLedger failed: %v", err)
	}

	// 120 profit per day over a 10-day period.
	if next.CreditTaken != 1800 {
		t.Fatalf("bonus should reduce credit to 1800, got %v", next.CreditTaken)
	}
	// 500 leftover + 1200 bonus - 126 interest on the old credit.
	if !almostEqual(next.MoneyAtStart, 1574) {
		t.Fatalf("expected 1574 at start, got %v", next.MoneyAtStart)
	}
}
