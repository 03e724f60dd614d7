package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/bfilipov/warehouse-game/internal/database"
)

func TestResolvePeriodSeedsDayOne(t *testing.T) {
	ctx := context.Background()
	e, db := setupEngine(t, ctx)
	game, team := newGameWithTeam(t, ctx, db)

	in, err := e.ResolvePeriod(ctx, game, team)
	if err != nil {
		t.Fatalf("ResolvePeriod failed: %v", err)
	}
	funds := e.Rules().StartingFunds
	if in.MoneyAtStart != funds || in.CreditTaken != funds {
		t.Fatalf("day-1 input not seeded with starting funds: %+v", in)
	}

	// Resolving again must return the persisted record, not re-seed it.
	in.MoneyAtStart = 42
	if err := db.UpdateInput(ctx, in); err != nil {
		t.Fatalf("UpdateInput failed: %v", err)
	}
	again, err := e.ResolvePeriod(ctx, game, team)
	if err != nil {
		t.Fatalf("second ResolvePeriod failed: %v", err)
	}
	if again.MoneyAtStart != 42 {
		t.Fatalf("existing input was overwritten: %+v", again)
	}
}

func TestResolvePeriodMidGameJoin(t *testing.T) {
	ctx := context.Background()
	e, db := setupEngine(t, ctx)
	game, team := newGameWithTeam(t, ctx, db)

	// A team with no history joins a game already on day 11.
	if err := db.UpdateGameDay(ctx, game.ID, 11); err != nil {
		t.Fatalf("UpdateGameDay failed: %v", err)
	}
	game.CurrentDay = 11

	in, err := e.ResolvePeriod(ctx, game, team)
	if err != nil {
		t.Fatalf("ResolvePeriod failed: %v", err)
	}
	if in.MoneyAtStart != e.Rules().StartingFunds {
		t.Fatalf("joining team not seeded: %+v", in)
	}
}

func TestResolvePeriodContinuityBroken(t *testing.T) {
	ctx := context.Background()
	e, db := setupEngine(t, ctx)
	game, team := newGameWithTeam(t, ctx, db)

	// A day-1 record exists, but the day-11 record the ledger should
	// have written does not. Resolving day 11 must refuse to invent it.
	if _, _, err := db.GetOrCreateInput(ctx, game.ID, team.ID, 1); err != nil {
		t.Fatalf("GetOrCreateInput failed: %v", err)
	}
	game.CurrentDay = 11

	if _, err := e.ResolvePeriod(ctx, game, team); !errors.Is(err, ErrContinuityBroken) {
		t.Fatalf("expected ErrContinuityBroken, got %v", err)
	}

	// The refused resolve must not have persisted a zeroed day-11
	// record, and resolving again must keep failing rather than hand
	// that record back.
	if _, err := db.GetInput(ctx, game.ID, team.ID, 11); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("refused resolve left an input behind: %v", err)
	}
	if _, err := e.ResolvePeriod(ctx, game, team); !errors.Is(err, ErrContinuityBroken) {
		t.Fatalf("second resolve should fail the same way, got %v", err)
	}
}
