package engine

import (
	"context"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/models"
)

// ResolvePeriod returns the Input keyed by (game, team, current day),
// creating and persisting it on first access.
//
// A newly created day-1 Input is seeded with the starting funds, taken
// as opening credit. Later periods are populated by the ledger during
// the advance that creates them; if the resolver has to create one and
// a predecessor period exists, the ledger write was lost and the call
// fails with ErrContinuityBroken. A created Input with no predecessor
// belongs to a team joining mid-game and is seeded like day 1.
func (e *Engine) ResolvePeriod(ctx context.Context, game models.Game, team models.Team) (models.Input, error) {
	in, err := e.store.GetInput(ctx, game.ID, team.ID, game.CurrentDay)
	if err == nil {
		return in, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return models.Input{}, err
	}

	// The continuity check runs before anything is inserted so a
	// refused resolve leaves no zeroed Input behind for a later call
	// to find.
	if game.CurrentDay > 1 {
		_, err := e.store.GetInput(ctx, game.ID, team.ID, game.CurrentDay-e.rules.PeriodDays)
		if err == nil {
			return models.Input{}, ErrContinuityBroken
		}
		if !errors.Is(err, database.ErrNotFound) {
			return models.Input{}, err
		}
	}

	in, _, err = e.store.GetOrCreateInput(ctx, game.ID, team.ID, game.CurrentDay)
	if err != nil {
		return models.Input{}, err
	}
	in.CreditTaken = e.rules.StartingFunds
	in.MoneyAtStart = e.rules.StartingFunds
	if err := e.store.UpdateInput(ctx, in); err != nil {
		return models.Input{}, err
	}
	return in, nil
}
