package engine

import (
	"context"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// TeamAdvance is the per-team outcome of one period advance.
type TeamAdvance struct {
	TeamID       int64
	Started      []models.TeamActivity
	Deferred     []models.TeamActivity
	Leftover     float64
	CompletedAll bool
}

// AdvanceSummary reports one AdvancePeriod call.
type AdvanceSummary struct {
	GameID        int64
	FromDay       int
	ToDay         int
	MaxDayReached bool
	Teams         []TeamAdvance
}

// RewindSummary reports one RewindPeriod call.
type RewindSummary struct {
	GameID  int64
	FromDay int
	ToDay   int
	Clamped bool
}

// AdvancePeriod moves the game forward by one period. For every team
// it resolves the current Input, evaluates eligibility against it,
// populates the next Input through the ledger, and only then
// increments the shared day counter, so no team ever observes a
// partially advanced clock.
//
// Reaching the maximum day is a reported no-op, not an error.
func (e *Engine) AdvancePeriod(ctx context.Context, game models.Game) (AdvanceSummary, error) {
	sum := AdvanceSummary{GameID: game.ID, FromDay: game.CurrentDay, ToDay: game.CurrentDay}
	if game.CurrentDay >= e.rules.MaxDay {
		sum.MaxDayReached = true
		return sum, nil
	}

	teams, err := e.store.ListTeamsForGame(ctx, game.ID)
	if err != nil {
		return sum, err
	}
	nextDay := game.CurrentDay + e.rules.PeriodDays

	for _, team := range teams {
		current, err := e.ResolvePeriod(ctx, game, team)
		if err != nil {
			return sum, err
		}
		next, _, err := e.store.GetOrCreateInput(ctx, game.ID, team.ID, nextDay)
		if err != nil {
			return sum, err
		}

		started, deferred, leftover, err := e.Evaluate(ctx, game, team, current, next)
		if err != nil {
			return sum, err
		}

		completedAll, err := e.completedAll(ctx, game.ID, team.ID, nextDay)
		if err != nil {
			return sum, err
		}
		if err := e.AdvanceLedger(ctx, &current, &next, leftover, completedAll); err != nil {
			return sum, err
		}

		sum.Teams = append(sum.Teams, TeamAdvance{
			TeamID:       team.ID,
			Started:      started,
			Deferred:     deferred,
			Leftover:     leftover,
			CompletedAll: completedAll,
		})
	}

	if err := e.store.UpdateGameDay(ctx, game.ID, nextDay); err != nil {
		return sum, err
	}
	sum.ToDay = nextDay

	if e.notifier != nil {
		e.notifier.PeriodAdvanced(ctx, game.ID, nextDay, len(teams))
	}
	return sum, nil
}

// completedAll reports whether the team's finished set covers the full
// catalog as of the period boundary being crossed. A team with no
// attempts at all has an empty finished set and never qualifies.
func (e *Engine) completedAll(ctx context.Context, gameID, teamID int64, boundaryDay int) (bool, error) {
	finished, err := e.store.FinishedActivityIDs(ctx, gameID, teamID, boundaryDay)
	if err != nil {
		return false, err
	}
	all, err := e.store.ListActivities(ctx)
	if err != nil {
		return false, err
	}
	if len(all) == 0 || len(finished) < len(all) {
		return false, nil
	}
	for _, a := range all {
		if !finished[a.ID] {
			return false, nil
		}
	}
	return true, nil
}

// RewindPeriod moves the game back by one period, floored at day 1.
// Inputs activating strictly after the new day are deleted together
// with their penalties; attempts that had been deferred onto them are
// restored to the now-current period as queued; attempts started
// during the undone advance revert to queued so the next advance
// charges their cost again; attempts first requested during the
// rewound period are deleted as provisional. Rewinding from day 1 is
// silently clamped, not an error.
func (e *Engine) RewindPeriod(ctx context.Context, game models.Game) (RewindSummary, error) {
	sum := RewindSummary{GameID: game.ID, FromDay: game.CurrentDay, ToDay: game.CurrentDay}
	newDay := game.CurrentDay - e.rules.PeriodDays
	if newDay < 1 {
		newDay = 1
	}
	if newDay == game.CurrentDay {
		sum.Clamped = true
		return sum, nil
	}
	oldDay := game.CurrentDay

	teams, err := e.store.ListTeamsForGame(ctx, game.ID)
	if err != nil {
		return sum, err
	}
	for _, team := range teams {
		if err := e.rewindTeam(ctx, game.ID, team.ID, oldDay, newDay); err != nil {
			return sum, err
		}
	}

	if err := e.store.UpdateGameDay(ctx, game.ID, newDay); err != nil {
		return sum, err
	}
	sum.ToDay = newDay

	if e.notifier != nil {
		e.notifier.PeriodRewound(ctx, game.ID, newDay)
	}
	return sum, nil
}

func (e *Engine) rewindTeam(ctx context.Context, gameID, teamID int64, oldDay, newDay int) error {
	// Pull deferred attempts back before the cascade delete reaches
	// them: anything anchored to a future Input but requested on or
	// before the new day was queued legitimately and reverts to queued.
	// Attempts started on or after the new day were charged against the
	// deleted Input's balance; they revert to queued too, otherwise the
	// next advance would skip them and their cost would never be taken.
	attempts, err := e.store.ListTeamActivities(ctx, gameID, teamID)
	if err != nil {
		return err
	}
	for _, ta := range attempts {
		switch {
		case ta.InputDay > newDay && ta.RequestedOnDay <= newDay:
			ta.InputDay = newDay
			ta.InitiatedOnDay = newDay
		case ta.StartedOnDay != models.SentinelDay && ta.StartedOnDay >= newDay:
			// keep its anchoring, just undo the start
		default:
			continue
		}
		ta.StartedOnDay, ta.FinishedOnDay = models.Progress{State: models.StateQueued}.DayFields()
		if err := e.store.UpdateTeamActivity(ctx, ta); err != nil {
			return err
		}
	}

	if err := e.store.DeleteInputsAfter(ctx, gameID, teamID, newDay); err != nil {
		return err
	}
	if err := e.store.DeleteTeamActivitiesRequestedOn(ctx, gameID, teamID, oldDay); err != nil {
		return err
	}

	current, _, err := e.store.GetOrCreateInput(ctx, gameID, teamID, newDay)
	if err != nil {
		return err
	}
	current.CreditToTake = 0
	return e.store.UpdateInput(ctx, current)
}
