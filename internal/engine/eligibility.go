package engine

import (
	"context"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// Evaluate walks the current Input's queued activities in the order
// they were added and decides which can start now.
//
// An activity starts when every prerequisite is finished for this team
// by the current day and its cost fits the running balance; starting
// subtracts the cost. Anything else is deferred: a fixed fine is
// recorded against the next period's Input and the attempt is
// re-anchored onto it, so it re-enters evaluation on the following
// advance. No reordering by cost or prerequisite depth happens; this
// is a FIFO, not an optimal scheduler.
//
// Returns the started and deferred attempts plus the leftover balance.
func (e *Engine) Evaluate(ctx context.Context, game models.Game, team models.Team, current, next models.Input) (started, deferred []models.TeamActivity, leftover float64, err error) {
	queue, err := e.store.ListTeamActivitiesForInput(ctx, game.ID, team.ID, current.ActiveAtDay)
	if err != nil {
		return nil, nil, 0, err
	}
	finished, err := e.store.FinishedActivityIDs(ctx, game.ID, team.ID, game.CurrentDay)
	if err != nil {
		return nil, nil, 0, err
	}

	balance := current.MoneyAtStart
	for _, ta := range queue {
		if ta.ProgressAt(game.CurrentDay).State != models.StateQueued {
			continue
		}

		act, err := e.store.GetActivity(ctx, ta.ActivityID)
		if err != nil {
			// A queued attempt at an unknown activity is an invariant
			// violation; abort the unit of work.
			return nil, nil, 0, err
		}

		eligible, err := e.prerequisitesMet(ctx, ta.ActivityID, finished)
		if err != nil {
			return nil, nil, 0, err
		}
		if eligible && float64(act.Cost) <= balance {
			ta.Start(game.CurrentDay, act.DaysNeeded)
			if err := e.store.UpdateTeamActivity(ctx, ta); err != nil {
				return nil, nil, 0, err
			}
			balance -= float64(act.Cost)
			started = append(started, ta)
			continue
		}

		if err := e.deferAttempt(ctx, ta, next); err != nil {
			return nil, nil, 0, err
		}
		deferred = append(deferred, ta)
	}
	return started, deferred, balance, nil
}

func (e *Engine) prerequisitesMet(ctx context.Context, activityID string, finished map[string]bool) (bool, error) {
	reqs, err := e.store.GetActivityRequirements(ctx, activityID)
	if err != nil {
		return false, err
	}
	for _, req := range reqs {
		if !finished[req] {
			return false, nil
		}
	}
	return true, nil
}

// deferAttempt fines the next period and moves the attempt onto it.
func (e *Engine) deferAttempt(ctx context.Context, ta models.TeamActivity, next models.Input) error {
	if err := e.store.AddPenalty(ctx, models.Penalty{
		GameID:     ta.GameID,
		TeamID:     ta.TeamID,
		InputDay:   next.ActiveAtDay,
		ActivityID: ta.ActivityID,
		Amount:     e.rules.PenaltyFine,
	}); err != nil {
		return err
	}
	ta.InputDay = next.ActiveAtDay
	ta.InitiatedOnDay = next.ActiveAtDay
	return e.store.UpdateTeamActivity(ctx, ta)
}
