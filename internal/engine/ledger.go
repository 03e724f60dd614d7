package engine

import (
	"context"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// rentDue reports whether a period activating on day falls on a
// monthly boundary and owes rent.
func (e *Engine) rentDue(day int) bool {
	return (day-1)%e.rules.DaysPerMonth == 0
}

// interestFor returns one period's interest on the given cumulative
// credit. Fractional amounts are preserved, not rounded; display code
// formats them.
func (e *Engine) interestFor(creditTaken float64) float64 {
	return creditTaken * e.rules.MonthlyInterestRate *
		float64(e.rules.PeriodDays) / float64(e.rules.DaysPerMonth)
}

// completionBonus returns the end-of-game reward for a team that has
// finished the whole catalog, zero otherwise.
func (e *Engine) completionBonus(completedAll bool) float64 {
	if !completedAll {
		return 0
	}
	return e.rules.ProfitPerDay * float64(e.rules.PeriodDays)
}

// AdvanceLedger carries money, credit, interest, rent and penalties
// from the current Input into the next one.
//
// Interest accrues on the current period's cumulative credit, not the
// new figure. The completion bonus pays down credit and adds to cash.
// Penalties summed here were written against the next Input by the
// eligibility evaluator during this same advance. Finally the current
// Input's money-at-end is set equal to the next Input's
// money-at-start: the continuity invariant across period boundaries.
func (e *Engine) AdvanceLedger(ctx context.Context, current, next *models.Input, leftover float64, completedAll bool) error {
	bonus := e.completionBonus(completedAll)

	next.CreditTaken = current.CreditTaken + current.CreditToTake - bonus
	next.InterestCost = e.interestFor(current.CreditTaken)
	if e.rentDue(next.ActiveAtDay) {
		next.RentCost = e.rules.RentPerMonth
	} else {
		next.RentCost = 0
	}

	penalties, err := e.store.SumPenaltiesForInput(ctx, next.GameID, next.TeamID, next.ActiveAtDay)
	if err != nil {
		return err
	}
	next.PenaltyCost = penalties

	next.MoneyAtStart = leftover + current.CreditToTake + bonus -
		next.PenaltyCost - next.InterestCost - next.RentCost
	current.MoneyAtEnd = next.MoneyAtStart

	if err := e.store.UpdateInput(ctx, *next); err != nil {
		return err
	}
	return e.store.UpdateInput(ctx, *current)
}
