package engine

import (
	"context"
	"fmt"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// ValidationError reports a rejected player request. It is a user
// error, not a system one; handlers turn it into a 4xx response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateCredit checks a requested credit amount against the rules.
// Zero is always valid and means no credit this period.
func (e *Engine) ValidateCredit(amount float64) error {
	if amount == 0 {
		return nil
	}
	if amount < 0 {
		return &ValidationError{Field: "credit", Reason: "must not be negative"}
	}
	if amount > e.rules.CreditMax {
		return &ValidationError{
			Field:  "credit",
			Reason: fmt.Sprintf("must not exceed %.0f", e.rules.CreditMax),
		}
	}
	// Credit is drawn in fixed steps; float64 holds these exactly.
	if remainder := amount / e.rules.CreditStep; remainder != float64(int(remainder)) {
		return &ValidationError{
			Field:  "credit",
			Reason: fmt.Sprintf("must be a multiple of %.0f", e.rules.CreditStep),
		}
	}
	return nil
}

// RequestCredit records the amount a team wants drawn at the next
// period boundary, replacing any earlier request for the same period.
func (e *Engine) RequestCredit(ctx context.Context, in models.Input, amount float64) error {
	if err := e.ValidateCredit(amount); err != nil {
		return err
	}
	in.CreditToTake = amount
	return e.store.UpdateInput(ctx, in)
}
