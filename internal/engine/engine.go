// Package engine implements the period-advancement and
// funds-accounting core of the warehouse simulation: resolving the
// current accounting period, deciding which queued activities can
// start, carrying money, credit, interest, rent and penalties across
// period boundaries, and driving the shared game clock.
//
// The engine holds no state of its own; every call re-reads from the
// store. The game's current day is always taken from the Game value
// passed in, never from ambient state.
package engine

import (
	"context"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/database"
)

// ErrContinuityBroken reports an Input whose predecessor period is
// missing. This is a programming-error-class failure: the caller
// aborts the unit of work.
var ErrContinuityBroken = errors.New("input continuity broken")

// Notifier receives clock events after they are committed. The engine
// never fails an advance because a notification failed.
//
//go:generate mockgen -source=engine.go -destination=mock_notifier_test.go -package=engine
type Notifier interface {
	PeriodAdvanced(ctx context.Context, gameID int64, day int, teams int)
	PeriodRewound(ctx context.Context, gameID int64, day int)
}

// Engine wires the store, the rule constants, and an optional notifier.
type Engine struct {
	store    database.Store
	rules    config.Rules
	notifier Notifier
}

// New creates an engine over the given store with the given rules.
func New(store database.Store, rules config.Rules) *Engine {
	return &Engine{store: store, rules: rules}
}

// WithNotifier attaches a clock-event notifier.
func (e *Engine) WithNotifier(n Notifier) *Engine {
	e.notifier = n
	return e
}

// Rules exposes the rule set the engine runs under.
func (e *Engine) Rules() config.Rules {
	return e.rules
}
