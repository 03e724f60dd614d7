package notifier

import "context"

// Noop discards all events. Used when no Telegram token is configured.
type Noop struct{}

func (Noop) PeriodAdvanced(ctx context.Context, gameID int64, day int, teams int) {}

func (Noop) PeriodRewound(ctx context.Context, gameID int64, day int) {}
