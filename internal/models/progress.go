package models

// SentinelDay is the legacy storage value meaning "not yet started" /
// "not yet finished". It exists only at the persistence boundary;
// everything above it works with Progress.
const SentinelDay = 999999999

// ActivityState enumerates the lifecycle of a TeamActivity as observed
// on a given day.
type ActivityState int

const (
	StateQueued ActivityState = iota
	StateInProgress
	StateFinished
)

func (s ActivityState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Progress is the tagged view of a TeamActivity's day fields.
// StartedDay and FinishedDay are meaningful only for the states that
// carry them.
type Progress struct {
	State       ActivityState
	StartedDay  int
	FinishedDay int
}

// ProgressAt converts the stored day fields into a tagged state for
// the given current day.
func ProgressAt(startedDay, finishedDay, currentDay int) Progress {
	if startedDay == SentinelDay {
		return Progress{State: StateQueued}
	}
	if currentDay >= finishedDay {
		return Progress{State: StateFinished, StartedDay: startedDay, FinishedDay: finishedDay}
	}
	return Progress{State: StateInProgress, StartedDay: startedDay, FinishedDay: finishedDay}
}

// DayFields converts back to the sentinel representation for storage.
func (p Progress) DayFields() (startedDay, finishedDay int) {
	if p.State == StateQueued {
		return SentinelDay, SentinelDay
	}
	return p.StartedDay, p.FinishedDay
}

// ProgressAt reports the activity's state as of the given day.
func (ta TeamActivity) ProgressAt(day int) Progress {
	return ProgressAt(ta.StartedOnDay, ta.FinishedOnDay, day)
}

// Start records that the activity began consuming funds on day and
// will complete after daysNeeded days.
func (ta *TeamActivity) Start(day, daysNeeded int) {
	ta.StartedOnDay = day
	ta.FinishedOnDay = day + daysNeeded
}
