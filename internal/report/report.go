// Package report renders a team's period history as CSV and PDF.
package report

import (
	"context"
	"fmt"

	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/models"
)

// TeamReport carries everything needed to render one team's history.
type TeamReport struct {
	Game       models.Game
	Team       models.Team
	History    []models.Input
	Attempts   map[string]models.TeamActivity
	Activities []models.Activity
}

// Build loads a team's full period history from the store.
func Build(ctx context.Context, store database.Store, gameID, teamID int64) (TeamReport, error) {
	game, err := store.GetGame(ctx, gameID)
	if err != nil {
		return TeamReport{}, fmt.Errorf("build report: %w", err)
	}
	team, err := store.GetTeam(ctx, teamID)
	if err != nil {
		return TeamReport{}, fmt.Errorf("build report: %w", err)
	}
	history, err := store.ListInputs(ctx, gameID, teamID)
	if err != nil {
		return TeamReport{}, fmt.Errorf("build report: %w", err)
	}
	attempts, err := store.ListTeamActivities(ctx, gameID, teamID)
	if err != nil {
		return TeamReport{}, fmt.Errorf("build report: %w", err)
	}
	activities, err := store.ListActivities(ctx)
	if err != nil {
		return TeamReport{}, fmt.Errorf("build report: %w", err)
	}

	byActivity := make(map[string]models.TeamActivity, len(attempts))
	for _, ta := range attempts {
		byActivity[ta.ActivityID] = ta
	}
	return TeamReport{
		Game:       game,
		Team:       team,
		History:    history,
		Attempts:   byActivity,
		Activities: activities,
	}, nil
}

// statusOn describes one activity's state as of the given day, empty
// if the team had not requested it yet.
func (r TeamReport) statusOn(activityID string, day int) string {
	ta, ok := r.Attempts[activityID]
	if !ok || ta.RequestedOnDay > day {
		return ""
	}
	return ta.ProgressAt(day).State.String()
}
