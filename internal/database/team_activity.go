package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/models"
)

const teamActivityColumns = `game_id, team_id, activity_id, input_day,
	requested_on_day, initiated_on_day, started_on_day, finished_on_day`

func scanTeamActivity(row interface{ Scan(...interface{}) error }) (models.TeamActivity, error) {
	var ta models.TeamActivity
	err := row.Scan(&ta.GameID, &ta.TeamID, &ta.ActivityID, &ta.InputDay,
		&ta.RequestedOnDay, &ta.InitiatedOnDay, &ta.StartedOnDay, &ta.FinishedOnDay)
	return ta, err
}

// CreateTeamActivity queues a new attempt at a catalog activity. At
// most one attempt per (game, team, activity) may exist.
func (d *Database) CreateTeamActivity(ctx context.Context, ta models.TeamActivity) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO team_activities (game_id, team_id, activity_id, input_day,
			requested_on_day, initiated_on_day, started_on_day, finished_on_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ta.GameID, ta.TeamID, ta.ActivityID, ta.InputDay,
		ta.RequestedOnDay, ta.InitiatedOnDay, ta.StartedOnDay, ta.FinishedOnDay)
	return wrapErr("create", "team activity", ta.ActivityID, err)
}

// GetTeamActivity fetches one attempt, ErrNotFound if absent.
func (d *Database) GetTeamActivity(ctx context.Context, gameID, teamID int64, activityID string) (models.TeamActivity, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	ta, err := scanTeamActivity(d.DB.QueryRowContext(ctx,
		"SELECT "+teamActivityColumns+" FROM team_activities WHERE game_id = ? AND team_id = ? AND activity_id = ?",
		gameID, teamID, activityID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.TeamActivity{}, wrapErr("get", "team activity", activityID, ErrNotFound)
	}
	if err != nil {
		return models.TeamActivity{}, wrapErr("get", "team activity", activityID, err)
	}
	return ta, nil
}

// ListTeamActivitiesForInput returns the attempts anchored to one
// Input, in the order they were queued. The eligibility evaluator
// iterates this order; it is a FIFO, not a scheduler.
func (d *Database) ListTeamActivitiesForInput(ctx context.Context, gameID, teamID int64, day int) ([]models.TeamActivity, error) {
	return d.listTeamActivities(ctx,
		"SELECT "+teamActivityColumns+" FROM team_activities WHERE game_id = ? AND team_id = ? AND input_day = ? ORDER BY rowid ASC",
		gameID, teamID, day)
}

// ListTeamActivities returns all of a team's attempts in queue order.
func (d *Database) ListTeamActivities(ctx context.Context, gameID, teamID int64) ([]models.TeamActivity, error) {
	return d.listTeamActivities(ctx,
		"SELECT "+teamActivityColumns+" FROM team_activities WHERE game_id = ? AND team_id = ? ORDER BY rowid ASC",
		gameID, teamID)
}

func (d *Database) listTeamActivities(ctx context.Context, query string, args ...interface{}) ([]models.TeamActivity, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list", "team activity", "", err)
	}
	defer rows.Close()

	var out []models.TeamActivity
	for rows.Next() {
		ta, err := scanTeamActivity(rows)
		if err != nil {
			return nil, wrapErr("list", "team activity", "", err)
		}
		out = append(out, ta)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list", "team activity", "", err)
	}
	return out, nil
}

// UpdateTeamActivity rewrites the mutable fields of an attempt.
func (d *Database) UpdateTeamActivity(ctx context.Context, ta models.TeamActivity) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, `
		UPDATE team_activities SET input_day = ?, requested_on_day = ?,
			initiated_on_day = ?, started_on_day = ?, finished_on_day = ?
		WHERE game_id = ? AND team_id = ? AND activity_id = ?`,
		ta.InputDay, ta.RequestedOnDay, ta.InitiatedOnDay, ta.StartedOnDay, ta.FinishedOnDay,
		ta.GameID, ta.TeamID, ta.ActivityID)
	return wrapErr("update", "team activity", ta.ActivityID, err)
}

// DeleteTeamActivity removes one queued attempt.
func (d *Database) DeleteTeamActivity(ctx context.Context, gameID, teamID int64, activityID string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx,
		"DELETE FROM team_activities WHERE game_id = ? AND team_id = ? AND activity_id = ?",
		gameID, teamID, activityID)
	return wrapErr("delete", "team activity", activityID, err)
}

// DeleteTeamActivitiesRequestedOn removes attempts first requested on
// the given day. Rewind uses this to undo provisional actions taken
// during the period being rolled back.
func (d *Database) DeleteTeamActivitiesRequestedOn(ctx context.Context, gameID, teamID int64, day int) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx,
		"DELETE FROM team_activities WHERE game_id = ? AND team_id = ? AND requested_on_day = ?",
		gameID, teamID, day)
	return wrapErr("delete requested", "team activity", "", err)
}

// FinishedActivityIDs returns the catalog codes a team has finished by
// the given day.
func (d *Database) FinishedActivityIDs(ctx context.Context, gameID, teamID int64, day int) (map[string]bool, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx,
		"SELECT activity_id FROM team_activities WHERE game_id = ? AND team_id = ? AND finished_on_day <= ?",
		gameID, teamID, day)
	if err != nil {
		return nil, wrapErr("list finished", "team activity", "", err)
	}
	defer rows.Close()

	finished := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr("list finished", "team activity", "", err)
		}
		finished[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list finished", "team activity", "", err)
	}
	return finished, nil
}
