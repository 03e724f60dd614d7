package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// CreateTeam inserts a new unassigned team.
func (d *Database) CreateTeam(ctx context.Context, displayName string) (models.Team, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx,
		"INSERT INTO teams (display_name, is_active) VALUES (?, 1)", displayName)
	if err != nil {
		return models.Team{}, wrapTeamErr("create", 0, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Team{}, wrapTeamErr("create", 0, err)
	}
	return d.GetTeam(ctx, id)
}

func scanTeam(row interface{ Scan(...interface{}) error }) (models.Team, error) {
	var t models.Team
	var active int
	var gameID sql.NullInt64
	if err := row.Scan(&t.ID, &t.DisplayName, &active, &gameID, &t.CreatedAt); err != nil {
		return models.Team{}, err
	}
	t.IsActive = active == 1
	t.GameID = fromNullInt64(gameID)
	return t, nil
}

// GetTeam fetches one team by ID, ErrNotFound if absent.
func (d *Database) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	t, err := scanTeam(d.DB.QueryRowContext(ctx,
		"SELECT id, display_name, is_active, game_id, created_at FROM teams WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, wrapTeamErr("get", id, ErrNotFound)
	}
	if err != nil {
		return models.Team{}, wrapTeamErr("get", id, err)
	}
	return t, nil
}

// ListActiveTeams returns all active teams, oldest first.
func (d *Database) ListActiveTeams(ctx context.Context) ([]models.Team, error) {
	return d.listTeams(ctx,
		"SELECT id, display_name, is_active, game_id, created_at FROM teams WHERE is_active = 1 ORDER BY id ASC")
}

// ListTeamsForGame returns the active teams assigned to a game, in
// assignment (ID) order. The clock iterates teams in this order.
func (d *Database) ListTeamsForGame(ctx context.Context, gameID int64) ([]models.Team, error) {
	return d.listTeams(ctx,
		"SELECT id, display_name, is_active, game_id, created_at FROM teams WHERE game_id = ? AND is_active = 1 ORDER BY id ASC",
		gameID)
}

func (d *Database) listTeams(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapTeamErr("list", 0, err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, wrapTeamErr("list", 0, err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapTeamErr("list", 0, err)
	}
	return teams, nil
}

// AssignTeamToGame attaches a team to a game; gameID 0 detaches.
func (d *Database) AssignTeamToGame(ctx context.Context, teamID, gameID int64) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx,
		"UPDATE teams SET game_id = ? WHERE id = ?", nullableInt64(gameID), teamID)
	return wrapTeamErr("assign", teamID, err)
}

// SetTeamActive toggles the active flag.
func (d *Database) SetTeamActive(ctx context.Context, id int64, active bool) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	v := 0
	if active {
		v = 1
	}
	_, err := d.DB.ExecContext(ctx, "UPDATE teams SET is_active = ? WHERE id = ?", v, id)
	return wrapTeamErr("set active", id, err)
}
