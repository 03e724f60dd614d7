package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/models"
)

const inputColumns = `game_id, team_id, active_at_day, credit_taken, credit_to_take,
	money_at_start, money_at_end, interest_cost, rent_cost, penalty_cost`

func scanInput(row interface{ Scan(...interface{}) error }) (models.Input, error) {
	var in models.Input
	err := row.Scan(&in.GameID, &in.TeamID, &in.ActiveAtDay, &in.CreditTaken,
		&in.CreditToTake, &in.MoneyAtStart, &in.MoneyAtEnd, &in.InterestCost,
		&in.RentCost, &in.PenaltyCost)
	return in, err
}

// GetInput fetches the Input keyed by (game, team, day), ErrNotFound
// if absent.
func (d *Database) GetInput(ctx context.Context, gameID, teamID int64, day int) (models.Input, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	in, err := scanInput(d.DB.QueryRowContext(ctx,
		"SELECT "+inputColumns+" FROM inputs WHERE game_id = ? AND team_id = ? AND active_at_day = ?",
		gameID, teamID, day))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Input{}, wrapInputErr("get", gameID, teamID, day, ErrNotFound)
	}
	if err != nil {
		return models.Input{}, wrapInputErr("get", gameID, teamID, day, err)
	}
	return in, nil
}

// GetOrCreateInput fetches the Input keyed by (game, team, day),
// creating a zeroed one if absent. The created flag reports whether a
// new row was inserted.
func (d *Database) GetOrCreateInput(ctx context.Context, gameID, teamID int64, day int) (models.Input, bool, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO inputs (game_id, team_id, active_at_day) VALUES (?, ?, ?)`,
		gameID, teamID, day)
	if err != nil {
		return models.Input{}, false, wrapInputErr("get or create", gameID, teamID, day, err)
	}
	created := false
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		created = true
	}
	in, err := d.GetInput(ctx, gameID, teamID, day)
	if err != nil {
		return models.Input{}, false, err
	}
	return in, created, nil
}

// UpdateInput rewrites the mutable fields of an existing Input.
func (d *Database) UpdateInput(ctx context.Context, in models.Input) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, `
		UPDATE inputs SET credit_taken = ?, credit_to_take = ?, money_at_start = ?,
			money_at_end = ?, interest_cost = ?, rent_cost = ?, penalty_cost = ?
		WHERE game_id = ? AND team_id = ? AND active_at_day = ?`,
		in.CreditTaken, in.CreditToTake, in.MoneyAtStart, in.MoneyAtEnd,
		in.InterestCost, in.RentCost, in.PenaltyCost,
		in.GameID, in.TeamID, in.ActiveAtDay)
	return wrapInputErr("update", in.GameID, in.TeamID, in.ActiveAtDay, err)
}

// ListInputs returns a team's full Input history, ascending by
// activation day. Reports rely on this ordering.
func (d *Database) ListInputs(ctx context.Context, gameID, teamID int64) ([]models.Input, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx,
		"SELECT "+inputColumns+" FROM inputs WHERE game_id = ? AND team_id = ? ORDER BY active_at_day ASC",
		gameID, teamID)
	if err != nil {
		return nil, wrapInputErr("list", gameID, teamID, 0, err)
	}
	defer rows.Close()

	var out []models.Input
	for rows.Next() {
		in, err := scanInput(rows)
		if err != nil {
			return nil, wrapInputErr("list", gameID, teamID, 0, err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapInputErr("list", gameID, teamID, 0, err)
	}
	return out, nil
}

// DeleteInputsAfter removes a team's Inputs whose activation day lies
// strictly after day, cascading to their anchored team activities and
// penalties. Rewinding the clock treats that state as never-happened.
func (d *Database) DeleteInputsAfter(ctx context.Context, gameID, teamID int64, day int) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM penalties WHERE game_id = ? AND team_id = ? AND input_day > ?",
			gameID, teamID, day); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM team_activities WHERE game_id = ? AND team_id = ? AND input_day > ?",
			gameID, teamID, day); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"DELETE FROM inputs WHERE game_id = ? AND team_id = ? AND active_at_day > ?",
			gameID, teamID, day)
		return err
	})
	return wrapInputErr("delete after", gameID, teamID, day, err)
}
