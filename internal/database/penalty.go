package database

import (
	"context"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// AddPenalty records a fine against an Input for a specific activity.
func (d *Database) AddPenalty(ctx context.Context, p models.Penalty) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO penalties (game_id, team_id, input_day, activity_id, amount)
		VALUES (?, ?, ?, ?, ?)`,
		p.GameID, p.TeamID, p.InputDay, p.ActivityID, p.Amount)
	return wrapErr("add", "penalty", p.ActivityID, err)
}

// SumPenaltiesForInput totals the fines recorded against one Input.
func (d *Database) SumPenaltiesForInput(ctx context.Context, gameID, teamID int64, day int) (float64, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var total float64
	err := d.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM penalties WHERE game_id = ? AND team_id = ? AND input_day = ?",
		gameID, teamID, day).Scan(&total)
	if err != nil {
		return 0, wrapErr("sum", "penalty", LegacyInputKey(gameID, teamID, day), err)
	}
	return total, nil
}

// ListPenaltiesForInput returns the fines recorded against one Input.
func (d *Database) ListPenaltiesForInput(ctx context.Context, gameID, teamID int64, day int) ([]models.Penalty, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx, `
		SELECT id, game_id, team_id, input_day, activity_id, amount
		FROM penalties WHERE game_id = ? AND team_id = ? AND input_day = ? ORDER BY id ASC`,
		gameID, teamID, day)
	if err != nil {
		return nil, wrapErr("list", "penalty", "", err)
	}
	defer rows.Close()

	var out []models.Penalty
	for rows.Next() {
		var p models.Penalty
		if err := rows.Scan(&p.ID, &p.GameID, &p.TeamID, &p.InputDay, &p.ActivityID, &p.Amount); err != nil {
			return nil, wrapErr("list", "penalty", "", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list", "penalty", "", err)
	}
	return out, nil
}
