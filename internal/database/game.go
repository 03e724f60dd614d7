package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// CreateGame inserts a new game starting at day 1.
func (d *Database) CreateGame(ctx context.Context) (models.Game, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx, "INSERT INTO games (current_day, is_active) VALUES (1, 1)")
	if err != nil {
		return models.Game{}, wrapGameErr("create", 0, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Game{}, wrapGameErr("create", 0, err)
	}
	return d.GetGame(ctx, id)
}

// GetGame fetches one game by ID, ErrNotFound if absent.
func (d *Database) GetGame(ctx context.Context, id int64) (models.Game, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var g models.Game
	var active int
	err := d.DB.QueryRowContext(ctx,
		"SELECT id, current_day, is_active, created_at FROM games WHERE id = ?", id).
		Scan(&g.ID, &g.CurrentDay, &active, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Game{}, wrapGameErr("get", id, ErrNotFound)
	}
	if err != nil {
		return models.Game{}, wrapGameErr("get", id, err)
	}
	g.IsActive = active == 1
	return g, nil
}

// ListActiveGames returns all active games, oldest first.
func (d *Database) ListActiveGames(ctx context.Context) ([]models.Game, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx,
		"SELECT id, current_day, is_active, created_at FROM games WHERE is_active = 1 ORDER BY id ASC")
	if err != nil {
		return nil, wrapGameErr("list", 0, err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		var active int
		if err := rows.Scan(&g.ID, &g.CurrentDay, &active, &g.CreatedAt); err != nil {
			return nil, wrapGameErr("list", 0, err)
		}
		g.IsActive = active == 1
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapGameErr("list", 0, err)
	}
	return games, nil
}

// UpdateGameDay moves the game clock to day.
func (d *Database) UpdateGameDay(ctx context.Context, id int64, day int) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, "UPDATE games SET current_day = ? WHERE id = ?", day, id)
	return wrapGameErr("update day", id, err)
}

// SetGameActive toggles the active flag.
func (d *Database) SetGameActive(ctx context.Context, id int64, active bool) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	v := 0
	if active {
		v = 1
	}
	_, err := d.DB.ExecContext(ctx, "UPDATE games SET is_active = ? WHERE id = ?", v, id)
	return wrapGameErr("set active", id, err)
}
