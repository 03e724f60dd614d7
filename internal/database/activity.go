package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// UpsertActivity inserts or refreshes one catalog activity.
func (d *Database) UpsertActivity(ctx context.Context, a models.Activity) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO activities (id, title, cost, days_needed) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title,
			cost = excluded.cost, days_needed = excluded.days_needed`,
		a.ID, a.Title, a.Cost, a.DaysNeeded)
	return wrapActivityErr("upsert", a.ID, err)
}

// GetActivity fetches one catalog activity, ErrNotFound if absent.
func (d *Database) GetActivity(ctx context.Context, id string) (models.Activity, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var a models.Activity
	err := d.DB.QueryRowContext(ctx,
		"SELECT id, title, cost, days_needed FROM activities WHERE id = ?", id).
		Scan(&a.ID, &a.Title, &a.Cost, &a.DaysNeeded)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Activity{}, wrapActivityErr("get", id, ErrNotFound)
	}
	if err != nil {
		return models.Activity{}, wrapActivityErr("get", id, err)
	}
	return a, nil
}

// ListActivities returns the whole catalog in code order.
func (d *Database) ListActivities(ctx context.Context) ([]models.Activity, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx,
		"SELECT id, title, cost, days_needed FROM activities ORDER BY id ASC")
	if err != nil {
		return nil, wrapActivityErr("list", "", err)
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Cost, &a.DaysNeeded); err != nil {
			return nil, wrapActivityErr("list", "", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapActivityErr("list", "", err)
	}
	return out, nil
}

// SetActivityRequirements replaces the prerequisite set of an activity.
func (d *Database) SetActivityRequirements(ctx context.Context, activityID string, requirementIDs []string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM activity_requirements WHERE activity_id = ?", activityID); err != nil {
			return err
		}
		for _, req := range requirementIDs {
			if req == activityID {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO activity_requirements (activity_id, requirement_id) VALUES (?, ?)",
				activityID, req); err != nil {
				return err
			}
		}
		return nil
	})
	return wrapActivityErr("set requirements", activityID, err)
}

// GetActivityRequirements returns the prerequisite codes of an activity.
func (d *Database) GetActivityRequirements(ctx context.Context, activityID string) ([]string, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx,
		"SELECT requirement_id FROM activity_requirements WHERE activity_id = ? ORDER BY requirement_id ASC",
		activityID)
	if err != nil {
		return nil, wrapActivityErr("get requirements", activityID, err)
	}
	defer rows.Close()

	var reqs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapActivityErr("get requirements", activityID, err)
		}
		reqs = append(reqs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapActivityErr("get requirements", activityID, err)
	}
	return reqs, nil
}
