// Package database implements the sqlite persistence layer for the
// warehouse simulation. It is the single source of truth and sole
// coordination point: the engine holds no caches and re-reads state at
// the start of every call.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

// Database wraps the sql connection and owns the schema.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (or creates) the sqlite database at path and applies the
// schema and migrations.
func Open(ctx context.Context, path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &Database{DB: db, dbFile: path}
	if err := d.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	d.migrate(ctx)
	return d, nil
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	return d.DB.Close()
}

func (d *Database) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			current_day INTEGER NOT NULL DEFAULT 1,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS teams (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			display_name TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			game_id INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(game_id) REFERENCES games(id)
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			display_name TEXT,
			email TEXT,
			faculty_number TEXT,
			password_hash TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			is_manager INTEGER NOT NULL DEFAULT 0,
			is_cashier INTEGER NOT NULL DEFAULT 0,
			team_id INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(team_id) REFERENCES teams(id)
		);`,
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			cost INTEGER NOT NULL,
			days_needed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS activity_requirements (
			activity_id TEXT NOT NULL,
			requirement_id TEXT NOT NULL,
			PRIMARY KEY (activity_id, requirement_id),
			FOREIGN KEY(activity_id) REFERENCES activities(id),
			FOREIGN KEY(requirement_id) REFERENCES activities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS inputs (
			game_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			active_at_day INTEGER NOT NULL,
			credit_taken REAL NOT NULL DEFAULT 0,
			credit_to_take REAL NOT NULL DEFAULT 0,
			money_at_start REAL NOT NULL DEFAULT 0,
			money_at_end REAL NOT NULL DEFAULT 0,
			interest_cost REAL NOT NULL DEFAULT 0,
			rent_cost REAL NOT NULL DEFAULT 0,
			penalty_cost REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (game_id, team_id, active_at_day),
			FOREIGN KEY(game_id) REFERENCES games(id),
			FOREIGN KEY(team_id) REFERENCES teams(id)
		);`,
		`CREATE TABLE IF NOT EXISTS team_activities (
			game_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			activity_id TEXT NOT NULL,
			input_day INTEGER NOT NULL,
			requested_on_day INTEGER NOT NULL,
			initiated_on_day INTEGER NOT NULL,
			started_on_day INTEGER NOT NULL DEFAULT 999999999,
			finished_on_day INTEGER NOT NULL DEFAULT 999999999,
			PRIMARY KEY (game_id, team_id, activity_id),
			FOREIGN KEY(activity_id) REFERENCES activities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS penalties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			input_day INTEGER NOT NULL,
			activity_id TEXT NOT NULL,
			amount REAL NOT NULL
		);`,
	}

	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// migrate applies best-effort column additions for databases created
// by earlier versions. Errors are ignored; the columns already exist.
func (d *Database) migrate(ctx context.Context) {
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE users ADD COLUMN faculty_number TEXT")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE team_activities ADD COLUMN requested_on_day INTEGER NOT NULL DEFAULT 0")
}

// WithTx runs fn inside a transaction, rolling back on error.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// LegacyInputKey reproduces the historical string identifier of an
// Input. External reports still parse this format; nothing else
// should.
func LegacyInputKey(gameID, teamID int64, day int) string {
	return fmt.Sprintf("%d_%d_%d", gameID, teamID, day)
}
