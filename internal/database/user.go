package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bfilipov/warehouse-game/internal/models"
)

const userColumns = `id, username, display_name, email, faculty_number, password_hash,
	is_admin, is_manager, is_cashier, team_id, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (models.User, error) {
	var u models.User
	var admin, manager, cashier int
	var teamID sql.NullInt64
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.FacultyNumber,
		&u.PasswordHash, &admin, &manager, &cashier, &teamID, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	u.IsAdmin = admin == 1
	u.IsManager = manager == 1
	u.IsCashier = cashier == 1
	u.TeamID = fromNullInt64(teamID)
	return u, nil
}

// CreateUser inserts a new user. The password hash is computed by the
// caller (internal/auth), never here.
func (d *Database) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	res, err := d.DB.ExecContext(ctx, `
		INSERT INTO users (username, display_name, email, faculty_number, password_hash,
			is_admin, is_manager, is_cashier, team_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.DisplayName, u.Email, u.FacultyNumber, u.PasswordHash,
		boolToInt(u.IsAdmin), boolToInt(u.IsManager), boolToInt(u.IsCashier),
		toNullableArg(u.TeamID))
	if err != nil {
		return models.User{}, wrapUserErr("create", u.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, wrapUserErr("create", u.Username, err)
	}
	return d.GetUser(ctx, id)
}

// GetUser fetches one user by ID, ErrNotFound if absent.
func (d *Database) GetUser(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	u, err := scanUser(d.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, wrapUserErr("get", "", ErrNotFound)
	}
	if err != nil {
		return models.User{}, wrapUserErr("get", "", err)
	}
	return u, nil
}

// GetUserByUsername fetches one user by username, ErrNotFound if absent.
func (d *Database) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	u, err := scanUser(d.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, wrapUserErr("get", username, ErrNotFound)
	}
	if err != nil {
		return models.User{}, wrapUserErr("get", username, err)
	}
	return u, nil
}

// ListUsers returns all non-admin users, oldest first.
func (d *Database) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	rows, err := d.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_admin = 0 ORDER BY id ASC")
	if err != nil {
		return nil, wrapUserErr("list", "", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapUserErr("list", "", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapUserErr("list", "", err)
	}
	return users, nil
}

// AssignUserToTeam attaches a user to a team; teamID 0 detaches.
func (d *Database) AssignUserToTeam(ctx context.Context, userID, teamID int64) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx,
		"UPDATE users SET team_id = ? WHERE id = ?", nullableInt64(teamID), userID)
	return wrapUserErr("assign", "", err)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
