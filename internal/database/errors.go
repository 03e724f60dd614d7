package database

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups for rows that do not exist.
// Get-or-create paths never return it; absence triggers creation there.
var ErrNotFound = errors.New("not found")

// OpError wraps a failed store operation with its resource and key.
type OpError struct {
	Op       string
	Resource string
	Key      string
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Resource, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(op, resource, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: resource, Key: key, Err: err}
}

func wrapGameErr(op string, id int64, err error) error {
	return wrapErr(op, "game", fmt.Sprintf("%d", id), err)
}

func wrapTeamErr(op string, id int64, err error) error {
	return wrapErr(op, "team", fmt.Sprintf("%d", id), err)
}

func wrapUserErr(op, username string, err error) error {
	return wrapErr(op, "user", username, err)
}

func wrapInputErr(op string, gameID, teamID int64, day int, err error) error {
	return wrapErr(op, "input", LegacyInputKey(gameID, teamID, day), err)
}

func wrapActivityErr(op, id string, err error) error {
	return wrapErr(op, "activity", id, err)
}
