// Package testutil provides fluent builders for test fixtures.
package testutil

import (
	"github.com/bfilipov/warehouse-game/internal/models"
	"github.com/bfilipov/warehouse-game/internal/util"
)

// UserBuilder provides a fluent API for creating test users.
type UserBuilder struct {
	user models.User
}

func NewUser(username string) *UserBuilder {
	return &UserBuilder{
		user: models.User{
			Username:    username,
			DisplayName: username,
			Email:       username + "@example.org",
		},
	}
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.user.IsAdmin = true
	return b
}

func (b *UserBuilder) AsManager() *UserBuilder {
	b.user.IsManager = true
	return b
}

func (b *UserBuilder) AsCashier() *UserBuilder {
	b.user.IsCashier = true
	return b
}

func (b *UserBuilder) WithTeam(teamID int64) *UserBuilder {
	b.user.TeamID = util.Ptr(teamID)
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.user.PasswordHash = hash
	return b
}

func (b *UserBuilder) Build() models.User {
	return b.user
}

// AttemptBuilder provides a fluent API for creating queued attempts.
type AttemptBuilder struct {
	ta models.TeamActivity
}

func NewAttempt(gameID, teamID int64, activityID string) *AttemptBuilder {
	return &AttemptBuilder{
		ta: models.TeamActivity{
			GameID:         gameID,
			TeamID:         teamID,
			ActivityID:     activityID,
			InputDay:       1,
			RequestedOnDay: 1,
			InitiatedOnDay: 1,
			StartedOnDay:   models.SentinelDay,
			FinishedOnDay:  models.SentinelDay,
		},
	}
}

func (b *AttemptBuilder) OnDay(day int) *AttemptBuilder {
	b.ta.InputDay = day
	b.ta.RequestedOnDay = day
	b.ta.InitiatedOnDay = day
	return b
}

func (b *AttemptBuilder) Started(day, daysNeeded int) *AttemptBuilder {
	b.ta.StartedOnDay = day
	b.ta.FinishedOnDay = day + daysNeeded
	return b
}

func (b *AttemptBuilder) Build() models.TeamActivity {
	return b.ta
}
