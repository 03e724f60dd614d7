package database

import (
	"context"

	"github.com/bfilipov/warehouse-game/internal/models"
)

// GameRepository defines game-related store operations.
type GameRepository interface {
	CreateGame(ctx context.Context) (models.Game, error)
	GetGame(ctx context.Context, id int64) (models.Game, error)
	ListActiveGames(ctx context.Context) ([]models.Game, error)
	UpdateGameDay(ctx context.Context, id int64, day int) error
	SetGameActive(ctx context.Context, id int64, active bool) error
}

// TeamRepository defines team-related store operations.
type TeamRepository interface {
	CreateTeam(ctx context.Context, displayName string) (models.Team, error)
	GetTeam(ctx context.Context, id int64) (models.Team, error)
	ListActiveTeams(ctx context.Context) ([]models.Team, error)
	ListTeamsForGame(ctx context.Context, gameID int64) ([]models.Team, error)
	AssignTeamToGame(ctx context.Context, teamID, gameID int64) error
	SetTeamActive(ctx context.Context, id int64, active bool) error
}

// UserRepository defines user-related store operations.
type UserRepository interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	AssignUserToTeam(ctx context.Context, userID, teamID int64) error
}

// ActivityRepository defines catalog store operations.
type ActivityRepository interface {
	UpsertActivity(ctx context.Context, a models.Activity) error
	GetActivity(ctx context.Context, id string) (models.Activity, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	SetActivityRequirements(ctx context.Context, activityID string, requirementIDs []string) error
	GetActivityRequirements(ctx context.Context, activityID string) ([]string, error)
}

// InputRepository defines period accounting store operations.
type InputRepository interface {
	GetInput(ctx context.Context, gameID, teamID int64, day int) (models.Input, error)
	GetOrCreateInput(ctx context.Context, gameID, teamID int64, day int) (models.Input, bool, error)
	UpdateInput(ctx context.Context, in models.Input) error
	ListInputs(ctx context.Context, gameID, teamID int64) ([]models.Input, error)
	DeleteInputsAfter(ctx context.Context, gameID, teamID int64, day int) error
}

// TeamActivityRepository defines attempt store operations.
type TeamActivityRepository interface {
	CreateTeamActivity(ctx context.Context, ta models.TeamActivity) error
	GetTeamActivity(ctx context.Context, gameID, teamID int64, activityID string) (models.TeamActivity, error)
	ListTeamActivitiesForInput(ctx context.Context, gameID, teamID int64, day int) ([]models.TeamActivity, error)
	ListTeamActivities(ctx context.Context, gameID, teamID int64) ([]models.TeamActivity, error)
	UpdateTeamActivity(ctx context.Context, ta models.TeamActivity) error
	DeleteTeamActivity(ctx context.Context, gameID, teamID int64, activityID string) error
	DeleteTeamActivitiesRequestedOn(ctx context.Context, gameID, teamID int64, day int) error
	FinishedActivityIDs(ctx context.Context, gameID, teamID int64, day int) (map[string]bool, error)
}

// PenaltyRepository defines fine store operations.
type PenaltyRepository interface {
	AddPenalty(ctx context.Context, p models.Penalty) error
	SumPenaltiesForInput(ctx context.Context, gameID, teamID int64, day int) (float64, error)
	ListPenaltiesForInput(ctx context.Context, gameID, teamID int64, day int) ([]models.Penalty, error)
}

// Store combines all repository interfaces. The engine and the HTTP
// surface consume this, never *Database directly. Tests run against a
// real sqlite store; only the notifier is mocked.
type Store interface {
	GameRepository
	TeamRepository
	UserRepository
	ActivityRepository
	InputRepository
	TeamActivityRepository
	PenaltyRepository
}

var _ Store = (*Database)(nil)
