package database

import (
	"context"
	"testing"

	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/models"
)

func testUser(username string, admin bool) models.User {
	return models.User{
		Username:     username,
		DisplayName:  username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsAdmin:      admin,
	}
}

// TestDataBuilder assembles a seeded game with assigned teams.
type TestDataBuilder struct {
	t       *testing.T
	ctx     context.Context
	db      *Database
	game    models.Game
	teamIDs []int64
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	return &TestDataBuilder{t: t, ctx: ctx, db: db}
}

func (b *TestDataBuilder) WithCatalog() *TestDataBuilder {
	b.t.Helper()
	if err := catalog.Seed(b.ctx, b.db); err != nil {
		b.t.Fatalf("catalog seed failed: %v", err)
	}
	return b
}

func (b *TestDataBuilder) WithGame() *TestDataBuilder {
	b.t.Helper()
	game, err := b.db.CreateGame(b.ctx)
	if err != nil {
		b.t.Fatalf("CreateGame failed: %v", err)
	}
	b.game = game
	return b
}

func (b *TestDataBuilder) WithTeams(count int) *TestDataBuilder {
	b.t.Helper()
	if b.game.ID == 0 {
		b.WithGame()
	}
	for i := 0; i < count; i++ {
		team, err := b.db.CreateTeam(b.ctx, "Team")
		if err != nil {
			b.t.Fatalf("CreateTeam failed: %v", err)
		}
		if err := b.db.AssignTeamToGame(b.ctx, team.ID, b.game.ID); err != nil {
			b.t.Fatalf("AssignTeamToGame failed: %v", err)
		}
		b.teamIDs = append(b.teamIDs, team.ID)
	}
	return b
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}

func (b *TestDataBuilder) Game() models.Game {
	return b.game
}

func (b *TestDataBuilder) TeamID(i int) int64 {
	if i >= len(b.teamIDs) {
		b.t.Fatalf("no team at index %d", i)
	}
	return b.teamIDs[i]
}
