package postgres

import (
	"context"
	"testing"

	"voidbot/internal/domain/repository"
	"voidbot/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSelectionDB opens an in-memory database with the selections table, so
// the tests run the real upsert statement instead of a mocked repository.
func newSelectionDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.Exec(`CREATE TABLE guild_selections (
		user_id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		updated_at DATETIME
	)`).Error
	require.NoError(t, err)

	return db
}

func TestGuildSelectionRepository_SetActiveGuild_ReplacesSelection(t *testing.T) {
	repo := NewGuildSelectionRepository(newSelectionDB(t))
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.SetActiveGuild(ctx, userID, "guild-a"))
	require.NoError(t, repo.SetActiveGuild(ctx, userID, "guild-b"))

	selection, err := repo.FindActiveGuild(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "guild-b", selection.GuildID)
}

func TestGuildSelectionRepository_SetActiveGuild_KeepsOneRow(t *testing.T) {
	db := newSelectionDB(t)
	repo := NewGuildSelectionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.SetActiveGuild(ctx, userID, "guild-a"))
	require.NoError(t, repo.SetActiveGuild(ctx, userID, "guild-b"))
	require.NoError(t, repo.SetActiveGuild(ctx, userID, "guild-c"))

	var count int64
	require.NoError(t, db.Model(&model.GuildSelectionModel{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGuildSelectionRepository_SetActiveGuild_IsolatedPerUser(t *testing.T) {
	repo := NewGuildSelectionRepository(newSelectionDB(t))
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, repo.SetActiveGuild(ctx, alice, "guild-a"))
	require.NoError(t, repo.SetActiveGuild(ctx, bob, "guild-b"))
	require.NoError(t, repo.SetActiveGuild(ctx, alice, "guild-c"))

	aliceSelection, err := repo.FindActiveGuild(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "guild-c", aliceSelection.GuildID)

	bobSelection, err := repo.FindActiveGuild(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, "guild-b", bobSelection.GuildID)
}

func TestGuildSelectionRepository_FindActiveGuild_NotFound(t *testing.T) {
	repo := NewGuildSelectionRepository(newSelectionDB(t))

	_, err := repo.FindActiveGuild(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrSelectionNotFound)
}

func TestGuildSelectionRepository_ClearActiveGuild(t *testing.T) {
	repo := NewGuildSelectionRepository(newSelectionDB(t))
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.SetActiveGuild(ctx, userID, "guild-a"))
	require.NoError(t, repo.ClearActiveGuild(ctx, userID))

	_, err := repo.FindActiveGuild(ctx, userID)
	require.ErrorIs(t, err, repository.ErrSelectionNotFound)

	// Clearing with nothing selected stays a no-op.
	require.NoError(t, repo.ClearActiveGuild(ctx, userID))
}
