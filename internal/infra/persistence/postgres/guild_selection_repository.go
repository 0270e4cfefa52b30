package postgres

import (
	"context"
	"time"

	"voidbot/internal/domain/entity"
	domainerrors "voidbot/internal/domain/errors"
	"voidbot/internal/domain/repository"
	"voidbot/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// guildSelectionRepository implements the repository.GuildSelectionRepository interface using GORM.
type guildSelectionRepository struct {
	db *gorm.DB
}

// NewGuildSelectionRepository is the constructor for guildSelectionRepository.
func NewGuildSelectionRepository(db *gorm.DB) repository.GuildSelectionRepository {
	return &guildSelectionRepository{db: db}
}

// SetActiveGuild records guildID as the user's active guild. The upsert on
// the user_id primary key replaces any previous selection in one statement,
// which is what keeps the one-active-guild rule safe under concurrent writes.
func (repo *guildSelectionRepository) SetActiveGuild(ctx context.Context, userID uuid.UUID, guildID string) error {
	selectionM := &model.GuildSelectionModel{
		UserID:    userID,
		GuildID:   guildID,
		UpdatedAt: time.Now(),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"guild_id", "updated_at"}),
		}).
		Create(selectionM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "selection references unknown user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to set active guild")
	}

	return nil
}

// FindActiveGuild retrieves the user's current selection.
func (repo *guildSelectionRepository) FindActiveGuild(ctx context.Context, userID uuid.UUID) (*entity.GuildSelection, error) {
	var selectionM model.GuildSelectionModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&selectionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSelectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find active guild")
	}

	return &entity.GuildSelection{
		UserID:    selectionM.UserID,
		GuildID:   selectionM.GuildID,
		UpdatedAt: selectionM.UpdatedAt,
	}, nil
}

// ClearActiveGuild removes the user's selection. Clearing a user with no
// selection is not an error.
func (repo *guildSelectionRepository) ClearActiveGuild(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.GuildSelectionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear active guild")
	}

	return nil
}
