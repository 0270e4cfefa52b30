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
)

// sessionRepository implements the repository.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// CreateSession persists a new session record.
func (repo *sessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "session token hash collision")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "session references unknown user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindSessionByID retrieves a session by its unique ID.
func (repo *sessionRepository) FindSessionByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by id")
	}

	return toSessionDomain(&sessionM), nil
}

// DeleteSession removes a session by its ID, effectively logging out.
// Deleting an already deleted session is not an error, so a duplicate logout
// stays idempotent.
func (repo *sessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

// DeleteExpiredSessions removes all expired sessions from the database.
func (repo *sessionRepository) DeleteExpiredSessions(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&model.SessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete expired sessions")
	}

	return nil
}

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:                   data.ID,
		UserID:               data.UserID,
		TokenHash:            data.TokenHash,
		ProviderAccessToken:  data.ProviderAccessToken,
		ProviderRefreshToken: data.ProviderRefreshToken,
		ExpiresAt:            data.ExpiresAt,
		CreatedAt:            data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:                   data.ID,
		UserID:               data.UserID,
		TokenHash:            data.TokenHash,
		ProviderAccessToken:  data.ProviderAccessToken,
		ProviderRefreshToken: data.ProviderRefreshToken,
		ExpiresAt:            data.ExpiresAt,
		CreatedAt:            data.CreatedAt,
	}
}
