package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"

	"github.com/bidoro/waitlist-api/internal/models"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WaitlistRepository interface {
	// CreateEntry inserts a new entry. A unique-email violation yields a CONFLICT
	// AppError, any other failure a DATABASE_ERROR.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Clauses(clause.Returning{}).Create(entry).Error; err != nil {
		if apperrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError(MsgAlreadyJoined, err)
		}
		return nil, apperrors.NewDatabaseError(MsgStorageFailure, err)
	}

	return entry, nil
}
