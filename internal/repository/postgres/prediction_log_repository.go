package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"myShopSense/business/segmentation"
	"myShopSense/domain"
)

type PredictionLogRepository struct {
	DB *gorm.DB
}

var _ segmentation.PredictionLogRepository = (*PredictionLogRepository)(nil)

func NewPredictionLogRepository(db *gorm.DB) *PredictionLogRepository {
	return &PredictionLogRepository{DB: db}
}

// Save commits one prediction record in its own transaction so a failure
// here can never roll back anything the caller already computed.
func (r *PredictionLogRepository) Save(ctx context.Context, log *domain.PredictionLog) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to save prediction log: %w", err)
	}

	return nil
}

// FindByUser returns a user's most recent prediction records.
func (r *PredictionLogRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.PredictionLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}

	var logs []domain.PredictionLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction logs: %w", err)
	}

	return logs, nil
}
