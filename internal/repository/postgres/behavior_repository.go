package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockpulse/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{DB: db}
}

func (r *BehaviorRepository) GetUserBehavior(ctx context.Context, userID uint) ([]domain.UserBehavior, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var behaviors []domain.UserBehavior
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_viewed_at DESC").
		Find(&behaviors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user_behavior: %w", err)
	}

	return behaviors, nil
}

func (r *BehaviorRepository) GetUserBehaviorSince(ctx context.Context, userID uint, since time.Time) ([]domain.UserBehavior, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var behaviors []domain.UserBehavior
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND last_viewed_at >= ?", userID, since).
		Order("last_viewed_at DESC").
		Find(&behaviors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user_behavior: %w", err)
	}

	return behaviors, nil
}

// Find returns nil without error when the (user, symbol) row does not
// exist yet.
func (r *BehaviorRepository) Find(ctx context.Context, userID uint, symbol string) (*domain.UserBehavior, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var behavior domain.UserBehavior
	err := r.DB.WithContext(ctx).
		First(&behavior, "user_id = ? AND symbol = ?", userID, symbol).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find behavior: %w", err)
	}

	return &behavior, nil
}

func (r *BehaviorRepository) Save(ctx context.Context, record *domain.UserBehavior) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
			UpdateAll: true,
		},
	).Create(record).Error; err != nil {
		return fmt.Errorf("failed to upsert user_behavior: %w", err)
	}

	return nil
}
