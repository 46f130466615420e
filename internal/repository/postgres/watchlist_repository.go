package postgres

import (
	"context"
	"errors"
	"fmt"

	"stockpulse/domain"

	"gorm.io/gorm"
)

type WatchlistRepository struct {
	DB *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{DB: db}
}

func (r *WatchlistRepository) GetWatchlist(ctx context.Context, userID uint) ([]domain.Watchlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var entries []domain.Watchlist
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}

	return entries, nil
}

func (r *WatchlistRepository) Exists(ctx context.Context, userID uint, symbol string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Watchlist{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count watchlist: %w", err)
	}

	return count > 0, nil
}

func (r *WatchlistRepository) Add(ctx context.Context, entry domain.Watchlist) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	return nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&domain.Watchlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("watchlist entry not found")
	}

	return nil
}
