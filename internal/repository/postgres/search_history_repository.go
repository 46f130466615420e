package postgres

import (
	"context"
	"fmt"
	"time"

	"stockpulse/domain"

	"gorm.io/gorm"
)

type SearchHistoryRepository struct {
	DB *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{DB: db}
}

func (r *SearchHistoryRepository) Add(ctx context.Context, entry domain.SearchHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}

	return nil
}

// GetPopularSymbols aggregates search history over the window into a
// ranked popularity list. CompanyName takes whatever value was recorded
// most recently for the symbol.
func (r *SearchHistoryRepository) GetPopularSymbols(ctx context.Context, days, limit int) ([]domain.PopularStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	since := time.Now().AddDate(0, 0, -days)

	var stocks []domain.PopularStock
	err := r.DB.WithContext(ctx).
		Model(&domain.SearchHistory{}).
		Select("symbol, MAX(company_name) AS company_name, COUNT(*) AS search_count").
		Where("searched_at >= ?", since).
		Group("symbol").
		Order("search_count DESC").
		Limit(limit).
		Scan(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate search history: %w", err)
	}

	return stocks, nil
}
