package postgres

import (
	"context"
	"fmt"

	"stockpulse/domain"

	"gorm.io/gorm"
)

type PortfolioRepository struct {
	DB *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{DB: db}
}

func (r *PortfolioRepository) GetPortfolio(ctx context.Context, userID uint) ([]domain.Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var holdings []domain.Portfolio
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return holdings, nil
}
