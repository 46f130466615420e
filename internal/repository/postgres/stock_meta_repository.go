package postgres

import (
	"context"
	"fmt"

	"stockpulse/domain"

	"gorm.io/gorm"
)

type StockMetaRepository struct {
	DB *gorm.DB
}

func NewStockMetaRepository(db *gorm.DB) *StockMetaRepository {
	return &StockMetaRepository{DB: db}
}

// GetMeta returns whatever metadata rows exist for the symbols. Missing
// symbols are simply absent from the map.
func (r *StockMetaRepository) GetMeta(ctx context.Context, symbols []string) (map[string]domain.StockMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(symbols) == 0 {
		return map[string]domain.StockMeta{}, nil
	}

	var rows []domain.StockMeta
	err := r.DB.WithContext(ctx).
		Where("symbol IN ?", symbols).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_meta: %w", err)
	}

	meta := make(map[string]domain.StockMeta, len(rows))
	for _, row := range rows {
		meta[row.Symbol] = row
	}

	return meta, nil
}
