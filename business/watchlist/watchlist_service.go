package watchlist

import (
	"context"
	"errors"
	"fmt"

	"stockpulse/domain"
)

var ErrAlreadyWatched = errors.New("symbol already in watchlist")

type WatchlistRepository interface {
	GetWatchlist(ctx context.Context, userID uint) ([]domain.Watchlist, error)
	Exists(ctx context.Context, userID uint, symbol string) (bool, error)
	Add(ctx context.Context, entry domain.Watchlist) error
	Remove(ctx context.Context, userID uint, symbol string) error
}

type Service struct {
	repo WatchlistRepository
}

func NewService(repo WatchlistRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uint) ([]domain.Watchlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.repo.GetWatchlist(ctx, userID)
}

func (s *Service) Add(ctx context.Context, userID uint, symbol, companyName string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	exists, err := s.repo.Exists(ctx, userID, symbol)
	if err != nil {
		return fmt.Errorf("check watchlist: %w", err)
	}
	if exists {
		return ErrAlreadyWatched
	}

	entry := domain.Watchlist{
		UserID:      userID,
		Symbol:      symbol,
		CompanyName: companyName,
	}
	if err := s.repo.Add(ctx, entry); err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, userID uint, symbol string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	if err := s.repo.Remove(ctx, userID, symbol); err != nil {
		return fmt.Errorf("remove from watchlist: %w", err)
	}
	return nil
}
