package behavior

import (
	"context"
	"fmt"
	"time"

	"stockpulse/business/recommend"
	"stockpulse/domain"
	"stockpulse/pkg/logger"
)

// BehaviorRepository persists per-(user, symbol) behavior counters.
type BehaviorRepository interface {
	Find(ctx context.Context, userID uint, symbol string) (*domain.UserBehavior, error)
	Save(ctx context.Context, record *domain.UserBehavior) error
}

type SearchHistoryRepository interface {
	Add(ctx context.Context, entry domain.SearchHistory) error
}

type InteractionRepository interface {
	Add(ctx context.Context, event domain.UserInteraction) error
}

type Service struct {
	behaviorRepo    BehaviorRepository
	searchRepo      SearchHistoryRepository
	interactionRepo InteractionRepository
}

func NewService(
	behaviorRepo BehaviorRepository,
	searchRepo SearchHistoryRepository,
	interactionRepo InteractionRepository,
) *Service {
	return &Service{
		behaviorRepo:    behaviorRepo,
		searchRepo:      searchRepo,
		interactionRepo: interactionRepo,
	}
}

// TrackView increments the view counter and dwell time for the symbol,
// creating the behavior row on first sight.
func (s *Service) TrackView(ctx context.Context, userID uint, symbol string, dwellMS int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if dwellMS < 0 {
		return fmt.Errorf("dwell time must be non-negative, got %d", dwellMS)
	}

	record, err := s.loadOrInit(ctx, userID, symbol)
	if err != nil {
		return err
	}

	record.ViewCount++
	record.TotalViewTime += dwellMS
	record.LastViewedAt = time.Now()

	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid behavior record: %w", err)
	}
	if err := s.behaviorRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("save behavior: %w", err)
	}

	logger.Debug("view tracked", "user_id", userID, "symbol", symbol, "dwell_ms", dwellMS)
	return nil
}

// TrackSearch bumps the search counter and appends to the search history
// that feeds the popularity pool.
func (s *Service) TrackSearch(ctx context.Context, userID uint, symbol, companyName string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	record, err := s.loadOrInit(ctx, userID, symbol)
	if err != nil {
		return err
	}

	record.SearchCount++
	record.LastViewedAt = time.Now()

	if err := s.behaviorRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("save behavior: %w", err)
	}

	entry := domain.SearchHistory{
		UserID:      userID,
		Symbol:      symbol,
		CompanyName: companyName,
		SearchedAt:  time.Now(),
	}
	if err := s.searchRepo.Add(ctx, entry); err != nil {
		return fmt.Errorf("save search history: %w", err)
	}

	return nil
}

// TrackInteraction records a free-form UI event.
func (s *Service) TrackInteraction(ctx context.Context, event domain.UserInteraction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}

	if err := s.interactionRepo.Add(ctx, event); err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}
	return nil
}

func (s *Service) loadOrInit(ctx context.Context, userID uint, symbol string) (*domain.UserBehavior, error) {
	record, err := s.behaviorRepo.Find(ctx, userID, symbol)
	if err != nil {
		return nil, fmt.Errorf("load behavior: %w", err)
	}
	if record == nil {
		record = &domain.UserBehavior{
			UserID: userID,
			Symbol: symbol,
			Market: string(recommend.ClassifyMarket(symbol)),
		}
	}
	return record, nil
}
