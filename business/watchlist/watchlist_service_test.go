package watchlist

import (
	"context"
	"errors"
	"testing"

	"stockpulse/domain"
)

type fakeWatchlistRepo struct {
	entries []domain.Watchlist
}

func (f *fakeWatchlistRepo) GetWatchlist(_ context.Context, _ uint) ([]domain.Watchlist, error) {
	return f.entries, nil
}

func (f *fakeWatchlistRepo) Exists(_ context.Context, _ uint, symbol string) (bool, error) {
	for _, e := range f.entries {
		if e.Symbol == symbol {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWatchlistRepo) Add(_ context.Context, entry domain.Watchlist) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeWatchlistRepo) Remove(_ context.Context, _ uint, symbol string) error {
	for i, e := range f.entries {
		if e.Symbol == symbol {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("watchlist entry not found")
}

func TestAdd_DuplicateGuard(t *testing.T) {
	svc := NewService(&fakeWatchlistRepo{})
	ctx := context.Background()

	if err := svc.Add(ctx, 1, "AAPL", "Apple Inc."); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.Add(ctx, 1, "AAPL", "Apple Inc."); !errors.Is(err, ErrAlreadyWatched) {
		t.Errorf("second add: got %v, want ErrAlreadyWatched", err)
	}
}

func TestAdd_RequiresSymbol(t *testing.T) {
	svc := NewService(&fakeWatchlistRepo{})
	if err := svc.Add(context.Background(), 1, "", "Apple Inc."); err == nil {
		t.Error("empty symbol must be rejected")
	}
}

func TestRemove(t *testing.T) {
	repo := &fakeWatchlistRepo{entries: []domain.Watchlist{{UserID: 1, Symbol: "AAPL"}}}
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Remove(ctx, 1, "AAPL"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Errorf("entries = %d, want 0", len(repo.entries))
	}
	if err := svc.Remove(ctx, 1, "AAPL"); err == nil {
		t.Error("removing a missing entry must fail")
	}
}

func TestList(t *testing.T) {
	repo := &fakeWatchlistRepo{entries: []domain.Watchlist{
		{UserID: 1, Symbol: "AAPL"},
		{UserID: 1, Symbol: "2330.TW"},
	}}
	svc := NewService(repo)

	entries, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}
