package portfolio

import (
	"context"
	"fmt"

	"stockpulse/domain"

	"github.com/shopspring/decimal"
)

type PortfolioRepository interface {
	GetPortfolio(ctx context.Context, userID uint) ([]domain.Portfolio, error)
}

type Service struct {
	repo PortfolioRepository
}

func NewService(repo PortfolioRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uint) ([]domain.Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.repo.GetPortfolio(ctx, userID)
}

// Position is one holding with its cost basis in dollars.
type Position struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"company_name"`
	Shares      int             `json:"shares"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	CostBasis   decimal.Decimal `json:"cost_basis"`
}

// Valuation is a cost-basis summary. It makes no claim about market value
// or accounting correctness; live pricing belongs to the market-data layer.
type Valuation struct {
	Positions []Position      `json:"positions"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

var centsPerDollar = decimal.NewFromInt(100)

// Valuation converts the stored cent amounts into exact decimal money.
func (s *Service) Valuation(ctx context.Context, userID uint) (Valuation, error) {
	holdings, err := s.List(ctx, userID)
	if err != nil {
		return Valuation{}, fmt.Errorf("load portfolio: %w", err)
	}

	valuation := Valuation{
		Positions: make([]Position, 0, len(holdings)),
		TotalCost: decimal.Zero,
	}

	for _, h := range holdings {
		unitCost := decimal.NewFromInt(h.PurchasePriceCents).Div(centsPerDollar)
		costBasis := unitCost.Mul(decimal.NewFromInt(int64(h.Shares)))

		valuation.Positions = append(valuation.Positions, Position{
			Symbol:      h.Symbol,
			CompanyName: h.CompanyName,
			Shares:      h.Shares,
			UnitCost:    unitCost,
			CostBasis:   costBasis,
		})
		valuation.TotalCost = valuation.TotalCost.Add(costBasis)
	}

	return valuation, nil
}
