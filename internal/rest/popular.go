package rest

import (
	"context"
	"net/http"

	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PopularHandler struct {
		validate       *validator.Validate
		popularService PopularService
	}

	PopularService interface {
		GetPopularStocks(ctx context.Context, days, limit int) ([]domain.PopularStock, error)
		GetPopularStocksByMarket(ctx context.Context, market domain.Market, days, limit int) ([]domain.PopularStock, error)
	}

	PopularQuery struct {
		Market string `query:"market" validate:"omitempty,oneof=US TW"`
		Days   int    `query:"days"`
		N      int    `query:"n"`
	}
)

func NewPopularHandler(svc PopularService) *PopularHandler {
	return &PopularHandler{
		validate:       validator.New(),
		popularService: svc,
	}
}

// GET /api/v1/stocks/popular?market=TW&days=30&n=10
func (h *PopularHandler) GetPopularStocks(c echo.Context) error {
	var q PopularQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx := c.Request().Context()

	var (
		stocks []domain.PopularStock
		err    error
	)
	if q.Market != "" {
		stocks, err = h.popularService.GetPopularStocksByMarket(ctx, domain.Market(q.Market), q.Days, q.N)
	} else {
		stocks, err = h.popularService.GetPopularStocks(ctx, q.Days, q.N)
	}
	if err != nil {
		logger.Error("Failed to load popular stocks", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stocks))
}
