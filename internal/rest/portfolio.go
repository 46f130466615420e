package rest

import (
	"context"
	"net/http"

	"stockpulse/business/portfolio"
	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	PortfolioHandler struct {
		portfolioService PortfolioService
	}

	PortfolioService interface {
		List(ctx context.Context, userID uint) ([]domain.Portfolio, error)
		Valuation(ctx context.Context, userID uint) (portfolio.Valuation, error)
	}
)

func NewPortfolioHandler(svc PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: svc}
}

// GET /api/v1/portfolio
func (h *PortfolioHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	holdings, err := h.portfolioService.List(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to list portfolio", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(holdings))
}

// GET /api/v1/portfolio/valuation
func (h *PortfolioHandler) Valuation(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	valuation, err := h.portfolioService.Valuation(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to value portfolio", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(valuation))
}
