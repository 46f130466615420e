package rest

import (
	"context"
	"errors"
	"net/http"

	"stockpulse/business/watchlist"
	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	WatchlistHandler struct {
		validate         *validator.Validate
		watchlistService WatchlistService
	}

	WatchlistService interface {
		List(ctx context.Context, userID uint) ([]domain.Watchlist, error)
		Add(ctx context.Context, userID uint, symbol, companyName string) error
		Remove(ctx context.Context, userID uint, symbol string) error
	}

	WatchlistAddRequest struct {
		Symbol      string `json:"symbol" validate:"required"`
		CompanyName string `json:"company_name"`
	}
)

func NewWatchlistHandler(svc WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		validate:         validator.New(),
		watchlistService: svc,
	}
}

// GET /api/v1/watchlist
func (h *WatchlistHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	entries, err := h.watchlistService.List(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to list watchlist", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entries))
}

// POST /api/v1/watchlist
func (h *WatchlistHandler) Add(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req WatchlistAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.watchlistService.Add(c.Request().Context(), userID, req.Symbol, req.CompanyName); err != nil {
		if errors.Is(err, watchlist.ErrAlreadyWatched) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to add watchlist entry", "user_id", userID, "symbol", req.Symbol, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("added to watchlist"))
}

// DELETE /api/v1/watchlist/:symbol
func (h *WatchlistHandler) Remove(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	symbol := c.Param("symbol")
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "symbol is required"})
	}

	if err := h.watchlistService.Remove(c.Request().Context(), userID, symbol); err != nil {
		if err.Error() == "watchlist entry not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to remove watchlist entry", "user_id", userID, "symbol", symbol, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("removed from watchlist"))
}
