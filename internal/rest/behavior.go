package rest

import (
	"context"
	"net/http"

	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	BehaviorHandler struct {
		validate        *validator.Validate
		behaviorService BehaviorService
	}

	BehaviorService interface {
		TrackView(ctx context.Context, userID uint, symbol string, dwellMS int64) error
		TrackSearch(ctx context.Context, userID uint, symbol, companyName string) error
		TrackInteraction(ctx context.Context, event domain.UserInteraction) error
	}

	TrackViewRequest struct {
		Symbol  string `json:"symbol" validate:"required"`
		DwellMS int64  `json:"dwell_ms" validate:"gte=0"`
	}

	TrackSearchRequest struct {
		Symbol      string `json:"symbol" validate:"required"`
		CompanyName string `json:"company_name"`
	}

	TrackInteractionRequest struct {
		Symbol    string         `json:"symbol"`
		EventType string         `json:"event_type" validate:"required"`
		Context   map[string]any `json:"context"`
	}
)

func NewBehaviorHandler(svc BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		validate:        validator.New(),
		behaviorService: svc,
	}
}

// POST /api/v1/behavior/view
func (h *BehaviorHandler) TrackView(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TrackViewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.behaviorService.TrackView(c.Request().Context(), userID, req.Symbol, req.DwellMS); err != nil {
		logger.Error("Failed to track view", "user_id", userID, "symbol", req.Symbol, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("view tracked"))
}

// POST /api/v1/behavior/search
func (h *BehaviorHandler) TrackSearch(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TrackSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.behaviorService.TrackSearch(c.Request().Context(), userID, req.Symbol, req.CompanyName); err != nil {
		logger.Error("Failed to track search", "user_id", userID, "symbol", req.Symbol, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("search tracked"))
}

// POST /api/v1/behavior/interactions
func (h *BehaviorHandler) TrackInteraction(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TrackInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	event := domain.UserInteraction{
		UserID:    userID,
		Symbol:    req.Symbol,
		EventType: req.EventType,
		Context:   datatypes.JSONMap(req.Context),
	}

	if err := h.behaviorService.TrackInteraction(c.Request().Context(), event); err != nil {
		logger.Error("Failed to track interaction", "user_id", userID, "event_type", req.EventType, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction tracked"))
}
