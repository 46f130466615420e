package router

import (
	"stockpulse/internal/middleware"
	"stockpulse/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations", middleware.AuthMiddleware())
	reco.GET("", handler.Recommend)
	reco.GET("/personal", handler.Personal)
	reco.GET("/profile", handler.Profile)
	reco.GET("/abtest", handler.Variant)
	reco.GET("/abtest/metrics", handler.Metrics)
	reco.POST("/abtest/compare", handler.Compare, middleware.AdminOnly())
}

func SetBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler) {
	behavior := api.Group("/behavior", middleware.AuthMiddleware())
	behavior.POST("/view", handler.TrackView)
	behavior.POST("/search", handler.TrackSearch)
	behavior.POST("/interactions", handler.TrackInteraction)
}

func SetWatchlistRoutes(api *echo.Group, handler *rest.WatchlistHandler) {
	watchlist := api.Group("/watchlist", middleware.AuthMiddleware())
	watchlist.GET("", handler.List)
	watchlist.POST("", handler.Add)
	watchlist.DELETE("/:symbol", handler.Remove)
}

func SetPortfolioRoutes(api *echo.Group, handler *rest.PortfolioHandler) {
	portfolio := api.Group("/portfolio", middleware.AuthMiddleware())
	portfolio.GET("", handler.List)
	portfolio.GET("/valuation", handler.Valuation)
}

func SetPopularRoutes(api *echo.Group, handler *rest.PopularHandler) {
	stocks := api.Group("/stocks")
	stocks.GET("/popular", handler.GetPopularStocks)
}
