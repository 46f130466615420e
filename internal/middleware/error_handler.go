package middleware

import (
	"errors"
	"net/http"

	"stockpulse/pkg/logger"
	jsonres "stockpulse/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders uncaught errors in the shared envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "error", err, "path", c.Path())
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
