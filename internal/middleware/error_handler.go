package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"myShopSense/pkg/logger"
	jsonres "myShopSense/pkg/response"
)

// ErrorHandler is the echo fallback for errors no handler turned into a
// response itself (404s, method-not-allowed, panics caught by Recover).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err, "path", c.Path())
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
