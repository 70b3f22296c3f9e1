package middleware

import (
	"log/slog"
	"net/http"

	"cleaning-feedback-bot/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors attached by handlers and answers 500 when a
// handler returned without writing anything.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			slog.Warn("request failed",
				"route", c.FullPath(),
				"status", c.Writer.Status(),
				"message", e.Meta,
				"error", e.Err.Error())
		}

		if c.Writer.Written() {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New("Internal server error"))
	}
}

// CustomRecovery logs the route template rather than the URL, which would
// carry the webhook secret.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "route", c.FullPath())
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.New("Internal server error"))
			}
		}()
		c.Next()
	}
}
