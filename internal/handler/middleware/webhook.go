package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"cleaning-feedback-bot/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const webhookSecretParam = "secret"

// WebhookSecret admits only requests whose path carries the configured secret. Telegram
// is given the full URL when the webhook is registered.
type WebhookSecret struct {
	secret []byte
}

func NewWebhookSecret(secret string) *WebhookSecret {
	return &WebhookSecret{secret: []byte(secret)}
}

func (m *WebhookSecret) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		got := []byte(c.Param(webhookSecretParam))
		if len(m.secret) == 0 || subtle.ConstantTimeCompare(got, m.secret) != 1 {
			slog.Warn("webhook request with bad secret", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.New("Invalid webhook secret"))
			return
		}
		c.Next()
	}
}
