package api

import (
	"net/http"

	"cleaning-feedback-bot/internal/handler/httperr"
	"cleaning-feedback-bot/internal/infra/telegram"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type WebhookHandler struct {
	updates telegram.UpdateHandler
}

func NewWebhookHandler(updates telegram.UpdateHandler) *WebhookHandler {
	return &WebhookHandler{updates: updates}
}

// Receive handles the update before answering, so Telegram redelivers nothing that was
// accepted. Handler failures are logged by the dispatcher and still answered with 200.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid update")
		return
	}

	h.updates.Handle(c.Request.Context(), update)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
