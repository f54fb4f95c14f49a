package handlers

import (
	"net/http"

	"stayloft/services/reservation"
	"stayloft/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives signed payment-completion events.
type WebhookHandler struct {
	Engine *reservation.Engine
	logger *zap.Logger
}

// NewWebhookHandler creates a handler for processor webhooks.
func NewWebhookHandler(engine *reservation.Engine, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Engine: engine, logger: logger}
}

// PaymentWebhook handles POST /api/payment-webhook. The raw body is
// required for signature verification.
func (h *WebhookHandler) PaymentWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable payload", err.Error())
		return
	}

	err = h.Engine.HandleCompletionEvent(payload, c.GetHeader("Stripe-Signature"))
	if err == reservation.ErrBadSignature {
		utils.JSONError(c, http.StatusBadRequest, "signature verification failed", "")
		return
	}
	if err != nil {
		h.logger.Error("failed to process payment event", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process event", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
