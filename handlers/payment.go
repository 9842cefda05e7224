package handlers

import (
	"io"
	"net/http"

	"brightsite/services/payment"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds how much of a webhook delivery is read.
const maxWebhookBody = 65536

// PaymentHandler receives payment provider webhooks.
type PaymentHandler struct {
	Processor payment.PaymentProcessor
}

func NewPaymentHandler(processor payment.PaymentProcessor) *PaymentHandler {
	return &PaymentHandler{Processor: processor}
}

// StripeWebhook handles POST /webhooks/stripe. A failed signature check
// mutates nothing and the delivery is rejected so Stripe retries are
// distinguishable from forgeries in the provider dashboard.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	err = h.Processor.HandleStripeWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
