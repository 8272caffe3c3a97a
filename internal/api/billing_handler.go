package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newswire-api/internal/billing"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
	"github.com/rs/zerolog"
)

// maxWebhookBody bounds the webhook payload read
const maxWebhookBody = 1 << 20

// BillingHandler handles checkout, payment history, and the provider
// webhook endpoint
type BillingHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(services *service.Services, log zerolog.Logger) *BillingHandler {
	return &BillingHandler{
		services: services,
		log:      log.With().Str("handler", "billing").Logger(),
	}
}

// CreateCheckout handles POST /v1/billing/checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan is required"})
		return
	}

	resp, err := h.services.Billing.CreateCheckoutSession(c.Request.Context(), c.GetString(ctxUserID), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPayments handles GET /v1/billing/payments
func (h *BillingHandler) ListPayments(c *gin.Context) {
	records, err := h.services.Billing.ListPayments(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if records == nil {
		records = []*models.PaymentRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"payments": records})
}

// Webhook handles POST /v1/webhooks/billing.
//
// Responses follow the provider's retry contract: 200 for processed or
// benignly ignored events, 400 for signature or payload failures the
// provider must not retry, 500 for transactional failures it should.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	signature := c.GetHeader("Webhook-Signature")
	err = h.services.Billing.HandleWebhook(c.Request.Context(), payload, signature)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, billing.ErrInvalidSignature):
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("Webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
	case errors.Is(err, service.ErrBadEvent):
		h.log.Warn().Err(err).Msg("Malformed webhook event")
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
	default:
		h.log.Error().Err(err).Msg("Webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
	}
}
