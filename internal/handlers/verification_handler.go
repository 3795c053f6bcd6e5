package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/up2ustore/bundles-backend/internal/config"
	"github.com/up2ustore/bundles-backend/internal/metrics"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/internal/services"
	"github.com/up2ustore/bundles-backend/pkg/paystack"
)

// VerificationHandler handles the two payment confirmation paths: the
// synchronous verify endpoint and the asynchronous Paystack webhook.
type VerificationHandler struct {
	verificationService services.VerificationService
	cfg                 *config.Config
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationService services.VerificationService, cfg *config.Config) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		cfg:                 cfg,
	}
}

// VerifyPayment handles GET /api/verify-payment/:reference
func (h *VerificationHandler) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")

	result, err := h.verificationService.VerifyPayment(c, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error verifying payment"})
		return
	}

	if !result.Verified {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Payment not verified",
			"status":  result.Status,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Payment verified successfully",
		"transaction": result.Transaction,
		"status":      result.Status,
	})
}

// Webhook handles POST /api/webhooks/paystack. Deliveries are always
// acknowledged with 200 unless the handler itself fails, so the gateway
// does not retry forever; the one deliberate exception is a storage
// failure on a found record, where a retry is exactly what we want.
func (h *VerificationHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	// With a secret configured, every delivery must carry a valid
	// signature; an absent header is rejected the same as a bad one.
	if h.cfg.Paystack.SecretKey != "" {
		signature := c.GetHeader(paystack.SignatureHeader)
		if !paystack.ValidSignature(body, signature, h.cfg.Paystack.SecretKey) {
			metrics.WebhookEvents.WithLabelValues("invalid").Inc()
			slog.Warn("Webhook signature missing or mismatched")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("invalid").Inc()
		slog.Warn("Malformed webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	slog.Info("Webhook received", "event", event.Event, "reference", event.Reference())

	if event.Event != paystack.EventChargeSuccess {
		metrics.WebhookEvents.WithLabelValues("ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	reference := event.Reference()
	if reference == "" {
		metrics.WebhookEvents.WithLabelValues("invalid").Inc()
		slog.Warn("Webhook charge.success event without a reference")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	data, err := event.DataMap()
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("invalid").Inc()
		slog.Warn("Webhook event data not decodable", "error", err, "reference", reference)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := h.verificationService.HandleChargeSuccess(c, reference, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
