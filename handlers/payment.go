package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"fairway/config"
	"fairway/models"
	"fairway/services/booking"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const maxWebhookBodyBytes = int64(65536)

// PaymentWebhookHandler receives payment-outcome events from Stripe and feeds
// them to the reconciler. A non-2xx response makes the gateway redeliver.
type PaymentWebhookHandler struct {
	Reconciler *booking.PaymentReconciler
	Logger     *zap.Logger
}

func NewPaymentWebhookHandler(reconciler *booking.PaymentReconciler, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Reconciler: reconciler, Logger: logger}
}

// HandleStripeWebhook handles POST /api/payments/webhook.
func (h *PaymentWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.Logger.Warn("rejected webhook with bad signature", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.Logger.Warn("failed to decode payment intent", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}

		outcome := models.PaymentOutcome{
			Reference:  intent.ID,
			BookingID:  intent.Metadata["booking_id"],
			Succeeded:  event.Type == "payment_intent.succeeded",
			Amount:     intent.Amount,
			Currency:   string(intent.Currency),
			ReceivedAt: time.Now(),
		}
		if !outcome.Succeeded && intent.LastPaymentError != nil {
			outcome.Reason = intent.LastPaymentError.Msg
		}

		if err := h.Reconciler.HandleOutcome(c.Request.Context(), outcome); err != nil {
			h.Logger.Error("payment event processing failed",
				zap.String("payment_ref", outcome.Reference), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}
	default:
		h.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
