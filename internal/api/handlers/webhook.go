package handlers

import (
	"io"
	"net/http"

	"github.com/pratik-mahalle/paddock/internal/domain/billing"
	"github.com/pratik-mahalle/paddock/internal/payments"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
)

// maxWebhookBody caps the payload we are willing to verify.
const maxWebhookBody = 1 << 16

// WebhookHandler receives billing provider callbacks
type WebhookHandler struct {
	provider       payments.Provider
	billingService billing.Service
	logger         *logger.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(provider payments.Provider, billingService billing.Service, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		provider:       provider,
		billingService: billingService,
		logger:         log,
	}
}

// HandleStripe verifies and applies a Stripe webhook. Events with no
// matching user are acknowledged so the provider stops retrying.
// @Summary Stripe webhook
// @Tags Billing
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse "Signature verification failed"
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Unable to read request body"))
		return
	}

	event, err := h.provider.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.WithError(err).Warn("Webhook signature verification failed")
		utils.WriteError(w, errors.BadRequest("Invalid webhook signature"))
		return
	}
	if event == nil {
		// Unhandled event type. Acknowledge so the provider does not retry.
		utils.WriteSuccessWithMessage(w, http.StatusOK, "Event ignored", nil)
		return
	}

	if err := h.billingService.Reconcile(r.Context(), *event); err != nil {
		h.logger.With("event_type", event.Type).ErrorWithErr(err, "Webhook reconciliation failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Event processed", nil)
}
