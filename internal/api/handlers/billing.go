package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/paddock/internal/api/middleware"
	"github.com/pratik-mahalle/paddock/internal/domain/billing"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	apierrors "github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
	"github.com/pratik-mahalle/paddock/internal/pkg/validator"

	"github.com/pratik-mahalle/paddock/internal/api/dto"
)

// BillingHandler handles plan listing, checkout and subscription state
type BillingHandler struct {
	billingService billing.Service
	userService    user.Service
	logger         *logger.Logger
	validator      *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService billing.Service, userService user.Service, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		userService:    userService,
		logger:         log,
		validator:      val,
	}
}

// ListPlans retrieves the available subscription plans
// @Summary List plans
// @Tags Billing
// @Produce json
// @Success 200 {array} billing.Plan
// @Router /plans [get]
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.billingService.ListPlans(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, plans)
}

// SubscriptionStatus returns the requester's entitlement snapshot
// @Summary Get subscription status
// @Tags Billing
// @Produce json
// @Success 200 {object} entitlement.Snapshot
// @Router /subscription/status [get]
func (h *BillingHandler) SubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	snapshot, err := h.userService.SubscriptionStatus(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, snapshot)
}

// Checkout starts a provider checkout session for a plan
// @Summary Create checkout session
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Plan to purchase"
// @Success 200 {object} billing.CheckoutSession
// @Router /billing/checkout [post]
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apierrors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, apierrors.ValidationError("Validation failed", validationErrs))
		return
	}

	checkout, err := h.billingService.CreateCheckout(r.Context(), userID, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, checkout)
}

// CancelSubscription requests cancellation at period end. State changes
// land when the provider confirms via webhook.
// @Summary Cancel subscription
// @Tags Billing
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /billing/cancel [post]
func (h *BillingHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r)

	if err := h.billingService.CancelSubscription(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Cancellation requested", nil)
}
