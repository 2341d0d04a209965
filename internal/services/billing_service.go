package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/billing"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/payments"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/metrics"
)

// BillingService implements billing.Service
type BillingService struct {
	plans    billing.PlanRepository
	users    user.Repository
	provider payments.Provider
	logger   *logger.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(plans billing.PlanRepository, users user.Repository, provider payments.Provider, log *logger.Logger) billing.Service {
	return &BillingService{
		plans:    plans,
		users:    users,
		provider: provider,
		logger:   log,
	}
}

// ListPlans retrieves the purchasable plans
func (s *BillingService) ListPlans(ctx context.Context) ([]*billing.Plan, error) {
	return s.plans.List(ctx)
}

// CreateCheckout starts a provider checkout for the user and plan
func (s *BillingService) CreateCheckout(ctx context.Context, userID int64, planID string) (*billing.CheckoutSession, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.StripePriceID == "" {
		return nil, errors.BadRequest("This plan cannot be purchased online")
	}

	params := payments.CheckoutParams{
		UserID:        u.ID,
		UserEmail:     u.Email,
		PlanID:        plan.ID,
		StripePriceID: plan.StripePriceID,
	}
	if u.StripeCustomerID != nil {
		params.CustomerID = *u.StripeCustomerID
	}

	url, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create checkout session")
		return nil, err
	}

	return &billing.CheckoutSession{URL: url}, nil
}

// CancelSubscription requests cancellation at period end. Local state only
// changes when the provider's cancellation webhook arrives.
func (s *BillingService) CancelSubscription(ctx context.Context, userID int64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.StripeSubscriptionID == nil {
		return errors.BadRequest("No active subscription to cancel")
	}

	if err := s.provider.CancelAtPeriodEnd(ctx, *u.StripeSubscriptionID); err != nil {
		s.logger.ErrorWithErr(err, "Failed to cancel subscription")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Subscription cancellation requested")

	return nil
}

// Reconcile applies a normalized billing event to user subscription state.
// Events whose identifiers match no user are acknowledged without changes,
// since webhook delivery may race against local writes.
func (s *BillingService) Reconcile(ctx context.Context, ev billing.Event) error {
	var err error
	switch ev.Type {
	case billing.EventCheckoutCompleted:
		err = s.applyCheckoutCompleted(ctx, ev)
	case billing.EventPaymentSucceeded:
		err = s.applyPaymentSucceeded(ctx, ev)
	case billing.EventPaymentFailed:
		err = s.applyPaymentFailed(ctx, ev)
	case billing.EventSubscriptionCanceled:
		err = s.applySubscriptionCanceled(ctx, ev)
	default:
		metrics.RecordWebhookEvent(ev.Type, "ignored")
		return nil
	}

	if err != nil {
		metrics.RecordWebhookEvent(ev.Type, "error")
		return err
	}
	metrics.RecordWebhookEvent(ev.Type, "applied")
	return nil
}

// applyCheckoutCompleted activates the purchased plan: status active, one
// billing period of access, and the plan's usage limit.
func (s *BillingService) applyCheckoutCompleted(ctx context.Context, ev billing.Event) error {
	u, err := s.users.GetByID(ctx, ev.UserID)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.WithFields(map[string]interface{}{
				"user_id": ev.UserID,
			}).Warn("Checkout completed for unknown user, skipping")
			return nil
		}
		return err
	}

	plan, err := s.plans.GetByID(ctx, ev.Plan)
	if err != nil {
		return err
	}

	now := time.Now()
	end := now.AddDate(0, 1, 0)

	u.SubscriptionStatus = user.StatusActive
	u.SubscriptionPlan = plan.ID
	u.SubscriptionStart = &now
	u.SubscriptionEnd = &end
	u.UsageLimit = plan.UsageLimit
	if ev.CustomerID != "" {
		u.StripeCustomerID = &ev.CustomerID
	}
	if ev.SubscriptionID != "" {
		u.StripeSubscriptionID = &ev.SubscriptionID
	}

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"plan":    plan.ID,
	}).Info("Subscription activated")

	return nil
}

// applyPaymentSucceeded extends the subscription by one billing period from
// the time of payment
func (s *BillingService) applyPaymentSucceeded(ctx context.Context, ev billing.Event) error {
	u, err := s.users.GetByStripeSubscriptionID(ctx, ev.SubscriptionID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	now := time.Now()
	end := now.AddDate(0, 1, 0)

	u.SubscriptionStatus = user.StatusActive
	u.SubscriptionEnd = &end

	return s.users.Update(ctx, u)
}

// applyPaymentFailed flags the account without revoking the current period
func (s *BillingService) applyPaymentFailed(ctx context.Context, ev billing.Event) error {
	u, err := s.users.GetByStripeSubscriptionID(ctx, ev.SubscriptionID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	u.SubscriptionStatus = user.StatusPaymentFailed

	return s.users.Update(ctx, u)
}

// applySubscriptionCanceled marks the account cancelled and detaches the
// provider subscription. The end date is left alone so paid-for access runs
// out naturally.
func (s *BillingService) applySubscriptionCanceled(ctx context.Context, ev billing.Event) error {
	u, err := s.users.GetByStripeSubscriptionID(ctx, ev.SubscriptionID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	u.SubscriptionStatus = user.StatusCancelled
	u.StripeSubscriptionID = nil

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Subscription cancelled")

	return nil
}
