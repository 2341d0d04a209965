package client

import (
	"context"
	"net/http"
)

// BillingService handles billing-related API calls
type BillingService struct {
	client *Client
}

// Plans retrieves the available subscription plans
func (s *BillingService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Status retrieves the caller's entitlement snapshot
func (s *BillingService) Status(ctx context.Context) (*SubscriptionStatus, error) {
	var status SubscriptionStatus
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/subscription/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Checkout starts a checkout for a plan and returns the redirect URL
func (s *BillingService) Checkout(ctx context.Context, planID string) (*CheckoutSession, error) {
	var checkout CheckoutSession
	body := map[string]string{"planId": planID}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/billing/checkout", body, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

// Cancel requests cancellation of the caller's subscription at period end
func (s *BillingService) Cancel(ctx context.Context) error {
	return s.client.doRequest(ctx, http.MethodPost, "/api/v1/billing/cancel", nil, nil)
}
