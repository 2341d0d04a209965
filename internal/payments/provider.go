package payments

import (
	"context"

	"github.com/pratik-mahalle/paddock/internal/domain/billing"
)

// CheckoutParams describes the subscription purchase being started
type CheckoutParams struct {
	UserID        int64
	UserEmail     string
	CustomerID    string // existing provider customer, empty for first purchase
	PlanID        string
	StripePriceID string
}

// Provider abstracts the payment processor
type Provider interface {
	// CreateCheckoutSession starts a hosted checkout and returns its URL
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)

	// CancelAtPeriodEnd requests cancellation of a subscription
	CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error

	// VerifyWebhook authenticates a webhook payload and normalizes it into a
	// billing event. Returns nil for authentic events of types the
	// reconciler does not consume.
	VerifyWebhook(payload []byte, signature string) (*billing.Event, error)
}
