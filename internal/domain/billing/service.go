package billing

import "context"

// CheckoutSession is the redirect target for a plan purchase
type CheckoutSession struct {
	URL string `json:"url"`
}

// Service defines the interface for billing business logic
type Service interface {
	// ListPlans retrieves the purchasable plans
	ListPlans(ctx context.Context) ([]*Plan, error)

	// CreateCheckout starts a provider checkout for the user and plan
	CreateCheckout(ctx context.Context, userID int64, planID string) (*CheckoutSession, error)

	// CancelSubscription requests cancellation at period end. Local state is
	// only changed when the provider's webhook confirms.
	CancelSubscription(ctx context.Context, userID int64) error

	// Reconcile applies a normalized billing event to user subscription
	// state. Idempotent under at-least-once delivery; events whose
	// subscription id matches no user are benign no-ops.
	Reconcile(ctx context.Context, ev Event) error
}
