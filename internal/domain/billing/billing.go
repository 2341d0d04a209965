package billing

import "time"

// Plan is a purchasable subscription tier
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PriceCents    int64    `json:"price_cents"`
	Currency      string   `json:"currency"`
	Interval      string   `json:"interval"`
	UsageLimit    *int     `json:"usage_limit"` // nil = unlimited
	StripePriceID string   `json:"-"`
	Features      []string `json:"features"`
}

// Event is a normalized billing lifecycle signal from the payment provider.
// Exactly one of the type constants below; unrecognized provider events are
// dropped before they reach the reconciler.
type Event struct {
	Type           string
	UserID         int64  // checkout_completed only
	Plan           string // checkout_completed only
	CustomerID     string
	SubscriptionID string
	OccurredAt     time.Time
}

// Normalized event types
const (
	EventCheckoutCompleted    = "checkout_completed"
	EventPaymentSucceeded     = "payment_succeeded"
	EventPaymentFailed        = "payment_failed"
	EventSubscriptionCanceled = "subscription_canceled"
)

// SubscriptionPeriod is the billing cycle applied on checkout and renewal
const SubscriptionPeriod = "1 month"
