package payments

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/pratik-mahalle/paddock/internal/domain/billing"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// StripeProvider implements Provider against the Stripe API
type StripeProvider struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

// NewStripeProvider configures the global Stripe client key and returns the
// provider
func NewStripeProvider(apiKey, webhookSecret, successURL, cancelURL string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// CreateCheckoutSession starts a hosted subscription checkout. The user id
// and plan ride along as metadata so the webhook can attribute the purchase.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	meta := map[string]string{
		"user_id": strconv.FormatInt(params.UserID, 10),
		"plan":    params.PlanID,
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		Metadata:   meta,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: meta,
		},
	}

	if params.CustomerID != "" {
		sessionParams.Customer = stripe.String(params.CustomerID)
	} else {
		sessionParams.CustomerEmail = stripe.String(params.UserEmail)
	}

	sess, err := checkoutsession.New(sessionParams)
	if err != nil {
		return "", errors.UpstreamUnavailable("payment provider", err)
	}

	return sess.URL, nil
}

// CancelAtPeriodEnd requests cancellation of a subscription. The local
// record is only updated once the cancellation webhook arrives.
func (p *StripeProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	if _, err := subscription.Cancel(subscriptionID, &stripe.SubscriptionCancelParams{}); err != nil {
		return errors.UpstreamUnavailable("payment provider", err)
	}
	return nil
}

// checkoutSession is the slice of the Stripe checkout.session object the
// reconciler needs
type checkoutSession struct {
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

// invoice is the slice of the Stripe invoice object the reconciler needs
type invoice struct {
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
}

// subscriptionObject is the slice of the Stripe subscription object the
// reconciler needs
type subscriptionObject struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
}

// VerifyWebhook authenticates the payload against the endpoint secret and
// normalizes the four subscription lifecycle events. Other event types
// return nil so the endpoint acknowledges them without side effects.
func (p *StripeProvider) VerifyWebhook(payload []byte, signature string) (*billing.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, errors.Unauthorized("Webhook signature verification failed")
	}

	occurred := time.Unix(event.Created, 0)

	switch event.Type {
	case "checkout.session.completed":
		var sess checkoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, errors.BadRequest("Malformed checkout session payload")
		}
		userID, err := strconv.ParseInt(sess.Metadata["user_id"], 10, 64)
		if err != nil {
			return nil, errors.BadRequest("Checkout session missing user attribution")
		}
		return &billing.Event{
			Type:           billing.EventCheckoutCompleted,
			UserID:         userID,
			Plan:           sess.Metadata["plan"],
			CustomerID:     sess.Customer,
			SubscriptionID: sess.Subscription,
			OccurredAt:     occurred,
		}, nil

	case "invoice.payment_succeeded":
		var inv invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, errors.BadRequest("Malformed invoice payload")
		}
		return &billing.Event{
			Type:           billing.EventPaymentSucceeded,
			CustomerID:     inv.Customer,
			SubscriptionID: inv.Subscription,
			OccurredAt:     occurred,
		}, nil

	case "invoice.payment_failed":
		var inv invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, errors.BadRequest("Malformed invoice payload")
		}
		return &billing.Event{
			Type:           billing.EventPaymentFailed,
			CustomerID:     inv.Customer,
			SubscriptionID: inv.Subscription,
			OccurredAt:     occurred,
		}, nil

	case "customer.subscription.deleted":
		var sub subscriptionObject
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, errors.BadRequest("Malformed subscription payload")
		}
		return &billing.Event{
			Type:           billing.EventSubscriptionCanceled,
			CustomerID:     sub.Customer,
			SubscriptionID: sub.ID,
			OccurredAt:     occurred,
		}, nil
	}

	return nil, nil
}
