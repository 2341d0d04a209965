package user

import (
	"time"

	"github.com/pratik-mahalle/paddock/internal/entitlement"
)

// User represents a rider account
type User struct {
	ID                   int64      `json:"id"`
	Email                string     `json:"email"`
	Name                 string     `json:"name,omitempty"`
	PasswordHash         string     `json:"-"`
	IsAdmin              bool       `json:"is_admin"`
	SubscriptionStatus   string     `json:"subscription_status"`
	SubscriptionPlan     string     `json:"subscription_plan"`
	TrialStart           *time.Time `json:"trial_start,omitempty"`
	TrialEnd             *time.Time `json:"trial_end,omitempty"`
	SubscriptionStart    *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd      *time.Time `json:"subscription_end,omitempty"`
	UsageCount           int        `json:"usage_count"`
	UsageLimit           *int       `json:"usage_limit,omitempty"` // nil = unlimited
	StripeCustomerID     *string    `json:"-"`
	StripeSubscriptionID *string    `json:"-"`
	LastLoginAt          *time.Time `json:"last_login_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Subscription statuses
const (
	StatusTrial         = "trial"
	StatusActive        = "active"
	StatusExpired       = "expired"
	StatusCancelled     = "cancelled"
	StatusPaymentFailed = "payment_failed"
)

// Plan keys
const (
	PlanTrial   = "trial"
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanPremier = "premier"
)

// TrialDuration is the entitlement window granted at registration
const TrialDuration = 14 * 24 * time.Hour

// Entitlement maps the user onto the evaluator's account view
func (u *User) Entitlement() entitlement.Account {
	return entitlement.Account{
		IsAdmin:         u.IsAdmin,
		Status:          u.SubscriptionStatus,
		Plan:            u.SubscriptionPlan,
		TrialEnd:        u.TrialEnd,
		SubscriptionEnd: u.SubscriptionEnd,
		UsageCount:      u.UsageCount,
		UsageLimit:      u.UsageLimit,
	}
}
