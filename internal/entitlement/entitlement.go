// Package entitlement computes the right to perform gated actions from a
// subscription snapshot. Every function is pure: no I/O, no mutation of the
// input, all clock access through the explicit now parameter.
package entitlement

import (
	"math"
	"time"
)

// Subscription statuses understood by the evaluator
const (
	StatusTrial         = "trial"
	StatusActive        = "active"
	StatusExpired       = "expired"
	StatusCancelled     = "cancelled"
	StatusPaymentFailed = "payment_failed"

	// StatusAdmin is a display-only sentinel for administrative accounts
	StatusAdmin = "admin"
)

// AdminDaysRemaining is a display placeholder for admins, not a real expiry
const AdminDaysRemaining = 999

// Account is the subscription view of a user that the evaluator reads
type Account struct {
	IsAdmin         bool
	Status          string
	Plan            string
	TrialEnd        *time.Time
	SubscriptionEnd *time.Time
	UsageCount      int
	UsageLimit      *int // nil = unlimited
}

// Snapshot is the combined gating decision handed to handlers and clients
type Snapshot struct {
	IsActive             bool    `json:"isActive"`
	HasReachedUsageLimit bool    `json:"hasReachedUsageLimit"`
	DaysRemaining        int     `json:"daysRemaining"`
	UsagePercentage      float64 `json:"usagePercentage"`
	Status               string  `json:"status"`
	Plan                 string  `json:"plan"`
	UsageCount           int     `json:"usageCount"`
	UsageLimit           *int    `json:"usageLimit"`
}

// IsSubscriptionActive reports whether the account may perform gated actions.
// Expired, cancelled and payment_failed are inactive regardless of dates.
func IsSubscriptionActive(a Account, now time.Time) bool {
	if a.IsAdmin {
		return true
	}
	switch a.Status {
	case StatusTrial:
		return a.TrialEnd != nil && now.Before(*a.TrialEnd)
	case StatusActive:
		return a.SubscriptionEnd != nil && now.Before(*a.SubscriptionEnd)
	default:
		return false
	}
}

// HasReachedUsageLimit reports whether the usage counter has hit the plan
// limit. A nil limit means unlimited.
func HasReachedUsageLimit(a Account) bool {
	if a.IsAdmin || a.UsageLimit == nil {
		return false
	}
	return a.UsageCount >= *a.UsageLimit
}

// DaysRemaining returns the whole days until the relevant end date, rounded
// up and floored at zero.
func DaysRemaining(a Account, now time.Time) int {
	if a.IsAdmin {
		return AdminDaysRemaining
	}

	var end *time.Time
	switch a.Status {
	case StatusTrial:
		end = a.TrialEnd
	case StatusActive:
		end = a.SubscriptionEnd
	}
	if end == nil || !now.Before(*end) {
		return 0
	}

	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// UsagePercentage returns how much of the plan limit is consumed, clamped to
// [0, 100]. Unlimited accounts always report zero.
func UsagePercentage(a Account) float64 {
	if a.IsAdmin || a.UsageLimit == nil || *a.UsageLimit <= 0 {
		return 0
	}
	pct := 100 * float64(a.UsageCount) / float64(*a.UsageLimit)
	if pct > 100 {
		return 100
	}
	return pct
}

// Evaluate combines the individual checks into one snapshot
func Evaluate(a Account, now time.Time) Snapshot {
	if a.IsAdmin {
		return Snapshot{
			IsActive:        true,
			DaysRemaining:   AdminDaysRemaining,
			Status:          StatusAdmin,
			Plan:            a.Plan,
			UsageCount:      a.UsageCount,
			UsagePercentage: 0,
		}
	}

	return Snapshot{
		IsActive:             IsSubscriptionActive(a, now),
		HasReachedUsageLimit: HasReachedUsageLimit(a),
		DaysRemaining:        DaysRemaining(a, now),
		UsagePercentage:      UsagePercentage(a),
		Status:               a.Status,
		Plan:                 a.Plan,
		UsageCount:           a.UsageCount,
		UsageLimit:           a.UsageLimit,
	}
}
