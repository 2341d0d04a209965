package entitlement

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestIsSubscriptionActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		account Account
		want    bool
	}{
		{
			name: "trial before end date",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now.Add(24 * time.Hour)),
			},
			want: true,
		},
		{
			name: "trial exactly at end date",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now),
			},
			want: false,
		},
		{
			name: "trial past end date",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now.Add(-time.Minute)),
			},
			want: false,
		},
		{
			name: "trial with no end date",
			account: Account{
				Status: StatusTrial,
			},
			want: false,
		},
		{
			name: "active before subscription end",
			account: Account{
				Status:          StatusActive,
				SubscriptionEnd: timePtr(now.Add(30 * 24 * time.Hour)),
			},
			want: true,
		},
		{
			name: "active past subscription end",
			account: Account{
				Status:          StatusActive,
				SubscriptionEnd: timePtr(now.Add(-time.Hour)),
			},
			want: false,
		},
		{
			name: "active with no end date",
			account: Account{
				Status: StatusActive,
			},
			want: false,
		},
		{
			name: "expired is inactive even with future end date",
			account: Account{
				Status:          StatusExpired,
				SubscriptionEnd: timePtr(now.Add(24 * time.Hour)),
			},
			want: false,
		},
		{
			name: "cancelled is inactive even with future end date",
			account: Account{
				Status:          StatusCancelled,
				SubscriptionEnd: timePtr(now.Add(24 * time.Hour)),
			},
			want: false,
		},
		{
			name: "payment_failed is inactive",
			account: Account{
				Status:          StatusPaymentFailed,
				SubscriptionEnd: timePtr(now.Add(24 * time.Hour)),
			},
			want: false,
		},
		{
			name: "admin bypasses everything",
			account: Account{
				IsAdmin: true,
				Status:  StatusExpired,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubscriptionActive(tt.account, now); got != tt.want {
				t.Errorf("IsSubscriptionActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasReachedUsageLimit(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    bool
	}{
		{
			name:    "below limit",
			account: Account{UsageCount: 5, UsageLimit: intPtr(10)},
			want:    false,
		},
		{
			name:    "exactly at limit",
			account: Account{UsageCount: 10, UsageLimit: intPtr(10)},
			want:    true,
		},
		{
			name:    "over limit",
			account: Account{UsageCount: 11, UsageLimit: intPtr(10)},
			want:    true,
		},
		{
			name:    "nil limit means unlimited",
			account: Account{UsageCount: 100000},
			want:    false,
		},
		{
			name:    "admin is never limited",
			account: Account{IsAdmin: true, UsageCount: 100, UsageLimit: intPtr(10)},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasReachedUsageLimit(tt.account); got != tt.want {
				t.Errorf("HasReachedUsageLimit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		account Account
		want    int
	}{
		{
			name: "partial day rounds up",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now.Add(time.Hour)),
			},
			want: 1,
		},
		{
			name: "exactly 14 days",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now.Add(14 * 24 * time.Hour)),
			},
			want: 14,
		},
		{
			name: "13 days and one hour rounds up to 14",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now.Add(13*24*time.Hour + time.Hour)),
			},
			want: 14,
		},
		{
			name: "past end date floors at zero",
			account: Account{
				Status:   StatusTrial,
				TrialEnd: timePtr(now.Add(-48 * time.Hour)),
			},
			want: 0,
		},
		{
			name: "active reads subscription end",
			account: Account{
				Status:          StatusActive,
				SubscriptionEnd: timePtr(now.Add(30 * 24 * time.Hour)),
				TrialEnd:        timePtr(now.Add(-time.Hour)),
			},
			want: 30,
		},
		{
			name: "inactive status has no end date",
			account: Account{
				Status:          StatusCancelled,
				SubscriptionEnd: timePtr(now.Add(24 * time.Hour)),
			},
			want: 0,
		},
		{
			name:    "admin placeholder",
			account: Account{IsAdmin: true},
			want:    AdminDaysRemaining,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.account, now); got != tt.want {
				t.Errorf("DaysRemaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsagePercentage(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		want    float64
	}{
		{
			name:    "half used",
			account: Account{UsageCount: 500, UsageLimit: intPtr(1000)},
			want:    50,
		},
		{
			name:    "over limit clamps to 100",
			account: Account{UsageCount: 1500, UsageLimit: intPtr(1000)},
			want:    100,
		},
		{
			name:    "unlimited reports zero",
			account: Account{UsageCount: 500},
			want:    0,
		},
		{
			name:    "zero limit reports zero",
			account: Account{UsageCount: 500, UsageLimit: intPtr(0)},
			want:    0,
		},
		{
			name:    "admin reports zero",
			account: Account{IsAdmin: true, UsageCount: 900, UsageLimit: intPtr(1000)},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsagePercentage(tt.account); got != tt.want {
				t.Errorf("UsagePercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("admin snapshot", func(t *testing.T) {
		snap := Evaluate(Account{IsAdmin: true, Plan: "premier", UsageCount: 42}, now)

		if !snap.IsActive {
			t.Error("Evaluate() admin should be active")
		}
		if snap.Status != StatusAdmin {
			t.Errorf("Evaluate() status = %v, want %v", snap.Status, StatusAdmin)
		}
		if snap.DaysRemaining != AdminDaysRemaining {
			t.Errorf("Evaluate() daysRemaining = %v, want %v", snap.DaysRemaining, AdminDaysRemaining)
		}
		if snap.HasReachedUsageLimit {
			t.Error("Evaluate() admin should never reach usage limit")
		}
		if snap.UsageCount != 42 {
			t.Errorf("Evaluate() usageCount = %v, want 42", snap.UsageCount)
		}
	})

	t.Run("trial snapshot", func(t *testing.T) {
		account := Account{
			Status:     StatusTrial,
			Plan:       "trial",
			TrialEnd:   timePtr(now.Add(5 * 24 * time.Hour)),
			UsageCount: 3,
			UsageLimit: intPtr(10),
		}
		snap := Evaluate(account, now)

		if !snap.IsActive {
			t.Error("Evaluate() trial with future end should be active")
		}
		if snap.DaysRemaining != 5 {
			t.Errorf("Evaluate() daysRemaining = %v, want 5", snap.DaysRemaining)
		}
		if snap.UsagePercentage != 30 {
			t.Errorf("Evaluate() usagePercentage = %v, want 30", snap.UsagePercentage)
		}
		if snap.Status != StatusTrial {
			t.Errorf("Evaluate() status = %v, want %v", snap.Status, StatusTrial)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		limit := 10
		account := Account{
			Status:     StatusActive,
			UsageCount: 5,
			UsageLimit: &limit,
		}
		_ = Evaluate(account, now)

		if limit != 10 || account.UsageCount != 5 {
			t.Error("Evaluate() mutated its input")
		}
	})
}
