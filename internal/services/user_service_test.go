package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/entitlement"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		existing string
		wantCode string
	}{
		{
			name:  "successful registration",
			email: "rider@example.com",
		},
		{
			name:     "duplicate email",
			email:    "rider@example.com",
			existing: "rider@example.com",
			wantCode: errors.ErrCodeConflict,
		},
		{
			name:     "duplicate email different case",
			email:    "Rider@Example.com",
			existing: "rider@example.com",
			wantCode: errors.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := testutil.NewMockUserRepository()
			service := NewUserService(mockRepo, testLogger())
			ctx := context.Background()

			if tt.existing != "" {
				if _, err := service.Register(ctx, tt.existing, "password1", "Existing"); err != nil {
					t.Fatalf("seeding user failed: %v", err)
				}
			}

			u, err := service.Register(ctx, tt.email, "password1", "Test Rider")

			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("Register() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			if u.SubscriptionStatus != user.StatusTrial {
				t.Errorf("Register() status = %v, want %v", u.SubscriptionStatus, user.StatusTrial)
			}
			if u.SubscriptionPlan != user.PlanTrial {
				t.Errorf("Register() plan = %v, want %v", u.SubscriptionPlan, user.PlanTrial)
			}
			if u.TrialStart == nil || u.TrialEnd == nil {
				t.Fatal("Register() trial window not set")
			}

			gotWindow := u.TrialEnd.Sub(*u.TrialStart)
			if gotWindow != user.TrialDuration {
				t.Errorf("Register() trial window = %v, want %v", gotWindow, user.TrialDuration)
			}
			if u.UsageCount != 0 {
				t.Errorf("Register() usage count = %d, want 0", u.UsageCount)
			}
			if u.PasswordHash == "password1" || u.PasswordHash == "" {
				t.Error("Register() password not hashed")
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	service := NewUserService(mockRepo, testLogger())
	ctx := context.Background()

	registered, err := service.Register(ctx, "rider@example.com", "correct-horse", "Rider")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			email:    "rider@example.com",
			password: "correct-horse",
		},
		{
			name:     "case-insensitive email",
			email:    "RIDER@example.com",
			password: "correct-horse",
		},
		{
			name:     "wrong password",
			email:    "rider@example.com",
			password: "battery-staple",
			wantErr:  true,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "correct-horse",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.email, tt.password)

			if tt.wantErr {
				if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
					t.Errorf("Authenticate() error = %v, want unauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if u.ID != registered.ID {
				t.Errorf("Authenticate() user ID = %d, want %d", u.ID, registered.ID)
			}
		})
	}

	t.Run("stamps last login", func(t *testing.T) {
		if _, err := service.Authenticate(ctx, "rider@example.com", "correct-horse"); err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if mockRepo.Users[registered.ID].LastLoginAt == nil {
			t.Error("Authenticate() did not stamp last login")
		}
	})
}

func TestUserService_SubscriptionStatus(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	service := NewUserService(mockRepo, testLogger())
	ctx := context.Background()

	trialEnd := time.Now().Add(5 * 24 * time.Hour)
	hash, _ := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
	limit := 1000
	u := &user.User{
		Email:              "rider@example.com",
		PasswordHash:       string(hash),
		SubscriptionStatus: user.StatusTrial,
		SubscriptionPlan:   user.PlanTrial,
		TrialEnd:           &trialEnd,
		UsageCount:         250,
		UsageLimit:         &limit,
	}
	if err := mockRepo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	snap, err := service.SubscriptionStatus(ctx, u.ID)
	if err != nil {
		t.Fatalf("SubscriptionStatus() error = %v", err)
	}

	if !snap.IsActive {
		t.Error("SubscriptionStatus() should be active during trial")
	}
	if snap.Status != entitlement.StatusTrial {
		t.Errorf("SubscriptionStatus() status = %v, want trial", snap.Status)
	}
	if snap.UsagePercentage != 25 {
		t.Errorf("SubscriptionStatus() usagePercentage = %v, want 25", snap.UsagePercentage)
	}

	if _, err := service.SubscriptionStatus(ctx, 9999); !errors.IsNotFound(err) {
		t.Errorf("SubscriptionStatus() error = %v, want not found", err)
	}
}

func TestUserService_RecordUsage(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	service := NewUserService(mockRepo, testLogger())
	ctx := context.Background()

	u, err := service.Register(ctx, "rider@example.com", "password1", "Rider")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	service.RecordUsage(ctx, u.ID)
	service.RecordUsage(ctx, u.ID)

	if mockRepo.Users[u.ID].UsageCount != 2 {
		t.Errorf("RecordUsage() usage count = %d, want 2", mockRepo.Users[u.ID].UsageCount)
	}

	// Failures must not panic or surface
	mockRepo.IncrementError = errors.DatabaseError("increment failed", nil)
	service.RecordUsage(ctx, u.ID)

	if mockRepo.Users[u.ID].UsageCount != 2 {
		t.Errorf("RecordUsage() usage count after failure = %d, want 2", mockRepo.Users[u.ID].UsageCount)
	}
}
