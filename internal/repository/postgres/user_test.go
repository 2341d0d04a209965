package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/testutil"
)

func seedUser(t *testing.T, repo user.Repository, email string, mutate func(*user.User)) *user.User {
	t.Helper()
	u := &user.User{
		Email:              email,
		PasswordHash:       "hashed",
		SubscriptionStatus: user.StatusTrial,
		SubscriptionPlan:   user.PlanTrial,
	}
	if mutate != nil {
		mutate(u)
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	limit := 1000
	trialEnd := time.Now().Add(14 * 24 * time.Hour).Truncate(time.Second)
	created := seedUser(t, repo, "rider@example.com", func(u *user.User) {
		u.Name = "Maria"
		u.TrialEnd = &trialEnd
		u.UsageLimit = &limit
	})
	if created.ID == 0 {
		t.Fatal("Create() did not assign an id")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "rider@example.com" || got.Name != "Maria" {
		t.Errorf("GetByID() = %s/%s", got.Email, got.Name)
	}
	if got.TrialEnd == nil || !got.TrialEnd.Equal(trialEnd) {
		t.Errorf("GetByID() trialEnd = %v, want %v", got.TrialEnd, trialEnd)
	}
	if got.UsageLimit == nil || *got.UsageLimit != 1000 {
		t.Errorf("GetByID() usageLimit = %v, want 1000", got.UsageLimit)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.IsNotFound(err) {
		t.Errorf("GetByID() error = %v, want not found", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "Rider@Example.com", nil)

	got, err := repo.GetByEmail(ctx, "rider@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.Email != "Rider@Example.com" {
		t.Errorf("GetByEmail() email = %s", got.Email)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.IsNotFound(err) {
		t.Errorf("GetByEmail() error = %v, want not found", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	seedUser(t, repo, "rider@example.com", nil)

	dup := &user.User{
		Email:              "rider@example.com",
		PasswordHash:       "hashed",
		SubscriptionStatus: user.StatusTrial,
		SubscriptionPlan:   user.PlanTrial,
	}
	if err := repo.Create(context.Background(), dup); err == nil {
		t.Fatal("Create() duplicate email should fail")
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "rider@example.com", nil)

	subID := "sub_123"
	end := time.Now().AddDate(0, 1, 0).Truncate(time.Second)
	u.SubscriptionStatus = user.StatusActive
	u.SubscriptionPlan = user.PlanPremium
	u.SubscriptionEnd = &end
	u.StripeSubscriptionID = &subID

	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByStripeSubscriptionID(ctx, "sub_123")
	if err != nil {
		t.Fatalf("GetByStripeSubscriptionID() error = %v", err)
	}
	if got.ID != u.ID || got.SubscriptionStatus != user.StatusActive {
		t.Errorf("GetByStripeSubscriptionID() = %+v", got)
	}
	if got.SubscriptionEnd == nil || !got.SubscriptionEnd.Equal(end) {
		t.Errorf("Update() subscriptionEnd = %v, want %v", got.SubscriptionEnd, end)
	}

	missing := &user.User{ID: 9999, Email: "x@example.com", PasswordHash: "h"}
	if err := repo.Update(ctx, missing); !errors.IsNotFound(err) {
		t.Errorf("Update() error = %v, want not found", err)
	}
}

func TestUserRepository_IncrementUsage(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "rider@example.com", func(u *user.User) { u.UsageCount = 5 })

	if err := repo.IncrementUsage(ctx, u.ID); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}
	if err := repo.IncrementUsage(ctx, u.ID); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.UsageCount != 7 {
		t.Errorf("IncrementUsage() count = %d, want 7", got.UsageCount)
	}

	if err := repo.IncrementUsage(ctx, 9999); !errors.IsNotFound(err) {
		t.Errorf("IncrementUsage() error = %v, want not found", err)
	}
}

func TestUserRepository_ExpireLapsed(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	lapsedTrial := seedUser(t, repo, "lapsed-trial@example.com", func(u *user.User) {
		u.TrialEnd = &past
	})
	lapsedSub := seedUser(t, repo, "lapsed-sub@example.com", func(u *user.User) {
		u.SubscriptionStatus = user.StatusActive
		u.SubscriptionEnd = &past
	})
	current := seedUser(t, repo, "current@example.com", func(u *user.User) {
		u.TrialEnd = &future
	})
	admin := seedUser(t, repo, "admin@example.com", func(u *user.User) {
		u.IsAdmin = true
		u.TrialEnd = &past
	})
	cancelled := seedUser(t, repo, "cancelled@example.com", func(u *user.User) {
		u.SubscriptionStatus = user.StatusCancelled
		u.SubscriptionEnd = &past
	})

	changed, err := repo.ExpireLapsed(ctx, now)
	if err != nil {
		t.Fatalf("ExpireLapsed() error = %v", err)
	}
	if changed != 2 {
		t.Errorf("ExpireLapsed() changed = %d, want 2", changed)
	}

	wantStatus := map[int64]string{
		lapsedTrial.ID: user.StatusExpired,
		lapsedSub.ID:   user.StatusExpired,
		current.ID:     user.StatusTrial,
		admin.ID:       user.StatusTrial,
		cancelled.ID:   user.StatusCancelled,
	}
	for id, want := range wantStatus {
		got, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID(%d) error = %v", id, err)
		}
		if got.SubscriptionStatus != want {
			t.Errorf("user %d status = %s, want %s", id, got.SubscriptionStatus, want)
		}
	}
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		seedUser(t, repo, email, nil)
	}

	users, total, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("List() total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("List() returned %d users, want 2", len(users))
	}
	// Newest first
	if users[0].Email != "c@example.com" {
		t.Errorf("List() first = %s, want c@example.com", users[0].Email)
	}
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	repo := NewUserRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "rider@example.com", nil)

	at := time.Now().Truncate(time.Second)
	if err := repo.TouchLastLogin(ctx, u.ID, at); err != nil {
		t.Fatalf("TouchLastLogin() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(at) {
		t.Errorf("TouchLastLogin() lastLoginAt = %v, want %v", got.LastLoginAt, at)
	}
}
