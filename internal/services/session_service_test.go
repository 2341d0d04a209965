package services

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/domain/session"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/testutil"
)

type sessionFixture struct {
	service     session.Service
	sessions    *testutil.MockSessionRepository
	users       *testutil.MockUserRepository
	motorcycles *testutil.MockMotorcycleRepository
}

func newSessionFixture() *sessionFixture {
	sessions := testutil.NewMockSessionRepository()
	users := testutil.NewMockUserRepository()
	motorcycles := testutil.NewMockMotorcycleRepository()
	teams := testutil.NewMockTeamRepository()
	log := testLogger()

	userService := NewUserService(users, log)
	motorcycleService := NewMotorcycleService(motorcycles, teams, log)
	return &sessionFixture{
		service:     NewSessionService(sessions, userService, motorcycleService, log),
		sessions:    sessions,
		users:       users,
		motorcycles: motorcycles,
	}
}

func (f *sessionFixture) addRider(t *testing.T, mutate func(*user.User)) *user.User {
	t.Helper()
	trialEnd := time.Now().Add(7 * 24 * time.Hour)
	limit := 1000
	u := &user.User{
		Email:              "rider@example.com",
		SubscriptionStatus: user.StatusTrial,
		SubscriptionPlan:   user.PlanTrial,
		TrialEnd:           &trialEnd,
		UsageLimit:         &limit,
	}
	if mutate != nil {
		mutate(u)
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return u
}

func (f *sessionFixture) addOwnedBike(t *testing.T, ownerID int64) int64 {
	t.Helper()
	m := &motorcycle.Motorcycle{UserID: &ownerID, Make: "Yamaha", Model: "R6"}
	if err := f.motorcycles.Create(context.Background(), m); err != nil {
		t.Fatalf("seeding motorcycle failed: %v", err)
	}
	return m.ID
}

func trackdaySession(motorcycleID int64) *session.Session {
	return &session.Session{
		MotorcycleID: motorcycleID,
		Track:        "Mugello",
		SessionType:  "trackday",
		SessionDate:  time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestSessionService_Save(t *testing.T) {
	t.Run("active trial saves and usage is counted", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, nil)
		bikeID := f.addOwnedBike(t, rider.ID)

		saved, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if saved.ID == 0 {
			t.Error("Save() session id not assigned")
		}
		if saved.UserID != rider.ID {
			t.Errorf("Save() userID = %d, want %d", saved.UserID, rider.ID)
		}
		if f.users.Users[rider.ID].UsageCount != 1 {
			t.Errorf("Save() usage count = %d, want 1", f.users.Users[rider.ID].UsageCount)
		}
	})

	t.Run("expired subscription is rejected with status details", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, func(u *user.User) {
			u.SubscriptionStatus = user.StatusExpired
		})
		bikeID := f.addOwnedBike(t, rider.ID)

		_, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID))
		if !errors.HasCode(err, errors.ErrCodeEntitlementRequired) {
			t.Fatalf("Save() error = %v, want entitlement required", err)
		}

		appErr, ok := err.(*errors.AppError)
		if !ok {
			t.Fatalf("Save() error type = %T", err)
		}
		details, ok := appErr.Details.(map[string]interface{})
		if !ok {
			t.Fatalf("Save() details type = %T", appErr.Details)
		}
		if _, ok := details["subscriptionStatus"]; !ok {
			t.Error("Save() details missing subscriptionStatus")
		}
		if len(f.sessions.Sessions) != 0 {
			t.Error("Save() persisted a session despite the gate")
		}
	})

	t.Run("usage at the limit is rejected with counters", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, func(u *user.User) { u.UsageCount = 1000 })
		bikeID := f.addOwnedBike(t, rider.ID)

		_, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID))
		if !errors.HasCode(err, errors.ErrCodeUsageLimitReached) {
			t.Fatalf("Save() error = %v, want usage limit reached", err)
		}

		appErr, ok := err.(*errors.AppError)
		if !ok {
			t.Fatalf("Save() error type = %T", err)
		}
		details, ok := appErr.Details.(map[string]interface{})
		if !ok {
			t.Fatalf("Save() details type = %T", appErr.Details)
		}
		if got := details["usageCount"]; got != 1000 {
			t.Errorf("Save() details usageCount = %v, want 1000", got)
		}
	})

	t.Run("one below the limit still saves", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, func(u *user.User) { u.UsageCount = 999 })
		bikeID := f.addOwnedBike(t, rider.ID)

		if _, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if f.users.Users[rider.ID].UsageCount != 1000 {
			t.Errorf("Save() usage count = %d, want 1000", f.users.Users[rider.ID].UsageCount)
		}
	})

	t.Run("admin bypasses the gate entirely", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, func(u *user.User) {
			u.IsAdmin = true
			u.SubscriptionStatus = user.StatusExpired
			u.UsageCount = 5000
		})
		bikeID := f.addOwnedBike(t, rider.ID)

		if _, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		// Admin saves are not billable
		if got := f.users.Users[rider.ID].UsageCount; got != 5000 {
			t.Errorf("Save() admin usage count = %d, want 5000", got)
		}
	})

	t.Run("invisible motorcycle is reported as not found", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, nil)
		bikeID := f.addOwnedBike(t, rider.ID+100)

		_, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID))
		if !errors.IsNotFound(err) {
			t.Fatalf("Save() error = %v, want not found", err)
		}
	})

	t.Run("usage increment failure does not fail the save", func(t *testing.T) {
		f := newSessionFixture()
		rider := f.addRider(t, nil)
		bikeID := f.addOwnedBike(t, rider.ID)
		f.users.IncrementError = errors.DatabaseError("increment failed", nil)

		if _, err := f.service.Save(context.Background(), rider.ID, trackdaySession(bikeID)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	})
}

func TestSessionService_OwnershipChecks(t *testing.T) {
	f := newSessionFixture()
	owner := f.addRider(t, nil)
	bikeID := f.addOwnedBike(t, owner.ID)
	ctx := context.Background()

	saved, err := f.service.Save(ctx, owner.ID, trackdaySession(bikeID))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	strangerID := owner.ID + 1

	t.Run("owner reads back the session", func(t *testing.T) {
		got, err := f.service.Get(ctx, owner.ID, saved.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Track != "Mugello" {
			t.Errorf("Get() track = %s", got.Track)
		}
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		if _, err := f.service.Get(ctx, strangerID, saved.ID); !errors.IsNotFound(err) {
			t.Errorf("Get() error = %v, want not found", err)
		}
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		update := trackdaySession(bikeID)
		update.ID = saved.ID
		update.Notes = "rebound +2"
		if err := f.service.Update(ctx, strangerID, update); !errors.IsNotFound(err) {
			t.Errorf("Update() error = %v, want not found", err)
		}
	})

	t.Run("owner update keeps ownership", func(t *testing.T) {
		update := trackdaySession(bikeID)
		update.ID = saved.ID
		update.UserID = strangerID
		update.Notes = "rebound +2"
		if err := f.service.Update(ctx, owner.ID, update); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if f.sessions.Sessions[saved.ID].UserID != owner.ID {
			t.Error("Update() reassigned session ownership")
		}
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		if err := f.service.Delete(ctx, strangerID, saved.ID); !errors.IsNotFound(err) {
			t.Errorf("Delete() error = %v, want not found", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if err := f.service.Delete(ctx, owner.ID, saved.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok := f.sessions.Sessions[saved.ID]; ok {
			t.Error("Delete() session still present")
		}
	})
}

func TestSessionService_ListByMotorcycle(t *testing.T) {
	f := newSessionFixture()
	owner := f.addRider(t, nil)
	bikeID := f.addOwnedBike(t, owner.ID)
	ctx := context.Background()

	if _, err := f.service.Save(ctx, owner.ID, trackdaySession(bikeID)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Run("owner lists the bike's sessions", func(t *testing.T) {
		got, total, err := f.service.ListByMotorcycle(ctx, owner.ID, bikeID, 20, 0)
		if err != nil {
			t.Fatalf("ListByMotorcycle() error = %v", err)
		}
		if total != 1 || len(got) != 1 {
			t.Errorf("ListByMotorcycle() = %d sessions, total %d, want 1/1", len(got), total)
		}
	})

	t.Run("stranger cannot list through an invisible bike", func(t *testing.T) {
		_, _, err := f.service.ListByMotorcycle(ctx, owner.ID+1, bikeID, 20, 0)
		if !errors.IsNotFound(err) {
			t.Errorf("ListByMotorcycle() error = %v, want not found", err)
		}
	})
}
