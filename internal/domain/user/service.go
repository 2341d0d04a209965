package user

import (
	"context"

	"github.com/pratik-mahalle/paddock/internal/entitlement"
)

// Service defines the interface for user business logic
type Service interface {
	// Register creates a new user on a fresh 14-day trial
	Register(ctx context.Context, email, password, name string) (*User, error)

	// Authenticate verifies credentials and stamps the last login
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// SubscriptionStatus computes the entitlement snapshot for a user
	SubscriptionStatus(ctx context.Context, userID int64) (*entitlement.Snapshot, error)

	// RecordUsage increments the usage counter. Errors are logged and
	// swallowed: usage accounting is advisory and never blocks a
	// permitted action.
	RecordUsage(ctx context.Context, userID int64)

	// List retrieves users with pagination (admin tooling)
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)
}
