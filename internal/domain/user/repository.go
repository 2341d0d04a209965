package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByStripeSubscriptionID retrieves the user holding the given external
	// subscription id
	GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// IncrementUsage increments the usage counter by one
	IncrementUsage(ctx context.Context, id int64) error

	// TouchLastLogin stamps the last-login time
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error

	// ExpireLapsed flips trial/active statuses to expired once the
	// corresponding end date has passed; returns the number of rows changed
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)

	// List retrieves all users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)
}
