package motorcycle

import "context"

// Repository defines the interface for motorcycle data access
type Repository interface {
	// Create creates a new motorcycle
	Create(ctx context.Context, m *Motorcycle) error

	// GetByID retrieves a motorcycle by ID
	GetByID(ctx context.Context, id int64) (*Motorcycle, error)

	// ListVisible retrieves motorcycles visible to the user: individually
	// owned, owned by a team the user is an active member of, or unowned
	ListVisible(ctx context.Context, userID int64) ([]*Motorcycle, error)

	// Update updates a motorcycle
	Update(ctx context.Context, m *Motorcycle) error

	// Delete deletes a motorcycle
	Delete(ctx context.Context, id int64) error
}
