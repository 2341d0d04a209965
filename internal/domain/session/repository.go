package session

import "context"

// Repository defines the interface for session data access
type Repository interface {
	// Create creates a new session
	Create(ctx context.Context, s *Session) error

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id int64) (*Session, error)

	// ListByUser retrieves a user's sessions, newest first, with pagination
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Session, int64, error)

	// ListByMotorcycle retrieves sessions logged against a motorcycle
	ListByMotorcycle(ctx context.Context, motorcycleID int64, limit, offset int) ([]*Session, int64, error)

	// Update updates a session
	Update(ctx context.Context, s *Session) error

	// Delete deletes a session
	Delete(ctx context.Context, id int64) error
}
