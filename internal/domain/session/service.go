package session

import "context"

// Service defines the interface for session business logic
type Service interface {
	// Save persists a session after the entitlement gate. This is the
	// billable action: a successful save increments the user's usage counter
	// (fire-and-forget).
	Save(ctx context.Context, requesterID int64, s *Session) (*Session, error)

	// Get retrieves a session owned by the requester
	Get(ctx context.Context, requesterID, id int64) (*Session, error)

	// List retrieves the requester's sessions with pagination
	List(ctx context.Context, requesterID int64, limit, offset int) ([]*Session, int64, error)

	// ListByMotorcycle retrieves sessions for a motorcycle the requester may
	// view
	ListByMotorcycle(ctx context.Context, requesterID, motorcycleID int64, limit, offset int) ([]*Session, int64, error)

	// Update updates a session owned by the requester
	Update(ctx context.Context, requesterID int64, s *Session) error

	// Delete deletes a session owned by the requester
	Delete(ctx context.Context, requesterID, id int64) error
}
