package motorcycle

import "context"

// Service defines the interface for motorcycle business logic
type Service interface {
	// Create creates a motorcycle owned by the requester or one of their
	// teams
	Create(ctx context.Context, requesterID int64, m *Motorcycle) (*Motorcycle, error)

	// Get retrieves a motorcycle visible to the requester
	Get(ctx context.Context, requesterID, id int64) (*Motorcycle, error)

	// List retrieves all motorcycles visible to the requester
	List(ctx context.Context, requesterID int64) ([]*Motorcycle, error)

	// Update updates a motorcycle editable by the requester
	Update(ctx context.Context, requesterID int64, m *Motorcycle) error

	// Delete deletes a motorcycle editable by the requester
	Delete(ctx context.Context, requesterID, id int64) error

	// CanView reports whether the requester may read the motorcycle
	CanView(ctx context.Context, requesterID int64, m *Motorcycle) (bool, error)

	// CanEdit reports whether the requester may modify the motorcycle
	CanEdit(ctx context.Context, requesterID int64, m *Motorcycle) (bool, error)
}
