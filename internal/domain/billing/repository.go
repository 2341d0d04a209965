package billing

import "context"

// PlanRepository defines the interface for subscription plan access
type PlanRepository interface {
	// List retrieves all plans
	List(ctx context.Context) ([]*Plan, error)

	// GetByID retrieves a plan by its key
	GetByID(ctx context.Context, id string) (*Plan, error)
}
