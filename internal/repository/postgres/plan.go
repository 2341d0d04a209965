package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pratik-mahalle/paddock/internal/domain/billing"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// PlanRepository implements billing.PlanRepository
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sql.DB) billing.PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, name, price_cents, currency, billing_interval, usage_limit, stripe_price_id, features`

func scanPlan(row rowScanner) (*billing.Plan, error) {
	var p billing.Plan
	var usageLimit sql.NullInt64
	var stripePriceID sql.NullString
	var featuresJSON string

	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Currency, &p.Interval,
		&usageLimit, &stripePriceID, &featuresJSON)
	if err != nil {
		return nil, err
	}

	if usageLimit.Valid {
		l := int(usageLimit.Int64)
		p.UsageLimit = &l
	}
	if stripePriceID.Valid {
		p.StripePriceID = stripePriceID.String
	}
	if err := json.Unmarshal([]byte(featuresJSON), &p.Features); err != nil {
		return nil, err
	}

	return &p, nil
}

// List retrieves all plans ordered by price
func (r *PlanRepository) List(ctx context.Context) ([]*billing.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY price_cents`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list plans", err)
	}
	defer rows.Close()

	var plans []*billing.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan plan", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate plans", err)
	}

	return plans, nil
}

// GetByID retrieves a plan by its key
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*billing.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = ?`

	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}

	return p, nil
}
