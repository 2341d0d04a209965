package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, is_admin,
	subscription_status, subscription_plan,
	trial_start, trial_end, subscription_start, subscription_end,
	usage_count, usage_limit, stripe_customer_id, stripe_subscription_id,
	last_login_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var name sql.NullString
	var trialStart, trialEnd, subStart, subEnd, lastLogin sql.NullInt64
	var usageLimit sql.NullInt64
	var custID, subID sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.Email, &name, &u.PasswordHash, &u.IsAdmin,
		&u.SubscriptionStatus, &u.SubscriptionPlan,
		&trialStart, &trialEnd, &subStart, &subEnd,
		&u.UsageCount, &usageLimit, &custID, &subID,
		&lastLogin, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if name.Valid {
		u.Name = name.String
	}
	if trialStart.Valid {
		t := time.Unix(trialStart.Int64, 0)
		u.TrialStart = &t
	}
	if trialEnd.Valid {
		t := time.Unix(trialEnd.Int64, 0)
		u.TrialEnd = &t
	}
	if subStart.Valid {
		t := time.Unix(subStart.Int64, 0)
		u.SubscriptionStart = &t
	}
	if subEnd.Valid {
		t := time.Unix(subEnd.Int64, 0)
		u.SubscriptionEnd = &t
	}
	if usageLimit.Valid {
		l := int(usageLimit.Int64)
		u.UsageLimit = &l
	}
	if custID.Valid {
		u.StripeCustomerID = &custID.String
	}
	if subID.Valid {
		u.StripeSubscriptionID = &subID.String
	}
	if lastLogin.Valid {
		t := time.Unix(lastLogin.Int64, 0)
		u.LastLoginAt = &t
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	return &u, nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (email, name, password_hash, is_admin,
			subscription_status, subscription_plan,
			trial_start, trial_end, subscription_start, subscription_end,
			usage_count, usage_limit, stripe_customer_id, stripe_subscription_id,
			last_login_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, nullIfEmpty(u.Name), u.PasswordHash, u.IsAdmin,
		u.SubscriptionStatus, u.SubscriptionPlan,
		unixOrNil(u.TrialStart), unixOrNil(u.TrialEnd),
		unixOrNil(u.SubscriptionStart), unixOrNil(u.SubscriptionEnd),
		u.UsageCount, intOrNil(u.UsageLimit), u.StripeCustomerID, u.StripeSubscriptionID,
		unixOrNil(u.LastLoginAt), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get user ID", err)
	}

	u.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER(?)`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// GetByStripeSubscriptionID retrieves the user holding the given subscription
func (r *UserRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE stripe_subscription_id = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, subscriptionID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET email = ?, name = ?, password_hash = ?, is_admin = ?,
			subscription_status = ?, subscription_plan = ?,
			trial_start = ?, trial_end = ?, subscription_start = ?, subscription_end = ?,
			usage_count = ?, usage_limit = ?, stripe_customer_id = ?, stripe_subscription_id = ?,
			last_login_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, nullIfEmpty(u.Name), u.PasswordHash, u.IsAdmin,
		u.SubscriptionStatus, u.SubscriptionPlan,
		unixOrNil(u.TrialStart), unixOrNil(u.TrialEnd),
		unixOrNil(u.SubscriptionStart), unixOrNil(u.SubscriptionEnd),
		u.UsageCount, intOrNil(u.UsageLimit), u.StripeCustomerID, u.StripeSubscriptionID,
		unixOrNil(u.LastLoginAt), u.UpdatedAt.Unix(), u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// IncrementUsage increments the usage counter by one
func (r *UserRepository) IncrementUsage(ctx context.Context, id int64) error {
	query := `UPDATE users SET usage_count = usage_count + 1, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, time.Now().Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to increment usage", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// TouchLastLogin stamps the last-login time
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE users SET last_login_at = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, at.Unix(), id); err != nil {
		return errors.DatabaseError("Failed to record login", err)
	}

	return nil
}

// ExpireLapsed flips trials past their trial end and active subscriptions
// past their subscription end to expired. Admins never lapse.
func (r *UserRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE users
		SET subscription_status = 'expired', updated_at = ?
		WHERE is_admin = ?
		  AND (
			(subscription_status = 'trial' AND trial_end IS NOT NULL AND trial_end < ?)
			OR
			(subscription_status = 'active' AND subscription_end IS NOT NULL AND subscription_end < ?)
		  )
	`

	result, err := r.db.ExecContext(ctx, query, now.Unix(), false, now.Unix(), now.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to expire lapsed users", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
