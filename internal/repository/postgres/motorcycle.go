package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// MotorcycleRepository implements motorcycle.Repository
type MotorcycleRepository struct {
	db *sql.DB
}

// NewMotorcycleRepository creates a new motorcycle repository
func NewMotorcycleRepository(db *sql.DB) motorcycle.Repository {
	return &MotorcycleRepository{db: db}
}

const motorcycleColumns = `id, user_id, team_id, make, model, year, nickname, notes, created_at, updated_at`

func scanMotorcycle(row rowScanner) (*motorcycle.Motorcycle, error) {
	var m motorcycle.Motorcycle
	var userID, teamID sql.NullInt64
	var year sql.NullInt64
	var nickname, notes sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&m.ID, &userID, &teamID, &m.Make, &m.Model, &year,
		&nickname, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		m.UserID = &userID.Int64
	}
	if teamID.Valid {
		m.TeamID = &teamID.Int64
	}
	if year.Valid {
		m.Year = int(year.Int64)
	}
	if nickname.Valid {
		m.Nickname = nickname.String
	}
	if notes.Valid {
		m.Notes = notes.String
	}
	m.CreatedAt = time.Unix(createdAt, 0)
	m.UpdatedAt = time.Unix(updatedAt, 0)

	return &m, nil
}

// Create creates a new motorcycle
func (r *MotorcycleRepository) Create(ctx context.Context, m *motorcycle.Motorcycle) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO motorcycles (user_id, team_id, make, model, year, nickname, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		m.UserID, m.TeamID, m.Make, m.Model, zeroIntOrNil(m.Year),
		nullIfEmpty(m.Nickname), nullIfEmpty(m.Notes), now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create motorcycle", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get motorcycle ID", err)
	}

	m.ID = id
	return nil
}

// GetByID retrieves a motorcycle by ID
func (r *MotorcycleRepository) GetByID(ctx context.Context, id int64) (*motorcycle.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE id = ?`

	m, err := scanMotorcycle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Motorcycle")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get motorcycle", err)
	}

	return m, nil
}

// ListVisible retrieves motorcycles visible to the user: individually owned,
// owned by a team where the user is an active member, or unowned legacy rows
func (r *MotorcycleRepository) ListVisible(ctx context.Context, userID int64) ([]*motorcycle.Motorcycle, error) {
	query := `
		SELECT ` + motorcycleColumns + `
		FROM motorcycles
		WHERE user_id = ?
		   OR (user_id IS NULL AND team_id IS NULL)
		   OR team_id IN (
			SELECT team_id FROM team_memberships WHERE user_id = ? AND status = ?
		   )
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, userID, team.MembershipActive)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list motorcycles", err)
	}
	defer rows.Close()

	var motorcycles []*motorcycle.Motorcycle
	for rows.Next() {
		m, err := scanMotorcycle(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan motorcycle", err)
		}
		motorcycles = append(motorcycles, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate motorcycles", err)
	}

	return motorcycles, nil
}

// Update updates a motorcycle
func (r *MotorcycleRepository) Update(ctx context.Context, m *motorcycle.Motorcycle) error {
	m.UpdatedAt = time.Now()

	query := `
		UPDATE motorcycles
		SET user_id = ?, team_id = ?, make = ?, model = ?, year = ?, nickname = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		m.UserID, m.TeamID, m.Make, m.Model, zeroIntOrNil(m.Year),
		nullIfEmpty(m.Nickname), nullIfEmpty(m.Notes), m.UpdatedAt.Unix(), m.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update motorcycle", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Motorcycle")
	}

	return nil
}

// Delete deletes a motorcycle
func (r *MotorcycleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM motorcycles WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete motorcycle", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Motorcycle")
	}

	return nil
}

func zeroIntOrNil(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
