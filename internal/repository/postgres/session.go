package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/session"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// SessionRepository implements session.Repository
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) session.Repository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, motorcycle_id, event_name, track, session_type,
	session_date, setup, notes, lap_time_best, created_at, updated_at`

func scanSession(row rowScanner) (*session.Session, error) {
	var s session.Session
	var sessionDate, createdAt, updatedAt int64
	var setupJSON string
	var notes, lapTime sql.NullString

	err := row.Scan(&s.ID, &s.UserID, &s.MotorcycleID, &s.EventName, &s.Track,
		&s.SessionType, &sessionDate, &setupJSON, &notes, &lapTime, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(setupJSON), &s.Setup); err != nil {
		return nil, err
	}
	if notes.Valid {
		s.Notes = notes.String
	}
	if lapTime.Valid {
		s.LapTimeBest = &lapTime.String
	}
	s.SessionDate = time.Unix(sessionDate, 0)
	s.CreatedAt = time.Unix(createdAt, 0)
	s.UpdatedAt = time.Unix(updatedAt, 0)

	return &s, nil
}

// Create creates a new session
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	setupJSON, err := json.Marshal(s.Setup)
	if err != nil {
		return errors.Internal("Failed to encode setup", err)
	}

	query := `
		INSERT INTO sessions (user_id, motorcycle_id, event_name, track, session_type,
			session_date, setup, notes, lap_time_best, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		s.UserID, s.MotorcycleID, s.EventName, s.Track, s.SessionType,
		s.SessionDate.Unix(), string(setupJSON), nullIfEmpty(s.Notes), s.LapTimeBest,
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create session", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get session ID", err)
	}

	s.ID = id
	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Session")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get session", err)
	}

	return s, nil
}

// ListByUser retrieves a user's sessions, newest first, with pagination
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*session.Session, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count sessions", err)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = ?
		ORDER BY session_date DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list sessions", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// ListByMotorcycle retrieves sessions logged against a motorcycle
func (r *SessionRepository) ListByMotorcycle(ctx context.Context, motorcycleID int64, limit, offset int) ([]*session.Session, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE motorcycle_id = ?`, motorcycleID,
	).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count sessions", err)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE motorcycle_id = ?
		ORDER BY session_date DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, motorcycleID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list sessions", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func collectSessions(rows *sql.Rows) ([]*session.Session, error) {
	var sessions []*session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan session", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate sessions", err)
	}

	return sessions, nil
}

// Update updates a session
func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	s.UpdatedAt = time.Now()

	setupJSON, err := json.Marshal(s.Setup)
	if err != nil {
		return errors.Internal("Failed to encode setup", err)
	}

	query := `
		UPDATE sessions
		SET motorcycle_id = ?, event_name = ?, track = ?, session_type = ?,
			session_date = ?, setup = ?, notes = ?, lap_time_best = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		s.MotorcycleID, s.EventName, s.Track, s.SessionType,
		s.SessionDate.Unix(), string(setupJSON), nullIfEmpty(s.Notes), s.LapTimeBest,
		s.UpdatedAt.Unix(), s.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update session", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Session")
	}

	return nil
}

// Delete deletes a session
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete session", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Session")
	}

	return nil
}
