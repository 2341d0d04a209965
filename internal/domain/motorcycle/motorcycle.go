package motorcycle

import "time"

// Motorcycle is a bike whose setups are tracked per session. It is owned by
// a single user, by a team, or by nobody (legacy rows imported before
// ownership existed).
type Motorcycle struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	TeamID    *int64    `json:"team_id,omitempty"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year,omitempty"`
	Nickname  string    `json:"nickname,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsUnowned reports whether this is a legacy row with neither owner
func (m *Motorcycle) IsUnowned() bool {
	return m.UserID == nil && m.TeamID == nil
}
