package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Create schema
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		subscription_status VARCHAR(50) NOT NULL DEFAULT 'trial',
		subscription_plan VARCHAR(50) NOT NULL DEFAULT 'trial',
		trial_start INTEGER,
		trial_end INTEGER,
		subscription_start INTEGER,
		subscription_end INTEGER,
		usage_count INTEGER NOT NULL DEFAULT 0,
		usage_limit INTEGER,
		stripe_customer_id VARCHAR(255),
		stripe_subscription_id VARCHAR(255),
		last_login_at INTEGER,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		owner_id INTEGER NOT NULL,
		subscription_plan VARCHAR(50) NOT NULL DEFAULT 'premier',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (owner_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS team_memberships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'member',
		status VARCHAR(50) NOT NULL DEFAULT 'active',
		joined_at INTEGER,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE(team_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS team_invitations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL,
		email VARCHAR(255) NOT NULL,
		token VARCHAR(255) NOT NULL UNIQUE,
		invited_by INTEGER NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		expires_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE,
		FOREIGN KEY (invited_by) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS motorcycles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		team_id INTEGER,
		make VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		year INTEGER,
		nickname VARCHAR(100),
		notes TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		motorcycle_id INTEGER NOT NULL,
		event_name VARCHAR(255) NOT NULL,
		track VARCHAR(255) NOT NULL,
		session_type VARCHAR(50) NOT NULL,
		session_date INTEGER NOT NULL,
		setup TEXT NOT NULL DEFAULT '{}',
		notes TEXT,
		lap_time_best VARCHAR(20),
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subscription_plans (
		id VARCHAR(50) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		price_cents INTEGER NOT NULL,
		currency VARCHAR(10) NOT NULL DEFAULT 'usd',
		billing_interval VARCHAR(20) NOT NULL DEFAULT 'month',
		usage_limit INTEGER,
		stripe_price_id VARCHAR(255),
		features TEXT NOT NULL DEFAULT '[]'
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
