package client

import "time"

// User is the API representation of an account
type User struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name,omitempty"`
	IsAdmin            bool   `json:"isAdmin"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	SubscriptionPlan   string `json:"subscriptionPlan"`
	UsageCount         int    `json:"usageCount"`
	UsageLimit         *int   `json:"usageLimit"`
}

// AuthResponse is returned by login, register and refresh
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// SubscriptionStatus is the entitlement snapshot for an account
type SubscriptionStatus struct {
	IsActive             bool    `json:"isActive"`
	HasReachedUsageLimit bool    `json:"hasReachedUsageLimit"`
	DaysRemaining        int     `json:"daysRemaining"`
	UsagePercentage      float64 `json:"usagePercentage"`
	Status               string  `json:"status"`
	Plan                 string  `json:"plan"`
	UsageCount           int     `json:"usageCount"`
	UsageLimit           *int    `json:"usageLimit"`
}

// Team is a shared workspace owned by a premier subscriber
type Team struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	OwnerID          int64     `json:"owner_id"`
	SubscriptionPlan string    `json:"subscription_plan"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Membership links a user to a team with a role
type Membership struct {
	ID        int64      `json:"id"`
	TeamID    int64      `json:"team_id"`
	UserID    int64      `json:"user_id"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	JoinedAt  *time.Time `json:"joined_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UserEmail string     `json:"user_email,omitempty"`
	UserName  string     `json:"user_name,omitempty"`
}

// Invitation is a pending offer to join a team
type Invitation struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	Email     string    `json:"email"`
	InvitedBy int64     `json:"invited_by"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	TeamName  string    `json:"team_name,omitempty"`
}

// Motorcycle is a bike owned by a user or shared with a team
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

// Setup holds the chassis settings recorded for a session
type Setup struct {
	ForkPreload      *int     `json:"fork_preload,omitempty"`
	ForkCompression  *int     `json:"fork_compression,omitempty"`
	ForkRebound      *int     `json:"fork_rebound,omitempty"`
	ShockPreload     *int     `json:"shock_preload,omitempty"`
	ShockCompression *int     `json:"shock_compression,omitempty"`
	ShockRebound     *int     `json:"shock_rebound,omitempty"`
	SagFront         *float64 `json:"sag_front,omitempty"`
	SagRear          *float64 `json:"sag_rear,omitempty"`
	TirePressureF    *float64 `json:"tire_pressure_front,omitempty"`
	TirePressureR    *float64 `json:"tire_pressure_rear,omitempty"`
	FrontSprocket    *int     `json:"front_sprocket,omitempty"`
	RearSprocket     *int     `json:"rear_sprocket,omitempty"`
}

// Session is a recorded track outing
type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	MotorcycleID int64     `json:"motorcycle_id"`
	EventName    string    `json:"event_name"`
	Track        string    `json:"track"`
	SessionType  string    `json:"session_type"`
	SessionDate  time.Time `json:"session_date"`
	Setup        Setup     `json:"setup"`
	Notes        string    `json:"notes,omitempty"`
	LapTimeBest  *string   `json:"lap_time_best,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Plan is a purchasable subscription tier
type Plan struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Currency   string   `json:"currency"`
	Interval   string   `json:"interval"`
	UsageLimit *int     `json:"usage_limit"`
	Features   []string `json:"features"`
}

// CheckoutSession is the redirect target for a plan purchase
type CheckoutSession struct {
	URL string `json:"url"`
}

// Page wraps a paginated list response
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
