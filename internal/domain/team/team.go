package team

import "time"

// Team represents a race team sharing motorcycles and setups
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

	// Denormalized for member listings
	UserEmail string `json:"user_email,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// Invitation is a token-based, expiring invite to join a team
type Invitation struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	InvitedBy int64     `json:"invited_by"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized for public invitation validation
	TeamName string `json:"team_name,omitempty"`
}

// Membership roles, ordered by privilege
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership statuses
const (
	MembershipPending = "pending"
	MembershipActive  = "active"
)

// Invitation statuses
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

// InvitationTTL is the validity window of a fresh invitation
const InvitationTTL = 7 * 24 * time.Hour

// IsExpired reports whether the invitation has lapsed at the given time
func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// CanManage reports whether a role may invite, cancel invitations, or remove
// members
func CanManage(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}
