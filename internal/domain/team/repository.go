package team

import "context"

// Repository defines the interface for team data access
type Repository interface {
	// CreateWithOwner creates the team and its owner membership in one
	// transaction
	CreateWithOwner(ctx context.Context, t *Team) error

	// GetByID retrieves a team by ID
	GetByID(ctx context.Context, id int64) (*Team, error)

	// CountActiveOwnedBy counts active teams owned by the user
	CountActiveOwnedBy(ctx context.Context, ownerID int64) (int, error)

	// ListByUser retrieves teams where the user holds an active membership
	ListByUser(ctx context.Context, userID int64) ([]*Team, error)

	// Update updates a team
	Update(ctx context.Context, t *Team) error

	// GetMembership retrieves the membership row for (team, user), any status
	GetMembership(ctx context.Context, teamID, userID int64) (*Membership, error)

	// ListMembers retrieves memberships of a team with user details
	ListMembers(ctx context.Context, teamID int64) ([]*Membership, error)

	// DeleteMembership removes a membership row
	DeleteMembership(ctx context.Context, membershipID int64) error

	// HasActiveMembership reports whether the user is an active member
	HasActiveMembership(ctx context.Context, teamID, userID int64) (bool, error)

	// CreateInvitation inserts a pending invitation, replacing any previous
	// pending invitation for the same (team, email)
	CreateInvitation(ctx context.Context, inv *Invitation) error

	// GetInvitationByToken retrieves an invitation by its token
	GetInvitationByToken(ctx context.Context, token string) (*Invitation, error)

	// GetInvitationByID retrieves an invitation by ID
	GetInvitationByID(ctx context.Context, id int64) (*Invitation, error)

	// ListInvitations retrieves pending invitations of a team
	ListInvitations(ctx context.Context, teamID int64) ([]*Invitation, error)

	// DeleteInvitation removes an invitation row
	DeleteInvitation(ctx context.Context, id int64) error

	// AcceptInvitation atomically marks the invitation accepted and inserts
	// an active membership for the user. Rolls back entirely on any failure.
	AcceptInvitation(ctx context.Context, invitationID int64, userID int64) error
}
