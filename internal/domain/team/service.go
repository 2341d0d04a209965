package team

import "context"

// InviteResult reports the created invitation plus whether the email left
// the building. A failed send never fails the invite.
type InviteResult struct {
	Invitation *Invitation
	EmailSent  bool
}

// Service defines the interface for team business logic
type Service interface {
	// Create creates a team owned by the requester. Requires the premier
	// entitlement (or admin) and at most one active team per non-admin owner.
	Create(ctx context.Context, requesterID int64, name, description string) (*Team, error)

	// Get retrieves a team visible to the requester
	Get(ctx context.Context, requesterID, teamID int64) (*Team, error)

	// ListMine retrieves teams where the requester is an active member
	ListMine(ctx context.Context, requesterID int64) ([]*Team, error)

	// Invite creates an invitation and emails it. Requester must hold the
	// owner or admin role.
	Invite(ctx context.Context, requesterID, teamID int64, email string) (*InviteResult, error)

	// CancelInvitation deletes a pending invitation. Requester must hold the
	// owner or admin role.
	CancelInvitation(ctx context.Context, requesterID, teamID, invitationID int64) error

	// ValidateInvitation looks up a pending invitation by token for the
	// public pre-acceptance page
	ValidateInvitation(ctx context.Context, token string) (*Invitation, error)

	// Accept consumes an invitation for the authenticated user
	Accept(ctx context.Context, requesterID int64, requesterEmail, token string) (*Membership, error)

	// RemoveMember removes a member from the team, subject to role rules
	RemoveMember(ctx context.Context, requesterID, teamID, targetUserID int64) error

	// ListMembers retrieves the memberships of a team the requester belongs to
	ListMembers(ctx context.Context, requesterID, teamID int64) ([]*Membership, error)

	// ListInvitations retrieves pending invitations of a team. Requester must
	// hold the owner or admin role.
	ListInvitations(ctx context.Context, requesterID, teamID int64) ([]*Invitation, error)
}
