package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TeamService handles team-related API calls
type TeamService struct {
	client *Client
}

// CreateTeamRequest represents a request to create a team
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InviteMemberRequest represents a request to invite a member
type InviteMemberRequest struct {
	Email string `json:"email"`
}

// List retrieves the teams the caller belongs to
func (s *TeamService) List(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Create creates a team owned by the caller
func (s *TeamService) Create(ctx context.Context, req CreateTeamRequest) (*Team, error) {
	var team Team
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/teams", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Get retrieves a team by ID
func (s *TeamService) Get(ctx context.Context, teamID int64) (*Team, error) {
	var team Team
	path := fmt.Sprintf("/api/v1/teams/%d", teamID)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Members retrieves the memberships of a team
func (s *TeamService) Members(ctx context.Context, teamID int64) ([]Membership, error) {
	var members []Membership
	path := fmt.Sprintf("/api/v1/teams/%d/members", teamID)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// RemoveMember removes a member from a team
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID int64) error {
	path := fmt.Sprintf("/api/v1/teams/%d/members/%d", teamID, userID)
	return s.client.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// Invite invites a user by email
func (s *TeamService) Invite(ctx context.Context, teamID int64, email string) (*Invitation, error) {
	var invitation Invitation
	path := fmt.Sprintf("/api/v1/teams/%d/invitations", teamID)
	if err := s.client.doRequest(ctx, http.MethodPost, path, InviteMemberRequest{Email: email}, &invitation); err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Invitations retrieves the pending invitations of a team
func (s *TeamService) Invitations(ctx context.Context, teamID int64) ([]Invitation, error) {
	var invitations []Invitation
	path := fmt.Sprintf("/api/v1/teams/%d/invitations", teamID)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &invitations); err != nil {
		return nil, err
	}
	return invitations, nil
}

// CancelInvitation withdraws a pending invitation
func (s *TeamService) CancelInvitation(ctx context.Context, teamID, invitationID int64) error {
	path := fmt.Sprintf("/api/v1/teams/%d/invitations/%d", teamID, invitationID)
	return s.client.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// ValidateInvitation previews a pending invitation by token
func (s *TeamService) ValidateInvitation(ctx context.Context, token string) (*Invitation, error) {
	var invitation Invitation
	path := "/api/v1/invitations/validate?token=" + url.QueryEscape(token)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &invitation); err != nil {
		return nil, err
	}
	return &invitation, nil
}

// AcceptInvitation joins the caller to the inviting team
func (s *TeamService) AcceptInvitation(ctx context.Context, token string) (*Membership, error) {
	var membership Membership
	body := map[string]string{"token": token}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/invitations/accept", body, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}
