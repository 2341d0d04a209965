package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/email"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/metrics"
)

// TeamService implements team.Service
type TeamService struct {
	repo        team.Repository
	users       user.Repository
	sender      email.Sender
	frontendURL string
	logger      *logger.Logger
}

// NewTeamService creates a new team service
func NewTeamService(repo team.Repository, users user.Repository, sender email.Sender, frontendURL string, log *logger.Logger) team.Service {
	return &TeamService{
		repo:        repo,
		users:       users,
		sender:      sender,
		frontendURL: frontendURL,
		logger:      log,
	}
}

// Create creates a team owned by the requester. Requires an active premier
// subscription, or the administrative flag. Non-admin owners are capped at
// one active team.
func (s *TeamService) Create(ctx context.Context, requesterID int64, name, description string) (*team.Team, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin {
		entitled := requester.SubscriptionPlan == user.PlanPremier &&
			requester.SubscriptionStatus == user.StatusActive &&
			requester.SubscriptionEnd != nil &&
			!requester.SubscriptionEnd.Before(time.Now())
		if !entitled {
			metrics.RecordEntitlementDenial("team_create")
			return nil, errors.EntitlementRequired("An active Premier subscription is required to create a team")
		}

		count, err := s.repo.CountActiveOwnedBy(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if count >= 1 {
			return nil, errors.TeamLimitExceeded("You already own an active team")
		}
	}

	t := &team.Team{
		Name:             name,
		Description:      description,
		OwnerID:          requesterID,
		SubscriptionPlan: user.PlanPremier,
		IsActive:         true,
	}

	if err := s.repo.CreateWithOwner(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create team")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id":  t.ID,
		"owner_id": requesterID,
	}).Info("Team created")

	return t, nil
}

// Get retrieves a team the requester belongs to
func (s *TeamService) Get(ctx context.Context, requesterID, teamID int64) (*team.Team, error) {
	if err := s.requireActiveMembership(ctx, requesterID, teamID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, teamID)
}

// ListMine retrieves teams where the requester is an active member
func (s *TeamService) ListMine(ctx context.Context, requesterID int64) ([]*team.Team, error) {
	return s.repo.ListByUser(ctx, requesterID)
}

// Invite creates an invitation and emails it to the invitee
func (s *TeamService) Invite(ctx context.Context, requesterID, teamID int64, inviteeEmail string) (*team.InviteResult, error) {
	if err := s.requireManagerRole(ctx, requesterID, teamID); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, errors.TeamInactive()
	}

	inv := &team.Invitation{
		TeamID:    teamID,
		Email:     inviteeEmail,
		Token:     uuid.NewString(),
		InvitedBy: requesterID,
		Status:    team.InvitationPending,
		ExpiresAt: time.Now().Add(team.InvitationTTL),
	}

	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create invitation")
		return nil, err
	}
	inv.TeamName = t.Name

	result := &team.InviteResult{Invitation: inv}

	inviter, err := s.users.GetByID(ctx, requesterID)
	inviterName := "A teammate"
	if err == nil {
		if inviter.Name != "" {
			inviterName = inviter.Name
		} else {
			inviterName = inviter.Email
		}
	}

	acceptURL := fmt.Sprintf("%s/invitations/accept?token=%s", s.frontendURL, inv.Token)
	msg := email.InvitationMessage(inviteeEmail, t.Name, inviterName, acceptURL)
	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.RecordEmail("invitation", "error")
		s.logger.WithFields(map[string]interface{}{
			"team_id": teamID,
			"email":   inviteeEmail,
		}).WithError(err).Warn("Failed to send invitation email")
	} else {
		metrics.RecordEmail("invitation", "sent")
		result.EmailSent = true
	}

	return result, nil
}

// CancelInvitation deletes a pending invitation
func (s *TeamService) CancelInvitation(ctx context.Context, requesterID, teamID, invitationID int64) error {
	if err := s.requireManagerRole(ctx, requesterID, teamID); err != nil {
		return err
	}

	inv, err := s.repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.TeamID != teamID {
		return errors.NotFound("Invitation")
	}

	return s.repo.DeleteInvitation(ctx, invitationID)
}

// ValidateInvitation looks up a pending invitation by token. Used by the
// public pre-acceptance page, so it reports expiry and team state without
// requiring authentication.
func (s *TeamService) ValidateInvitation(ctx context.Context, token string) (*team.Invitation, error) {
	inv, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != team.InvitationPending {
		return nil, errors.NotFound("Invitation")
	}
	if inv.IsExpired(time.Now()) {
		return nil, errors.InvitationExpired()
	}

	t, err := s.repo.GetByID(ctx, inv.TeamID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, errors.TeamInactive()
	}

	return inv, nil
}

// Accept consumes an invitation for the authenticated user. The invited email
// must match the requester's, compared case-insensitively.
func (s *TeamService) Accept(ctx context.Context, requesterID int64, requesterEmail, token string) (*team.Membership, error) {
	inv, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != team.InvitationPending {
		return nil, errors.NotFound("Invitation")
	}
	if !strings.EqualFold(inv.Email, requesterEmail) {
		return nil, errors.EmailMismatch()
	}
	if inv.IsExpired(time.Now()) {
		return nil, errors.InvitationExpired()
	}

	t, err := s.repo.GetByID(ctx, inv.TeamID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, errors.TeamInactive()
	}

	if _, err := s.repo.GetMembership(ctx, inv.TeamID, requesterID); err == nil {
		return nil, errors.AlreadyMember()
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.AcceptInvitation(ctx, inv.ID, requesterID); err != nil {
		s.logger.ErrorWithErr(err, "Failed to accept invitation")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id": inv.TeamID,
		"user_id": requesterID,
	}).Info("Invitation accepted")

	return s.repo.GetMembership(ctx, inv.TeamID, requesterID)
}

// RemoveMember removes a member from the team. The owner can never be
// removed, admins cannot remove other admins, and self-removal goes through
// the leave-team flow instead.
func (s *TeamService) RemoveMember(ctx context.Context, requesterID, teamID, targetUserID int64) error {
	requester, err := s.repo.GetMembership(ctx, teamID, requesterID)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.InsufficientRole("You are not a member of this team")
		}
		return err
	}
	if !team.CanManage(requester.Role) {
		return errors.InsufficientRole("Only the team owner or an admin can remove members")
	}

	if targetUserID == requesterID {
		return errors.UseLeaveTeam()
	}

	target, err := s.repo.GetMembership(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if target.Role == team.RoleOwner {
		return errors.CannotRemoveOwner()
	}
	if target.Role == team.RoleAdmin && requester.Role != team.RoleOwner {
		return errors.InsufficientRole("Only the team owner can remove an admin")
	}

	if err := s.repo.DeleteMembership(ctx, target.ID); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id":    teamID,
		"user_id":    targetUserID,
		"removed_by": requesterID,
	}).Info("Member removed")

	return nil
}

// ListMembers retrieves the memberships of a team the requester belongs to
func (s *TeamService) ListMembers(ctx context.Context, requesterID, teamID int64) ([]*team.Membership, error) {
	if err := s.requireActiveMembership(ctx, requesterID, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, teamID)
}

// ListInvitations retrieves pending invitations of a team
func (s *TeamService) ListInvitations(ctx context.Context, requesterID, teamID int64) ([]*team.Invitation, error) {
	if err := s.requireManagerRole(ctx, requesterID, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListInvitations(ctx, teamID)
}

func (s *TeamService) requireActiveMembership(ctx context.Context, userID, teamID int64) error {
	ok, err := s.repo.HasActiveMembership(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Forbidden("You are not a member of this team")
	}
	return nil
}

func (s *TeamService) requireManagerRole(ctx context.Context, userID, teamID int64) error {
	m, err := s.repo.GetMembership(ctx, teamID, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.InsufficientRole("You are not a member of this team")
		}
		return err
	}
	if m.Status != team.MembershipActive || !team.CanManage(m.Role) {
		return errors.InsufficientRole("Only the team owner or an admin can do this")
	}
	return nil
}
