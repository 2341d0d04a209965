package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/testutil"
)

func seedTeam(t *testing.T, db *sql.DB, repo team.Repository, ownerEmail string) (*team.Team, *user.User) {
	t.Helper()
	owner := seedUser(t, NewUserRepository(db), ownerEmail, nil)
	tm := &team.Team{
		Name:             "Garage 42",
		OwnerID:          owner.ID,
		SubscriptionPlan: user.PlanPremier,
		IsActive:         true,
	}
	if err := repo.CreateWithOwner(context.Background(), tm); err != nil {
		t.Fatalf("CreateWithOwner() error = %v", err)
	}
	return tm, owner
}

func TestTeamRepository_CreateWithOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	tm, owner := seedTeam(t, db, repo, "owner@example.com")
	if tm.ID == 0 {
		t.Fatal("CreateWithOwner() did not assign an id")
	}

	got, err := repo.GetByID(ctx, tm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Garage 42" || got.OwnerID != owner.ID || !got.IsActive {
		t.Errorf("GetByID() = %+v", got)
	}

	mem, err := repo.GetMembership(ctx, tm.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetMembership() error = %v", err)
	}
	if mem.Role != team.RoleOwner || mem.Status != team.MembershipActive {
		t.Errorf("owner membership = %s/%s, want owner/active", mem.Role, mem.Status)
	}

	count, err := repo.CountActiveOwnedBy(ctx, owner.ID)
	if err != nil {
		t.Fatalf("CountActiveOwnedBy() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountActiveOwnedBy() = %d, want 1", count)
	}
}

func TestTeamRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	tm, owner := seedTeam(t, db, repo, "owner@example.com")
	stranger := seedUser(t, NewUserRepository(db), "stranger@example.com", nil)

	teams, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(teams) != 1 || teams[0].ID != tm.ID {
		t.Errorf("ListByUser() = %v", teams)
	}

	teams, err = repo.ListByUser(ctx, stranger.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("ListByUser() stranger got %d teams, want 0", len(teams))
	}
}

func TestTeamRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	tm, owner := seedTeam(t, db, repo, "owner@example.com")
	tm.Description = "Club racing"
	tm.IsActive = false
	if err := repo.Update(ctx, tm); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, tm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Description != "Club racing" || got.IsActive {
		t.Errorf("Update() = %+v", got)
	}

	count, err := repo.CountActiveOwnedBy(ctx, owner.ID)
	if err != nil {
		t.Fatalf("CountActiveOwnedBy() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountActiveOwnedBy() after deactivation = %d, want 0", count)
	}
}

func TestTeamRepository_Invitations(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()
	tm, owner := seedTeam(t, db, repo, "owner@example.com")

	newInvite := func(token string) *team.Invitation {
		return &team.Invitation{
			TeamID:    tm.ID,
			Email:     "invitee@example.com",
			Token:     token,
			InvitedBy: owner.ID,
			Status:    team.InvitationPending,
			ExpiresAt: time.Now().Add(team.InvitationTTL).Truncate(time.Second),
		}
	}

	first := newInvite("token-1")
	if err := repo.CreateInvitation(ctx, first); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	got, err := repo.GetInvitationByToken(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetInvitationByToken() error = %v", err)
	}
	if got.TeamName != "Garage 42" {
		t.Errorf("GetInvitationByToken() teamName = %s", got.TeamName)
	}
	if !got.ExpiresAt.Equal(first.ExpiresAt) {
		t.Errorf("GetInvitationByToken() expiresAt = %v, want %v", got.ExpiresAt, first.ExpiresAt)
	}

	// A second pending invitation for the same email replaces the first
	second := newInvite("token-2")
	if err := repo.CreateInvitation(ctx, second); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}
	if _, err := repo.GetInvitationByToken(ctx, "token-1"); !errors.IsNotFound(err) {
		t.Errorf("GetInvitationByToken() error = %v, want not found after replacement", err)
	}

	pending, err := repo.ListInvitations(ctx, tm.ID)
	if err != nil {
		t.Fatalf("ListInvitations() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Token != "token-2" {
		t.Errorf("ListInvitations() = %v", pending)
	}

	if err := repo.DeleteInvitation(ctx, second.ID); err != nil {
		t.Fatalf("DeleteInvitation() error = %v", err)
	}
	if err := repo.DeleteInvitation(ctx, second.ID); !errors.IsNotFound(err) {
		t.Errorf("DeleteInvitation() error = %v, want not found", err)
	}
}

func TestTeamRepository_AcceptInvitation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()
	tm, owner := seedTeam(t, db, repo, "owner@example.com")
	invitee := seedUser(t, NewUserRepository(db), "invitee@example.com", nil)

	inv := &team.Invitation{
		TeamID:    tm.ID,
		Email:     invitee.Email,
		Token:     "token-1",
		InvitedBy: owner.ID,
		Status:    team.InvitationPending,
		ExpiresAt: time.Now().Add(team.InvitationTTL),
	}
	if err := repo.CreateInvitation(ctx, inv); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}

	if err := repo.AcceptInvitation(ctx, inv.ID, invitee.ID); err != nil {
		t.Fatalf("AcceptInvitation() error = %v", err)
	}

	mem, err := repo.GetMembership(ctx, tm.ID, invitee.ID)
	if err != nil {
		t.Fatalf("GetMembership() error = %v", err)
	}
	if mem.Role != team.RoleMember || mem.Status != team.MembershipActive {
		t.Errorf("membership = %s/%s, want member/active", mem.Role, mem.Status)
	}

	ok, err := repo.HasActiveMembership(ctx, tm.ID, invitee.ID)
	if err != nil {
		t.Fatalf("HasActiveMembership() error = %v", err)
	}
	if !ok {
		t.Error("HasActiveMembership() = false, want true")
	}

	// The status flip guards against double acceptance
	if err := repo.AcceptInvitation(ctx, inv.ID, invitee.ID); !errors.IsNotFound(err) {
		t.Errorf("AcceptInvitation() second accept error = %v, want not found", err)
	}
}

func TestTeamRepository_Members(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()
	tm, owner := seedTeam(t, db, repo, "owner@example.com")
	invitee := seedUser(t, NewUserRepository(db), "invitee@example.com", func(u *user.User) {
		u.Name = "Jo"
	})

	inv := &team.Invitation{
		TeamID:    tm.ID,
		Email:     invitee.Email,
		Token:     "token-1",
		InvitedBy: owner.ID,
		Status:    team.InvitationPending,
		ExpiresAt: time.Now().Add(team.InvitationTTL),
	}
	if err := repo.CreateInvitation(ctx, inv); err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}
	if err := repo.AcceptInvitation(ctx, inv.ID, invitee.ID); err != nil {
		t.Fatalf("AcceptInvitation() error = %v", err)
	}

	members, err := repo.ListMembers(ctx, tm.ID)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("ListMembers() = %d members, want 2", len(members))
	}
	if members[1].UserEmail != "invitee@example.com" || members[1].UserName != "Jo" {
		t.Errorf("ListMembers() member = %+v", members[1])
	}

	if err := repo.DeleteMembership(ctx, members[1].ID); err != nil {
		t.Fatalf("DeleteMembership() error = %v", err)
	}
	if _, err := repo.GetMembership(ctx, tm.ID, invitee.ID); !errors.IsNotFound(err) {
		t.Errorf("GetMembership() error = %v, want not found after removal", err)
	}
}
