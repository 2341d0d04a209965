package services

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/testutil"
)

type teamFixture struct {
	service team.Service
	teams   *testutil.MockTeamRepository
	users   *testutil.MockUserRepository
	sender  *testutil.MockEmailSender
}

func newTeamFixture() *teamFixture {
	teams := testutil.NewMockTeamRepository()
	users := testutil.NewMockUserRepository()
	sender := testutil.NewMockEmailSender()
	service := NewTeamService(teams, users, sender, "http://localhost:5173", testLogger())
	return &teamFixture{service: service, teams: teams, users: users, sender: sender}
}

func (f *teamFixture) addUser(t *testing.T, email string, mutate func(*user.User)) *user.User {
	t.Helper()
	u := &user.User{
		Email:              email,
		SubscriptionStatus: user.StatusTrial,
		SubscriptionPlan:   user.PlanTrial,
	}
	if mutate != nil {
		mutate(u)
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return u
}

func premierActive(u *user.User) {
	end := time.Now().Add(30 * 24 * time.Hour)
	u.SubscriptionStatus = user.StatusActive
	u.SubscriptionPlan = user.PlanPremier
	u.SubscriptionEnd = &end
}

func TestTeamService_Create(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*user.User)
		wantCode string
	}{
		{
			name:   "premier active owner",
			mutate: premierActive,
		},
		{
			name:   "admin bypasses entitlement",
			mutate: func(u *user.User) { u.IsAdmin = true },
		},
		{
			name:     "trial user denied",
			mutate:   nil,
			wantCode: errors.ErrCodeEntitlementRequired,
		},
		{
			name: "premier but expired status denied",
			mutate: func(u *user.User) {
				premierActive(u)
				u.SubscriptionStatus = user.StatusExpired
			},
			wantCode: errors.ErrCodeEntitlementRequired,
		},
		{
			name: "premier active but lapsed end date denied",
			mutate: func(u *user.User) {
				premierActive(u)
				past := time.Now().Add(-time.Hour)
				u.SubscriptionEnd = &past
			},
			wantCode: errors.ErrCodeEntitlementRequired,
		},
		{
			name: "premium plan is not enough",
			mutate: func(u *user.User) {
				premierActive(u)
				u.SubscriptionPlan = user.PlanPremium
			},
			wantCode: errors.ErrCodeEntitlementRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTeamFixture()
			owner := f.addUser(t, "owner@example.com", tt.mutate)

			created, err := f.service.Create(context.Background(), owner.ID, "Garage 42", "")

			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("Create() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			if created.OwnerID != owner.ID {
				t.Errorf("Create() owner = %d, want %d", created.OwnerID, owner.ID)
			}
			if !created.IsActive {
				t.Error("Create() team should start active")
			}

			mem, err := f.teams.GetMembership(context.Background(), created.ID, owner.ID)
			if err != nil {
				t.Fatalf("owner membership missing: %v", err)
			}
			if mem.Role != team.RoleOwner || mem.Status != team.MembershipActive {
				t.Errorf("owner membership = %s/%s, want owner/active", mem.Role, mem.Status)
			}
		})
	}

	t.Run("one active team per non-admin owner", func(t *testing.T) {
		f := newTeamFixture()
		owner := f.addUser(t, "owner@example.com", premierActive)
		ctx := context.Background()

		if _, err := f.service.Create(ctx, owner.ID, "First", ""); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		_, err := f.service.Create(ctx, owner.ID, "Second", "")
		if !errors.HasCode(err, errors.ErrCodeTeamLimitExceeded) {
			t.Fatalf("Create() error = %v, want team limit exceeded", err)
		}
	})

	t.Run("admin may own several teams", func(t *testing.T) {
		f := newTeamFixture()
		admin := f.addUser(t, "admin@example.com", func(u *user.User) { u.IsAdmin = true })
		ctx := context.Background()

		if _, err := f.service.Create(ctx, admin.ID, "First", ""); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := f.service.Create(ctx, admin.ID, "Second", ""); err != nil {
			t.Fatalf("Create() second team error = %v", err)
		}
	})
}

func TestTeamService_Invite(t *testing.T) {
	f := newTeamFixture()
	ctx := context.Background()
	owner := f.addUser(t, "owner@example.com", premierActive)
	created, err := f.service.Create(ctx, owner.ID, "Garage 42", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	member := f.addUser(t, "member@example.com", nil)

	t.Run("owner invites and email is sent", func(t *testing.T) {
		result, err := f.service.Invite(ctx, owner.ID, created.ID, "invitee@example.com")
		if err != nil {
			t.Fatalf("Invite() error = %v", err)
		}
		if !result.EmailSent {
			t.Error("Invite() emailSent = false, want true")
		}
		if result.Invitation.Token == "" {
			t.Error("Invite() empty token")
		}
		if result.Invitation.Status != team.InvitationPending {
			t.Errorf("Invite() status = %s, want pending", result.Invitation.Status)
		}
		if len(f.sender.Sent) != 1 {
			t.Fatalf("Invite() sent %d emails, want 1", len(f.sender.Sent))
		}
		if f.sender.Sent[0].ToEmail != "invitee@example.com" {
			t.Errorf("Invite() email to = %s", f.sender.Sent[0].ToEmail)
		}
	})

	t.Run("email failure does not fail the invite", func(t *testing.T) {
		f.sender.SendError = errors.UpstreamUnavailable("email provider", nil)
		defer func() { f.sender.SendError = nil }()

		result, err := f.service.Invite(ctx, owner.ID, created.ID, "second@example.com")
		if err != nil {
			t.Fatalf("Invite() error = %v", err)
		}
		if result.EmailSent {
			t.Error("Invite() emailSent = true, want false")
		}
	})

	t.Run("non-member cannot invite", func(t *testing.T) {
		_, err := f.service.Invite(ctx, member.ID, created.ID, "x@example.com")
		if !errors.HasCode(err, errors.ErrCodeInsufficientRole) {
			t.Fatalf("Invite() error = %v, want insufficient role", err)
		}
	})
}

func TestTeamService_Accept(t *testing.T) {
	setup := func(t *testing.T) (*teamFixture, *team.Team, *team.Invitation) {
		t.Helper()
		f := newTeamFixture()
		ctx := context.Background()
		owner := f.addUser(t, "owner@example.com", premierActive)
		created, err := f.service.Create(ctx, owner.ID, "Garage 42", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		result, err := f.service.Invite(ctx, owner.ID, created.ID, "invitee@example.com")
		if err != nil {
			t.Fatalf("Invite() error = %v", err)
		}
		return f, created, result.Invitation
	}

	t.Run("matching email joins as member", func(t *testing.T) {
		f, created, inv := setup(t)
		invitee := f.addUser(t, "invitee@example.com", nil)

		mem, err := f.service.Accept(context.Background(), invitee.ID, invitee.Email, inv.Token)
		if err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		if mem.TeamID != created.ID || mem.Role != team.RoleMember {
			t.Errorf("Accept() membership = %+v", mem)
		}
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		f, _, inv := setup(t)
		invitee := f.addUser(t, "INVITEE@example.com", nil)

		if _, err := f.service.Accept(context.Background(), invitee.ID, invitee.Email, inv.Token); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
	})

	t.Run("wrong email is rejected", func(t *testing.T) {
		f, _, inv := setup(t)
		other := f.addUser(t, "other@example.com", nil)

		_, err := f.service.Accept(context.Background(), other.ID, other.Email, inv.Token)
		if !errors.HasCode(err, errors.ErrCodeEmailMismatch) {
			t.Fatalf("Accept() error = %v, want email mismatch", err)
		}
	})

	t.Run("expired invitation is rejected", func(t *testing.T) {
		f, _, inv := setup(t)
		invitee := f.addUser(t, "invitee@example.com", nil)
		inv.ExpiresAt = time.Now().Add(-time.Hour)

		_, err := f.service.Accept(context.Background(), invitee.ID, invitee.Email, inv.Token)
		if !errors.HasCode(err, errors.ErrCodeInvitationExpired) {
			t.Fatalf("Accept() error = %v, want invitation expired", err)
		}
	})

	t.Run("deactivated team is rejected", func(t *testing.T) {
		f, created, inv := setup(t)
		invitee := f.addUser(t, "invitee@example.com", nil)
		created.IsActive = false

		_, err := f.service.Accept(context.Background(), invitee.ID, invitee.Email, inv.Token)
		if !errors.HasCode(err, errors.ErrCodeTeamInactive) {
			t.Fatalf("Accept() error = %v, want team inactive", err)
		}
	})

	t.Run("double accept is rejected", func(t *testing.T) {
		f, _, inv := setup(t)
		invitee := f.addUser(t, "invitee@example.com", nil)
		ctx := context.Background()

		if _, err := f.service.Accept(ctx, invitee.ID, invitee.Email, inv.Token); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		_, err := f.service.Accept(ctx, invitee.ID, invitee.Email, inv.Token)
		if err == nil {
			t.Fatal("Accept() second accept should fail")
		}
	})

	t.Run("existing member cannot accept", func(t *testing.T) {
		f, created, _ := setup(t)
		invitee := f.addUser(t, "invitee@example.com", nil)
		ctx := context.Background()

		// Already a member through an earlier invitation
		first, err := f.service.Invite(ctx, created.OwnerID, created.ID, invitee.Email)
		if err != nil {
			t.Fatalf("Invite() error = %v", err)
		}
		if _, err := f.service.Accept(ctx, invitee.ID, invitee.Email, first.Invitation.Token); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}

		second, err := f.service.Invite(ctx, created.OwnerID, created.ID, invitee.Email)
		if err != nil {
			t.Fatalf("Invite() error = %v", err)
		}
		_, err = f.service.Accept(ctx, invitee.ID, invitee.Email, second.Invitation.Token)
		if !errors.HasCode(err, errors.ErrCodeAlreadyMember) {
			t.Fatalf("Accept() error = %v, want already member", err)
		}
	})
}

func TestTeamService_RemoveMember(t *testing.T) {
	type fixtureState struct {
		f        *teamFixture
		teamID   int64
		ownerID  int64
		adminID  int64
		memberID int64
	}

	setup := func(t *testing.T) fixtureState {
		t.Helper()
		f := newTeamFixture()
		ctx := context.Background()
		owner := f.addUser(t, "owner@example.com", premierActive)
		created, err := f.service.Create(ctx, owner.ID, "Garage 42", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		join := func(addr, role string) int64 {
			u := f.addUser(t, addr, nil)
			result, err := f.service.Invite(ctx, owner.ID, created.ID, addr)
			if err != nil {
				t.Fatalf("Invite() error = %v", err)
			}
			if _, err := f.service.Accept(ctx, u.ID, u.Email, result.Invitation.Token); err != nil {
				t.Fatalf("Accept() error = %v", err)
			}
			if role != team.RoleMember {
				mem, _ := f.teams.GetMembership(ctx, created.ID, u.ID)
				mem.Role = role
			}
			return u.ID
		}

		return fixtureState{
			f:        f,
			teamID:   created.ID,
			ownerID:  owner.ID,
			adminID:  join("admin@example.com", team.RoleAdmin),
			memberID: join("member@example.com", team.RoleMember),
		}
	}

	tests := []struct {
		name      string
		requester func(fixtureState) int64
		target    func(fixtureState) int64
		wantCode  string
	}{
		{
			name:      "owner removes member",
			requester: func(s fixtureState) int64 { return s.ownerID },
			target:    func(s fixtureState) int64 { return s.memberID },
		},
		{
			name:      "admin removes member",
			requester: func(s fixtureState) int64 { return s.adminID },
			target:    func(s fixtureState) int64 { return s.memberID },
		},
		{
			name:      "owner removes admin",
			requester: func(s fixtureState) int64 { return s.ownerID },
			target:    func(s fixtureState) int64 { return s.adminID },
		},
		{
			name:      "member cannot remove anyone",
			requester: func(s fixtureState) int64 { return s.memberID },
			target:    func(s fixtureState) int64 { return s.adminID },
			wantCode:  errors.ErrCodeInsufficientRole,
		},
		{
			name:      "nobody removes the owner",
			requester: func(s fixtureState) int64 { return s.adminID },
			target:    func(s fixtureState) int64 { return s.ownerID },
			wantCode:  errors.ErrCodeCannotRemoveOwner,
		},
		{
			name:      "self-removal is redirected",
			requester: func(s fixtureState) int64 { return s.adminID },
			target:    func(s fixtureState) int64 { return s.adminID },
			wantCode:  errors.ErrCodeUseLeaveTeam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setup(t)
			err := s.f.service.RemoveMember(context.Background(), tt.requester(s), s.teamID, tt.target(s))

			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("RemoveMember() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("RemoveMember() error = %v", err)
			}
		})
	}

	t.Run("admin cannot remove another admin", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		second := s.f.addUser(t, "admin2@example.com", nil)
		result, err := s.f.service.Invite(ctx, s.ownerID, s.teamID, second.Email)
		if err != nil {
			t.Fatalf("Invite() error = %v", err)
		}
		if _, err := s.f.service.Accept(ctx, second.ID, second.Email, result.Invitation.Token); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		mem, _ := s.f.teams.GetMembership(ctx, s.teamID, second.ID)
		mem.Role = team.RoleAdmin

		err = s.f.service.RemoveMember(ctx, s.adminID, s.teamID, second.ID)
		if !errors.HasCode(err, errors.ErrCodeInsufficientRole) {
			t.Fatalf("RemoveMember() error = %v, want insufficient role", err)
		}
	})
}

func TestTeamService_ValidateInvitation(t *testing.T) {
	f := newTeamFixture()
	ctx := context.Background()
	owner := f.addUser(t, "owner@example.com", premierActive)
	created, err := f.service.Create(ctx, owner.ID, "Garage 42", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	result, err := f.service.Invite(ctx, owner.ID, created.ID, "invitee@example.com")
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		inv, err := f.service.ValidateInvitation(ctx, result.Invitation.Token)
		if err != nil {
			t.Fatalf("ValidateInvitation() error = %v", err)
		}
		if inv.Email != "invitee@example.com" {
			t.Errorf("ValidateInvitation() email = %s", inv.Email)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		if _, err := f.service.ValidateInvitation(ctx, "no-such-token"); !errors.IsNotFound(err) {
			t.Errorf("ValidateInvitation() error = %v, want not found", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		result.Invitation.ExpiresAt = time.Now().Add(-time.Minute)
		_, err := f.service.ValidateInvitation(ctx, result.Invitation.Token)
		if !errors.HasCode(err, errors.ErrCodeInvitationExpired) {
			t.Errorf("ValidateInvitation() error = %v, want invitation expired", err)
		}
	})
}
