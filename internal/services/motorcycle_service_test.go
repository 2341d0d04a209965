package services

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/testutil"
)

type motorcycleFixture struct {
	service motorcycle.Service
	repo    *testutil.MockMotorcycleRepository
	teams   *testutil.MockTeamRepository
}

func newMotorcycleFixture() *motorcycleFixture {
	repo := testutil.NewMockMotorcycleRepository()
	teams := testutil.NewMockTeamRepository()
	return &motorcycleFixture{
		service: NewMotorcycleService(repo, teams, testLogger()),
		repo:    repo,
		teams:   teams,
	}
}

// addMembership makes userID an active member of teamID in both mocks
func (f *motorcycleFixture) addMembership(teamID, userID int64) {
	mem := &team.Membership{
		ID:     f.teams.NextID,
		TeamID: teamID,
		UserID: userID,
		Role:   team.RoleMember,
		Status: team.MembershipActive,
	}
	f.teams.NextID++
	f.teams.Memberships[mem.ID] = mem
	f.repo.Memberships[teamID] = append(f.repo.Memberships[teamID], userID)
}

func (f *motorcycleFixture) addBike(t *testing.T, userID, teamID *int64) *motorcycle.Motorcycle {
	t.Helper()
	m := &motorcycle.Motorcycle{
		UserID: userID,
		TeamID: teamID,
		Make:   "Yamaha",
		Model:  "R6",
		Year:   2019,
	}
	if err := f.repo.Create(context.Background(), m); err != nil {
		t.Fatalf("seeding motorcycle failed: %v", err)
	}
	return m
}

func int64Ptr(v int64) *int64 { return &v }

func TestMotorcycleService_Create(t *testing.T) {
	t.Run("personal bike defaults to requester ownership", func(t *testing.T) {
		f := newMotorcycleFixture()

		created, err := f.service.Create(context.Background(), 7, &motorcycle.Motorcycle{Make: "Ducati", Model: "V2"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.UserID == nil || *created.UserID != 7 {
			t.Errorf("Create() userID = %v, want 7", created.UserID)
		}
		if created.TeamID != nil {
			t.Errorf("Create() teamID = %v, want nil", created.TeamID)
		}
	})

	t.Run("team bike requires active membership", func(t *testing.T) {
		f := newMotorcycleFixture()
		f.addMembership(1, 7)

		created, err := f.service.Create(context.Background(), 7, &motorcycle.Motorcycle{
			Make:   "Aprilia",
			Model:  "RSV4",
			TeamID: int64Ptr(1),
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.UserID != nil {
			t.Errorf("Create() userID = %v, want nil for team bike", created.UserID)
		}
		if created.TeamID == nil || *created.TeamID != 1 {
			t.Errorf("Create() teamID = %v, want 1", created.TeamID)
		}
	})

	t.Run("non-member cannot create a team bike", func(t *testing.T) {
		f := newMotorcycleFixture()

		_, err := f.service.Create(context.Background(), 7, &motorcycle.Motorcycle{
			Make:   "Aprilia",
			Model:  "RSV4",
			TeamID: int64Ptr(1),
		})
		if !errors.HasCode(err, errors.ErrCodeForbidden) {
			t.Fatalf("Create() error = %v, want forbidden", err)
		}
	})
}

func TestMotorcycleService_Get(t *testing.T) {
	f := newMotorcycleFixture()
	f.addMembership(1, 20)
	ctx := context.Background()

	personal := f.addBike(t, int64Ptr(10), nil)
	teamBike := f.addBike(t, nil, int64Ptr(1))
	unowned := f.addBike(t, nil, nil)

	tests := []struct {
		name        string
		requesterID int64
		bikeID      int64
		wantVisible bool
	}{
		{"owner sees own bike", 10, personal.ID, true},
		{"stranger does not see a personal bike", 20, personal.ID, false},
		{"team member sees the team bike", 20, teamBike.ID, true},
		{"non-member does not see the team bike", 10, teamBike.ID, false},
		{"anyone sees an unowned bike", 99, unowned.ID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.service.Get(ctx, tt.requesterID, tt.bikeID)
			if tt.wantVisible {
				if err != nil {
					t.Fatalf("Get() error = %v", err)
				}
				if got.ID != tt.bikeID {
					t.Errorf("Get() id = %d, want %d", got.ID, tt.bikeID)
				}
				return
			}
			if !errors.IsNotFound(err) {
				t.Fatalf("Get() error = %v, want not found", err)
			}
		})
	}
}

func TestMotorcycleService_List(t *testing.T) {
	f := newMotorcycleFixture()
	f.addMembership(1, 20)
	ctx := context.Background()

	f.addBike(t, int64Ptr(10), nil)
	f.addBike(t, nil, int64Ptr(1))
	f.addBike(t, nil, nil)

	got, err := f.service.List(ctx, 20)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// Team bike plus the unowned row, not the stranger's personal bike
	if len(got) != 2 {
		t.Fatalf("List() returned %d motorcycles, want 2", len(got))
	}
}

func TestMotorcycleService_Update(t *testing.T) {
	t.Run("owner updates and ownership is preserved", func(t *testing.T) {
		f := newMotorcycleFixture()
		bike := f.addBike(t, int64Ptr(10), nil)

		err := f.service.Update(context.Background(), 10, &motorcycle.Motorcycle{
			ID:     bike.ID,
			Make:   "Yamaha",
			Model:  "R1",
			TeamID: int64Ptr(55),
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		stored := f.repo.Motorcycles[bike.ID]
		if stored.Model != "R1" {
			t.Errorf("Update() model = %s, want R1", stored.Model)
		}
		if stored.UserID == nil || *stored.UserID != 10 {
			t.Errorf("Update() userID = %v, want 10", stored.UserID)
		}
		if stored.TeamID != nil {
			t.Errorf("Update() teamID = %v, ownership must not be reassignable", stored.TeamID)
		}
	})

	t.Run("team member may update the team bike", func(t *testing.T) {
		f := newMotorcycleFixture()
		f.addMembership(1, 20)
		bike := f.addBike(t, nil, int64Ptr(1))

		err := f.service.Update(context.Background(), 20, &motorcycle.Motorcycle{ID: bike.ID, Make: "Honda", Model: "CBR"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	})

	t.Run("unowned bikes are read-only", func(t *testing.T) {
		f := newMotorcycleFixture()
		bike := f.addBike(t, nil, nil)

		err := f.service.Update(context.Background(), 10, &motorcycle.Motorcycle{ID: bike.ID, Make: "Honda", Model: "CBR"})
		if !errors.HasCode(err, errors.ErrCodeForbidden) {
			t.Fatalf("Update() error = %v, want forbidden", err)
		}
	})

	t.Run("stranger cannot update a personal bike", func(t *testing.T) {
		f := newMotorcycleFixture()
		bike := f.addBike(t, int64Ptr(10), nil)

		err := f.service.Update(context.Background(), 20, &motorcycle.Motorcycle{ID: bike.ID, Make: "Honda", Model: "CBR"})
		if !errors.HasCode(err, errors.ErrCodeForbidden) {
			t.Fatalf("Update() error = %v, want forbidden", err)
		}
	})
}

func TestMotorcycleService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		userID      *int64
		teamID      *int64
		requesterID int64
		memberOf    int64
		wantErr     bool
	}{
		{"owner deletes own bike", int64Ptr(10), nil, 10, 0, false},
		{"team member deletes team bike", nil, int64Ptr(1), 20, 1, false},
		{"stranger cannot delete", int64Ptr(10), nil, 20, 0, true},
		{"unowned bike cannot be deleted", nil, nil, 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMotorcycleFixture()
			if tt.memberOf != 0 {
				f.addMembership(tt.memberOf, tt.requesterID)
			}
			bike := f.addBike(t, tt.userID, tt.teamID)

			err := f.service.Delete(context.Background(), tt.requesterID, bike.ID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Delete() expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, ok := f.repo.Motorcycles[bike.ID]; ok {
				t.Error("Delete() motorcycle still present")
			}
		})
	}
}
