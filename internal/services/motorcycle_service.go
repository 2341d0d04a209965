package services

import (
	"context"

	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
)

// MotorcycleService implements motorcycle.Service
type MotorcycleService struct {
	repo   motorcycle.Repository
	teams  team.Repository
	logger *logger.Logger
}

// NewMotorcycleService creates a new motorcycle service
func NewMotorcycleService(repo motorcycle.Repository, teams team.Repository, log *logger.Logger) motorcycle.Service {
	return &MotorcycleService{
		repo:   repo,
		teams:  teams,
		logger: log,
	}
}

// Create creates a motorcycle owned by the requester, or by one of the
// requester's teams when a team id is given
func (s *MotorcycleService) Create(ctx context.Context, requesterID int64, m *motorcycle.Motorcycle) (*motorcycle.Motorcycle, error) {
	if m.TeamID != nil {
		ok, err := s.teams.HasActiveMembership(ctx, *m.TeamID, requesterID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Forbidden("You are not a member of this team")
		}
		m.UserID = nil
	} else {
		m.UserID = &requesterID
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create motorcycle")
		return nil, err
	}

	return m, nil
}

// Get retrieves a motorcycle visible to the requester
func (s *MotorcycleService) Get(ctx context.Context, requesterID, id int64) (*motorcycle.Motorcycle, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.CanView(ctx, requesterID, m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("Motorcycle")
	}

	return m, nil
}

// List retrieves all motorcycles visible to the requester
func (s *MotorcycleService) List(ctx context.Context, requesterID int64) ([]*motorcycle.Motorcycle, error) {
	return s.repo.ListVisible(ctx, requesterID)
}

// Update updates a motorcycle editable by the requester. Ownership fields
// are not reassignable through this path.
func (s *MotorcycleService) Update(ctx context.Context, requesterID int64, m *motorcycle.Motorcycle) error {
	existing, err := s.repo.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}

	ok, err := s.CanEdit(ctx, requesterID, existing)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Forbidden("You cannot modify this motorcycle")
	}

	m.UserID = existing.UserID
	m.TeamID = existing.TeamID
	return s.repo.Update(ctx, m)
}

// Delete deletes a motorcycle editable by the requester
func (s *MotorcycleService) Delete(ctx context.Context, requesterID, id int64) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.CanEdit(ctx, requesterID, m)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Forbidden("You cannot modify this motorcycle")
	}

	return s.repo.Delete(ctx, id)
}

// CanView reports whether the requester may read the motorcycle: the
// individual owner, an active member of the owning team, or anyone for
// unowned legacy rows
func (s *MotorcycleService) CanView(ctx context.Context, requesterID int64, m *motorcycle.Motorcycle) (bool, error) {
	if m.IsUnowned() {
		return true, nil
	}
	if m.UserID != nil && *m.UserID == requesterID {
		return true, nil
	}
	if m.TeamID != nil {
		return s.teams.HasActiveMembership(ctx, *m.TeamID, requesterID)
	}
	return false, nil
}

// CanEdit reports whether the requester may modify the motorcycle. Team
// bikes are editable by every active member regardless of role. Unowned
// legacy rows are visible to everyone but editable by no one.
func (s *MotorcycleService) CanEdit(ctx context.Context, requesterID int64, m *motorcycle.Motorcycle) (bool, error) {
	if m.UserID != nil && *m.UserID == requesterID {
		return true, nil
	}
	if m.TeamID != nil {
		return s.teams.HasActiveMembership(ctx, *m.TeamID, requesterID)
	}
	return false, nil
}
