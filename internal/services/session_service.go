package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/domain/session"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/entitlement"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/metrics"
)

// SessionService implements session.Service
type SessionService struct {
	repo        session.Repository
	users       user.Service
	motorcycles motorcycle.Service
	logger      *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repo session.Repository, users user.Service, motorcycles motorcycle.Service, log *logger.Logger) session.Service {
	return &SessionService{
		repo:        repo,
		users:       users,
		motorcycles: motorcycles,
		logger:      log,
	}
}

// Save persists a session after the entitlement gate. The subscription check
// runs before the insert; the usage increment runs after it and never blocks
// the response.
func (s *SessionService) Save(ctx context.Context, requesterID int64, sess *session.Session) (*session.Session, error) {
	u, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	snap := entitlement.Evaluate(u.Entitlement(), time.Now())
	if !snap.IsActive {
		metrics.RecordEntitlementDenial("subscription_inactive")
		return nil, errors.EntitlementRequired("An active subscription or trial is required to save sessions").
			WithDetails(map[string]interface{}{
				"subscriptionStatus": map[string]interface{}{
					"isActive":      snap.IsActive,
					"daysRemaining": snap.DaysRemaining,
					"status":        snap.Status,
				},
			})
	}
	if snap.HasReachedUsageLimit {
		metrics.RecordEntitlementDenial("usage_limit")
		return nil, errors.UsageLimitReached("You have reached your plan's session limit").
			WithDetails(map[string]interface{}{
				"usageCount": snap.UsageCount,
				"usageLimit": snap.UsageLimit,
			})
	}

	if _, err := s.motorcycles.Get(ctx, requesterID, sess.MotorcycleID); err != nil {
		return nil, err
	}

	sess.UserID = requesterID
	if err := s.repo.Create(ctx, sess); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save session")
		return nil, err
	}

	metrics.RecordSessionSaved()
	if !u.IsAdmin {
		s.users.RecordUsage(ctx, requesterID)
	}

	return sess, nil
}

// Get retrieves a session owned by the requester
func (s *SessionService) Get(ctx context.Context, requesterID, id int64) (*session.Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.UserID != requesterID {
		return nil, errors.NotFound("Session")
	}
	return sess, nil
}

// List retrieves the requester's sessions with pagination
func (s *SessionService) List(ctx context.Context, requesterID int64, limit, offset int) ([]*session.Session, int64, error) {
	return s.repo.ListByUser(ctx, requesterID, limit, offset)
}

// ListByMotorcycle retrieves sessions for a motorcycle the requester may view
func (s *SessionService) ListByMotorcycle(ctx context.Context, requesterID, motorcycleID int64, limit, offset int) ([]*session.Session, int64, error) {
	if _, err := s.motorcycles.Get(ctx, requesterID, motorcycleID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByMotorcycle(ctx, motorcycleID, limit, offset)
}

// Update updates a session owned by the requester
func (s *SessionService) Update(ctx context.Context, requesterID int64, sess *session.Session) error {
	existing, err := s.repo.GetByID(ctx, sess.ID)
	if err != nil {
		return err
	}
	if existing.UserID != requesterID {
		return errors.NotFound("Session")
	}

	sess.UserID = existing.UserID
	return s.repo.Update(ctx, sess)
}

// Delete deletes a session owned by the requester
func (s *SessionService) Delete(ctx context.Context, requesterID, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != requesterID {
		return errors.NotFound("Session")
	}
	return s.repo.Delete(ctx, id)
}
