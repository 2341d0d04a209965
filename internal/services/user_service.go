package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/entitlement"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/metrics"
)

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	logger *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		logger: log,
	}
}

// Register creates a new user on a fresh 14-day trial
func (s *UserService) Register(ctx context.Context, email, password, name string) (*user.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("An account with this email already exists")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	now := time.Now()
	trialEnd := now.Add(user.TrialDuration)

	u := &user.User{
		Email:              email,
		Name:               name,
		PasswordHash:       string(hash),
		SubscriptionStatus: user.StatusTrial,
		SubscriptionPlan:   user.PlanTrial,
		TrialStart:         &now,
		TrialEnd:           &trialEnd,
		UsageCount:         0,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, nil
}

// Authenticate verifies credentials and stamps the last login
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}

	if err := s.repo.TouchLastLogin(ctx, u.ID, time.Now()); err != nil {
		s.logger.WithError(err).Warn("Failed to record login time")
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// SubscriptionStatus computes the entitlement snapshot for a user
func (s *UserService) SubscriptionStatus(ctx context.Context, userID int64) (*entitlement.Snapshot, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := entitlement.Evaluate(u.Entitlement(), time.Now())
	return &snap, nil
}

// RecordUsage increments the usage counter. Failures are logged and swallowed
// so that accounting never blocks an already-permitted action.
func (s *UserService) RecordUsage(ctx context.Context, userID int64) {
	if err := s.repo.IncrementUsage(ctx, userID); err != nil {
		metrics.RecordUsageIncrementFailure()
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
		}).WithError(err).Warn("Failed to increment usage counter")
	}
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	return s.repo.List(ctx, limit, offset)
}
