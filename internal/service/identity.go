package service

import (
	"errors"
	"fmt"
	"math/rand"

	"clickmee/internal/domain"
	"clickmee/internal/repository"

	"go.uber.org/zap"
)

// ProfileService loads player profiles and reconciles generated
// placeholder usernames against the richer identity captured at
// registration
type ProfileService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repository.UserRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Get returns the profile for a user, applying identity reconciliation
// first when it still carries a placeholder username
func (s *ProfileService) Get(userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return s.reconcile(user), nil
}

// reconcile upgrades a placeholder username to the player's real name.
// On a uniqueness conflict it retries exactly once with a random 4-digit
// suffix, then gives up silently: the profile keeps its prior username.
func (s *ProfileService) reconcile(user *domain.User) *domain.User {
	if user.FullName == "" || !user.HasPlaceholderName() {
		return user
	}

	if err := s.userRepo.UpdateIdentity(user.ID, user.FullName, user.AvatarURL); err == nil {
		updated := *user
		updated.Username = user.FullName
		return &updated
	} else if !errors.Is(err, domain.ErrUsernameTaken) {
		s.logger.Error("Failed to reconcile identity",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return user
	}

	// Name taken, retry with a numeric suffix
	candidate := fmt.Sprintf("%s_%d", user.FullName, 1000+rand.Intn(9000))
	if err := s.userRepo.UpdateIdentity(user.ID, candidate, user.AvatarURL); err != nil {
		if !errors.Is(err, domain.ErrUsernameTaken) {
			s.logger.Error("Failed to reconcile identity on retry",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
		return user
	}

	updated := *user
	updated.Username = candidate
	return &updated
}
