package service

import (
	"clickmee/internal/domain"
	"clickmee/internal/repository"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// LeaderboardService serves the score ranking read model
type LeaderboardService struct {
	userRepo repository.UserRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(userRepo repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo}
}

// Top returns the highest-scoring players. A non-positive limit falls
// back to the default page size; oversized requests are clamped.
func (s *LeaderboardService) Top(limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	return s.userRepo.TopByScore(limit)
}
