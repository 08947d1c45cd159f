package repository

import (
	"clickmee/internal/domain"
)

// UserRepository defines player profile data operations
type UserRepository interface {
	Create(user *domain.User, passwordHash string) error
	GetByID(userID string) (*domain.User, error)
	GetByEmail(email string) (*domain.User, string, error)
	UpdateIdentity(userID, username, avatarURL string) error
	IncrementScore(userID string) error
	Suspend(userID string) error
	TopByScore(limit int) ([]domain.LeaderboardEntry, error)
}
