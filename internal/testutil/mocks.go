package testutil

import (
	"clickmee/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *domain.User, passwordHash string) error {
	args := m.Called(user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(userID string) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*domain.User, string, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) UpdateIdentity(userID, username, avatarURL string) error {
	args := m.Called(userID, username, avatarURL)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementScore(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) Suspend(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) TopByScore(limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// MockNotifier is a mock for service.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ScoreUpdated(userID string, score int64) {
	m.Called(userID, score)
}

func (m *MockNotifier) Milestone(userID, message string) {
	m.Called(userID, message)
}

func (m *MockNotifier) MilestoneCleared(userID string) {
	m.Called(userID)
}

func (m *MockNotifier) ClickEffect(userID string, x, y int) {
	m.Called(userID, x, y)
}

func (m *MockNotifier) ClickEffectCleared(userID string) {
	m.Called(userID)
}

func (m *MockNotifier) Suspended(userID string) {
	m.Called(userID)
}
