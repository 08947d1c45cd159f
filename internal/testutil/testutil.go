package testutil

import (
	"time"

	"clickmee/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id string, score int64, suspended bool) *domain.User {
	return &domain.User{
		ID:          id,
		Email:       id + "@example.com",
		Username:    "User_1234",
		Score:       score,
		IsSuspended: suspended,
		CreatedAt:   time.Now(),
	}
}

// NewTestSession creates a session valid for an hour
func NewTestSession(userID string) *domain.Session {
	return &domain.Session{
		Token:     "test-token-" + userID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// TrustedClick creates a trusted click event at the given time
func TrustedClick(at time.Time) domain.ClickEvent {
	return domain.ClickEvent{Timestamp: at, IsTrusted: true}
}
