package domain

import (
	"regexp"
	"time"
)

// User represents a player profile stored in the database
type User struct {
	ID          string
	Email       string
	Username    string
	FullName    string
	AvatarURL   string
	Score       int64
	IsSuspended bool
	CreatedAt   time.Time
}

// placeholderName matches usernames generated at registration time,
// before the player's real identity has been reconciled
var placeholderName = regexp.MustCompile(`^User_\d+$`)

// HasPlaceholderName reports whether the username is still the
// system-generated one
func (u *User) HasPlaceholderName() bool {
	return placeholderName.MatchString(u.Username)
}

// Session identifies an authenticated player for the lifetime of a token
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its TTL
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
