package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"clickmee/internal/domain"
	"clickmee/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// placeholderAttempts bounds retries when the generated registration
// username collides
const placeholderAttempts = 3

// AuthService handles registration, login and bearer-token sessions.
// Sessions live in memory only; a restart signs everyone out.
type AuthService struct {
	userRepo   repository.UserRepository
	sessionTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessionTTL: sessionTTL,
		sessions:   make(map[string]*domain.Session),
	}
}

// Register creates a new player profile. The username starts as a
// generated placeholder; the full name provided here is the identity
// that reconciliation later promotes it to.
func (s *AuthService) Register(email, password, fullName string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: fullName,
	}

	for attempt := 0; attempt < placeholderAttempts; attempt++ {
		user.Username = fmt.Sprintf("User_%d", 1000+rand.Intn(9000))

		err = s.userRepo.Create(user, string(hash))
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
	}

	return nil, err
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(email, password string) (*domain.Session, error) {
	user, hash, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session, nil
}

// SessionFromToken returns the session for a bearer token, or nil when
// the token is unknown or expired. Expired sessions are dropped on
// lookup.
func (s *AuthService) SessionFromToken(token string) *domain.Session {
	if token == "" {
		return nil
	}

	s.mu.RLock()
	session, exists := s.sessions[token]
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	if session.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil
	}

	return session
}

// Logout destroys the session for a token. Unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
