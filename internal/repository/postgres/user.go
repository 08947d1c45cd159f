package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"clickmee/internal/domain"

	"github.com/lib/pq"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new player profile
func (r *UserRepo) Create(user *domain.User, passwordHash string) error {
	query := `
		INSERT INTO users (id, email, password_hash, username, full_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query, user.ID, user.Email, passwordHash, user.Username, user.FullName, user.AvatarURL)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailTaken
		}
		if isUniqueViolation(err, "users_username_key") {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID returns the profile for the given user id
func (r *UserRepo) GetByID(userID string) (*domain.User, error) {
	query := `
		SELECT id, email, username, full_name, avatar_url, score, is_suspended, created_at
		FROM users
		WHERE id = $1
	`

	var u domain.User
	err := r.db.QueryRow(query, userID).Scan(
		&u.ID, &u.Email, &u.Username, &u.FullName, &u.AvatarURL,
		&u.Score, &u.IsSuspended, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail returns the profile and password hash for a login attempt
func (r *UserRepo) GetByEmail(email string) (*domain.User, string, error) {
	query := `
		SELECT id, email, password_hash, username, full_name, avatar_url, score, is_suspended, created_at
		FROM users
		WHERE email = $1
	`

	var u domain.User
	var hash string
	err := r.db.QueryRow(query, email).Scan(
		&u.ID, &u.Email, &hash, &u.Username, &u.FullName, &u.AvatarURL,
		&u.Score, &u.IsSuspended, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, "", domain.ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	return &u, hash, nil
}

// UpdateIdentity sets the username and avatar for a user.
// Returns domain.ErrUsernameTaken on a uniqueness violation.
func (r *UserRepo) UpdateIdentity(userID, username, avatarURL string) error {
	query := `
		UPDATE users
		SET username = $2, avatar_url = $3
		WHERE id = $1
	`
	_, err := r.db.Exec(query, userID, username, avatarURL)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update identity: %w", err)
	}
	return nil
}

// IncrementScore adds 1 to the user's score in a single statement.
// The increment is race-free: concurrent callers are serialized by the
// database, no read-modify-write happens client-side.
func (r *UserRepo) IncrementScore(userID string) error {
	query := `
		UPDATE users
		SET score = score + 1
		WHERE id = $1
	`
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("increment score: %w", err)
	}
	return nil
}

// Suspend marks the user as suspended. There is no unsuspend here;
// clearing the flag is an administrative action outside this service.
func (r *UserRepo) Suspend(userID string) error {
	query := `
		UPDATE users
		SET is_suspended = TRUE
		WHERE id = $1
	`
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("suspend user: %w", err)
	}
	return nil
}

// TopByScore returns the highest-scoring users in rank order
func (r *UserRepo) TopByScore(limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT id, username, avatar_url, score
		FROM users
		ORDER BY score DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.AvatarURL, &e.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard rows: %w", err)
	}

	return entries, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation
// on the given constraint
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
