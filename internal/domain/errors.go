package domain

import "errors"

var (
	// ErrAuthRequired is returned when a click or profile request arrives
	// without a valid session
	ErrAuthRequired = errors.New("authentication required")

	// ErrSuspended is returned once the account has tripped the cheat
	// detector; it is never cleared by this service
	ErrSuspended = errors.New("account suspended")

	// ErrUsernameTaken signals a uniqueness violation on username update
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken signals a uniqueness violation on registration
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when no profile exists for the given id
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")
)
