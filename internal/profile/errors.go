package profile

import "errors"

// Service-level errors for profile operations
var (
	// ErrInvalidUsername indicates a username failing length, charset, or
	// reservation rules
	ErrInvalidUsername = errors.New("invalid username")

	// ErrUsernameTaken indicates another user already holds the username
	ErrUsernameTaken = errors.New("username already taken")

	// ErrProfileNotFound indicates no profile exists for the lookup
	ErrProfileNotFound = errors.New("profile not found")
)

// IsInvalidUsername checks if an error indicates a rejected username
func IsInvalidUsername(err error) bool {
	return errors.Is(err, ErrInvalidUsername)
}

// IsUsernameTaken checks if an error indicates a username conflict
func IsUsernameTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

// IsNotFound checks if an error indicates a missing profile
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}
