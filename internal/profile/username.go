package profile

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// reservedUsernames blocks handles that collide with routes or impersonate
// the service itself.
var reservedUsernames = map[string]bool{
	"admin":      true,
	"api":        true,
	"youreview":  true,
	"login":      true,
	"sign-in":    true,
	"u":          true,
	"top10":      true,
	"create":     true,
	"recap":      true,
	"onboarding": true,
}

// NormalizeUsername trims surrounding whitespace and lowercases. Usernames
// compare and store in this normalized form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks a normalized username against the length, charset,
// and reservation rules.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("%w: must be %d to %d characters", ErrInvalidUsername, usernameMinLen, usernameMaxLen)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: only lowercase letters, digits, underscore and hyphen", ErrInvalidUsername)
	}
	if reservedUsernames[username] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidUsername, username)
	}
	return nil
}
