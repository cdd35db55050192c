package service

import "errors"

const (
	usernameMinLen = 3
	usernameMaxLen = 16
)

var (
	errUsernameLength  = errors.New("username must be between 3 and 16 characters")
	errUsernameCharset = errors.New("username contains disallowed characters")
)

// validateUsername checks a game username before it is interpolated into a
// console command. Length is checked first, then the character set, which is
// strictly A-Z, a-z, 0-9 and underscore.
func validateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return errUsernameLength
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return errUsernameCharset
		}
	}
	return nil
}
