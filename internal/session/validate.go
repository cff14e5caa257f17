package session

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidName is returned for names that cannot be used as a directory.
var ErrInvalidName = errors.New("invalid session name")

var nameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidateName reports whether name is usable as a session: 1-64 lowercase
// letters, digits, '-' or '_', starting with a letter or digit.
func ValidateName(name string) error {
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w %q: use 1-64 lowercase letters, digits, '-' or '_', starting with a letter or digit", ErrInvalidName, name)
	}
	return nil
}
