package utils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ValidNameRegex is the pattern that matches to a valid body or joint name.
// The name must begin with a letter or number i.e. [a-zA-Z0-9],
// and can only contain up to 60, letters, numbers, dashes, and underscores i.e. [-\w]*.
var ValidNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([-\w]){0,59}$`)

// ErrInvalidName returns a human-readable error for when ValidNameRegex doesn't match.
func ErrInvalidName(name string) error {
	if len(name) > 60 {
		return errors.Errorf("name %q must be 60 characters or fewer", name)
	}
	return errors.Errorf("name %q must start with a letter or number and must only contain letters, numbers, dashes, and underscores", name)
}

// ValidateName returns ErrInvalidName if the name does not match ValidNameRegex.
func ValidateName(name string) error {
	if !ValidNameRegex.MatchString(name) {
		return ErrInvalidName(name)
	}
	return nil
}

// QualifiedNameSeparator separates a body name from a joint label.
const QualifiedNameSeparator = ":"

// SplitQualifiedName splits a "body:joint" reference into its body and joint names.
func SplitQualifiedName(ref string) (string, string, error) {
	body, label, found := strings.Cut(ref, QualifiedNameSeparator)
	if !found || body == "" || label == "" {
		return "", "", errors.Errorf("joint reference %q must have the form body%sjoint", ref, QualifiedNameSeparator)
	}
	return body, label, nil
}
