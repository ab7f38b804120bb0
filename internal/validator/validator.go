// Package validator holds the predicates used to flag free-form values.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Func reports whether a free-form value is acceptable. A nil Func accepts everything.
type Func func(string) bool

// ErrUnknownValidator is returned by ByName for unsupported names
var ErrUnknownValidator = errors.New("unknown validator")

var emailRE = regexp.MustCompile(`\S+@\S+\.\S+`)

// Email is a loose address check: something@something.tld
func Email(s string) bool {
	return emailRE.MatchString(s)
}

// ByName resolves a configured validator name
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "email":
		return Email, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
	}
}
