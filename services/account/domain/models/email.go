package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// Email is a normalized, syntactically valid mailbox address.
type Email string

const maxEmailLength = 254

// NewEmail trims and lowercases s and rejects anything that is not a bare address.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("email must not be empty")
	}
	if len(s) > maxEmailLength {
		return "", fmt.Errorf("email must not exceed %d characters", maxEmailLength)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("email %q is not a valid address", s)
	}
	return Email(s), nil
}

// String returns the underlying string value.
func (e Email) String() string {
	return string(e)
}
