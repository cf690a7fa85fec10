package e

import (
	"errors"
	"fmt"
)

var (
	// 404
	ErrNotFound = errors.New("record not found")

	// 409
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflicting update")

	// 401 / 403
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrSessionExpired     = errors.New("session expired")

	// Config
	ErrIncorrectEnvVariable = errors.New("incorrect environment variable")
)

// Wrap annotates err with the operation that produced it.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
