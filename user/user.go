// Package user is the user-management service of the single-responsibility,
// dependency-inversion and error-handling katas. Validation, storage and
// email each live behind their own type; Service composes them and
// Controller turns their errors into responses.
package user

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the user service.
var (
	ErrInvalidName     = errors.New("user: invalid name")
	ErrInvalidEmail    = errors.New("user: invalid email")
	ErrNotFound        = errors.New("user: not found")
	ErrDuplicateEmail  = errors.New("user: email already registered")
	ErrInvalidPassword = errors.New("user: invalid password")
)

// User is a registered user.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
}

// Validator checks user input. It has no other responsibility.
type Validator struct{}

// IsValidEmail reports whether email looks like an address.
func (Validator) IsValidEmail(email string) bool {
	return strings.Contains(email, "@")
}

// IsValidName reports whether name is non-blank.
func (Validator) IsValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// Validate checks name and email, returning the first problem found.
func (v Validator) Validate(name, email string) error {
	if !v.IsValidName(name) {
		return fmt.Errorf("%w: El nombre es requerido", ErrInvalidName)
	}
	if len([]rune(strings.TrimSpace(name))) < 3 {
		return fmt.Errorf("%w: El nombre debe tener al menos 3 caracteres", ErrInvalidName)
	}
	if !v.IsValidEmail(email) {
		return fmt.Errorf("%w: El email debe ser válido", ErrInvalidEmail)
	}
	return nil
}
