package domain

import (
	"errors"
	"time"
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user account.
// The password is only ever stored as a bcrypt hash; the plaintext never
// leaves the registration/login request path.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Email          *string   `json:"email,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, hashed password, and
// optional email. The ID is assigned by the store on insert. New accounts
// start active.
// Returns an error if validation fails.
func NewUser(username, hashedPassword string, email *string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		Email:          email,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	if u.Email != nil && !validateEmailFormat(*u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	// Simple check: an @ with a dotted domain part after it. A dedicated
	// validation library would handle the RFC 5322 edge cases.
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
