package domain

import "testing"

func TestNewUser(t *testing.T) {
	validUsername := "alice"
	validHash := "$2a$10$abcdefghijklmnopqrstuv"

	user, err := NewUser(validUsername, validHash, nil)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Username != validUsername {
		t.Errorf("Expected username %s, got %s", validUsername, user.Username)
	}

	if user.HashedPassword != validHash {
		t.Errorf("Expected hashed password %s, got %s", validHash, user.HashedPassword)
	}

	if !user.Active {
		t.Error("Expected new user to be active")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Missing username
	_, err = NewUser("", validHash, nil)
	if err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	// Missing hash
	_, err = NewUser(validUsername, "", nil)
	if err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}

	// Invalid email
	bad := "not-an-email"
	_, err = NewUser(validUsername, validHash, &bad)
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Valid email
	good := "alice@example.com"
	user, err = NewUser(validUsername, validHash, &good)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email == nil || *user.Email != good {
		t.Errorf("Expected email %s, got %v", good, user.Email)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             1,
		Username:       "bob",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Active:         true,
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error for valid user, got %v", err)
	}

	noName := validUser
	noName.Username = ""
	if err := noName.Validate(); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	badEmail := validUser
	email := "bob@"
	badEmail.Email = &email
	if err := badEmail.Validate(); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}
}
