package services_test

import (
	"errors"
	"testing"

	"github.com/pantryworks/recipedb/internal/config"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/types"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	}
}

// TestRegisterUser tests account creation and validation
func TestRegisterUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.RegisterUser(db, services.RegisterUserInput{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	if user.UserID == 0 {
		t.Error("Expected a persisted user id")
	}
	if user.PasswordHash == "supersecret" {
		t.Error("Password must not be stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}

	var validationErr *types.ValidationError

	// Duplicate email
	_, err = services.RegisterUser(db, services.RegisterUserInput{
		Email:    "new@example.com",
		Password: "supersecret",
	})
	if !errors.As(err, &validationErr) || validationErr.Field != "email" {
		t.Errorf("Expected email validation error for duplicate, got %v", err)
	}

	// Malformed email
	_, err = services.RegisterUser(db, services.RegisterUserInput{
		Email:    "not-an-email",
		Password: "supersecret",
	})
	if !errors.As(err, &validationErr) || validationErr.Field != "email" {
		t.Errorf("Expected email validation error, got %v", err)
	}

	// Short password
	_, err = services.RegisterUser(db, services.RegisterUserInput{
		Email:    "short@example.com",
		Password: "pw",
	})
	if !errors.As(err, &validationErr) || validationErr.Field != "password" {
		t.Errorf("Expected password validation error, got %v", err)
	}
}

// TestAuthenticateUser tests that failures are indistinguishable
func TestAuthenticateUser(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.RegisterUser(db, services.RegisterUserInput{
		Email:    "login@example.com",
		Password: "supersecret",
	}); err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	user, err := services.AuthenticateUser(db, "login@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if user.Email != "login@example.com" {
		t.Errorf("Unexpected account: %s", user.Email)
	}

	_, wrongPassword := services.AuthenticateUser(db, "login@example.com", "wrong")
	_, unknownEmail := services.AuthenticateUser(db, "nobody@example.com", "supersecret")

	if !errors.Is(wrongPassword, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("Wrong password and unknown email must be indistinguishable")
	}
}

// TestTokenRoundTrip tests token issuance and verification
func TestTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	user, err := services.RegisterUser(db, services.RegisterUserInput{
		Email:    "token@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	token, err := services.IssueToken(cfg, user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	userID, err := services.VerifyToken(cfg, token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if userID != user.UserID {
		t.Errorf("Expected subject %d, got %d", user.UserID, userID)
	}

	// A token signed with another secret is rejected
	otherCfg := &config.Config{JWTSecret: "other-secret", TokenTTLHours: 1}
	if _, err := services.VerifyToken(otherCfg, token); err == nil {
		t.Error("Expected verification failure with a different secret")
	}

	if _, err := services.VerifyToken(cfg, "not.a.token"); err == nil {
		t.Error("Expected verification failure for garbage input")
	}
}

// TestUpdateUser tests partial profile updates
func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.RegisterUser(db, services.RegisterUserInput{
		Email:    "me@example.com",
		Name:     "Before",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	taken, err := services.RegisterUser(db, services.RegisterUserInput{
		Email:    "taken@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}

	// Name-only update keeps the email
	name := "After"
	updated, err := services.UpdateUser(db, user.UserID, services.UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated.Name != "After" || updated.Email != "me@example.com" {
		t.Errorf("Unexpected profile after update: %s / %s", updated.Name, updated.Email)
	}

	// Password update re-hashes and old password stops working
	password := "newpassword"
	if _, err := services.UpdateUser(db, user.UserID, services.UpdateUserInput{Password: &password}); err != nil {
		t.Fatalf("Failed to update password: %v", err)
	}
	if _, err := services.AuthenticateUser(db, "me@example.com", "supersecret"); err == nil {
		t.Error("Expected old password to be rejected")
	}
	if _, err := services.AuthenticateUser(db, "me@example.com", "newpassword"); err != nil {
		t.Errorf("Expected new password to work: %v", err)
	}

	// Email conflicts with another account
	conflict := taken.Email
	_, err = services.UpdateUser(db, user.UserID, services.UpdateUserInput{Email: &conflict})
	var validationErr *types.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "email" {
		t.Errorf("Expected email conflict error, got %v", err)
	}

	// Keeping your own email is not a conflict
	own := "me@example.com"
	if _, err := services.UpdateUser(db, user.UserID, services.UpdateUserInput{Email: &own}); err != nil {
		t.Errorf("Updating to own email should succeed: %v", err)
	}
}
