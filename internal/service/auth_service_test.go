package service_test

import (
	"context"
	"testing"

	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
)

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.services.Auth.Signup(ctx, &models.SignupRequest{
		Email:    "  Reader@Example.COM ",
		Name:     "Reader",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "reader@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.User.Role != "reader" {
		t.Errorf("expected role reader, got %q", resp.User.Role)
	}
	if resp.User.Tier != models.TierFree {
		t.Errorf("expected free tier, got %q", resp.User.Tier)
	}

	login, err := env.services.Auth.Login(ctx, &models.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login resolved a different user")
	}

	_, err = env.services.Auth.Login(ctx, &models.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong-password",
	})
	if err != service.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = env.services.Auth.Login(ctx, &models.LoginRequest{
		Email:    "stranger@example.com",
		Password: "correct-horse",
	})
	if err != service.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	req := &models.SignupRequest{Email: "reader@example.com", Name: "Reader", Password: "correct-horse"}

	if _, err := env.services.Auth.Signup(ctx, req); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := env.services.Auth.Signup(ctx, req); err != service.ErrConflict {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestBootstrapAdmin(t *testing.T) {
	env := newTestEnv()
	env.cfg.Auth.AdminEmail = "Admin@Example.com"
	env.cfg.Auth.AdminPassword = "bootstrap-secret"
	env.cfg.Auth.AdminName = "Administrator"
	ctx := context.Background()

	if err := env.services.Auth.BootstrapAdmin(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	// Admin logs in through the normal credential path
	resp, err := env.services.Auth.Login(ctx, &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "bootstrap-secret",
	})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if resp.User.Role != "admin" {
		t.Errorf("expected role admin, got %q", resp.User.Role)
	}

	// Re-running is a no-op
	if err := env.services.Auth.BootstrapAdmin(ctx); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if n, _ := env.users.Count(ctx); n != 1 {
		t.Errorf("expected 1 account after repeated bootstrap, got %d", n)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("reader@example.com")
	ctx := context.Background()

	updated, err := env.services.Auth.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{Name: "  New Name "})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("expected trimmed name, got %q", updated.Name)
	}

	stored, _ := env.users.GetByID(ctx, user.ID)
	if stored.Name != "New Name" {
		t.Errorf("expected name persisted, got %q", stored.Name)
	}

	var vErr *service.ValidationError
	_, err = env.services.Auth.UpdateProfile(ctx, user.ID, &models.UpdateProfileRequest{Name: "   "})
	if !asValidation(err, &vErr) || vErr.Field != "name" {
		t.Errorf("expected name validation error, got %v", err)
	}

	_, err = env.services.Auth.UpdateProfile(ctx, "missing", &models.UpdateProfileRequest{Name: "X"})
	if err != service.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBootstrapAdminSkippedWithoutConfig(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.services.Auth.BootstrapAdmin(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if n, _ := env.users.Count(ctx); n != 0 {
		t.Errorf("expected no accounts seeded, got %d", n)
	}
}
