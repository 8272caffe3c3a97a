package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/notify"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email or password
var ErrInvalidCredentials = errors.New("invalid credentials")

// authService is the concrete implementation of AuthService
type authService struct {
	users  repository.UserRepository
	cfg    *config.AuthConfig
	mailer notify.Mailer
	log    zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(users repository.UserRepository, cfg *config.AuthConfig, mailer notify.Mailer, log zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		cfg:    cfg,
		mailer: mailer,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// Signup creates a reader account and issues a token
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.Name,
		Role:         "reader",
		PasswordHash: string(hash),
		Active:       true,
		Tier:         models.TierFree,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("User signed up")

	// Welcome mail is best effort
	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mailer.Send(mailCtx, user.Email, user.Name, "Welcome to Newswire",
			"Your account is ready. Happy reading!"); err != nil {
			s.log.Warn().Err(err).Msg("Failed to send welcome mail")
		}
	}()

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates and issues a token. Every account, including the
// bootstrapped admin, goes through the same hashed-password path.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// BootstrapAdmin seeds the privileged account from configuration if it does
// not already exist
func (s *authService) BootstrapAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.log.Info().Msg("Admin bootstrap skipped, ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	email := strings.ToLower(s.cfg.AdminEmail)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         s.cfg.AdminName,
		Role:         "admin",
		PasswordHash: string(hash),
		Active:       true,
		Tier:         models.TierFree,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, admin); err != nil && err != repository.ErrDuplicate {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	s.log.Info().Str("email", email).Msg("Admin account seeded")
	return nil
}

// GetUser retrieves a user profile
func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile changes a user's mutable profile fields
func (s *authService) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	user.Name = name

	if err := s.users.Update(ctx, user); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("Profile updated")
	return user, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
