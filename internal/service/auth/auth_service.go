package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// TokenPair is the result of a successful login or registration.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService orchestrates the authentication flows: login, token refresh,
// registration, and identity resolution. Token mechanics live in JWTService;
// this service binds them to user lookups.
type AuthService struct {
	users    store.UserStore
	jwt      JWTService
	hasher   PasswordHasher
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewAuthService creates an AuthService with the given collaborators.
// If logger is nil, the default logger is used.
func NewAuthService(
	users store.UserStore,
	jwt JWTService,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    users,
		jwt:      jwt,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// Login authenticates a username/password pair and issues a token pair.
//
// A missing user and a wrong password both return ErrInvalidCredentials so a
// caller cannot enumerate accounts; the distinction exists only in debug logs.
// An existing but deactivated account returns ErrUserInactive.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login failed: unknown username", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		s.logger.Debug("login rejected: inactive account", "user_id", user.ID)
		return nil, ErrUserInactive
	}

	return s.issueTokenPair(ctx, user.ID)
}

// Refresh validates a refresh token and issues a new access token bound to
// the same subject. The presented refresh token is not rotated or revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	accessToken, err := s.jwt.GenerateToken(ctx, claims.UserID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, time.Now().Add(s.jwt.AccessTokenLifetime()), nil
}

// CurrentUser resolves the user identified by an access token, along with the
// token claims. Returns store.ErrUserNotFound if the subject no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, *Claims, error) {
	claims, err := s.jwt.ValidateToken(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, claims, nil
}

// Register hashes the password, creates an active user account, and issues an
// initial token pair. Duplicate usernames or emails surface as the store's
// duplicate errors.
func (s *AuthService) Register(
	ctx context.Context,
	username, password string,
	email *string,
) (*domain.User, *TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, hash, email)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// issueTokenPair mints an access and refresh token for the subject.
func (s *AuthService) issueTokenPair(ctx context.Context, userID int64) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwt.AccessTokenLifetime()),
	}, nil
}
