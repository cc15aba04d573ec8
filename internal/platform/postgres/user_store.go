package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/platform/logger"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// user_profile columns, in scanUser order. Kept as constants so the schema
// consistency test can verify them against the migration DDL.
const (
	userColumns       = "id, username, hashed_password, email, active, created_at, updated_at"
	userInsertColumns = "username, hashed_password, email, active, created_at, updated_at"
)

// Create implements store.UserStore.Create
// It inserts the user and assigns the generated ID.
// Returns store.ErrUsernameExists or store.ErrEmailExists on unique violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `INSERT INTO user_profile (` + userInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.HashedPassword,
		user.Email,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err, "user_profile_username_key") {
			log.Warn("duplicate username during user creation",
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		if isUniqueViolation(err, "user_profile_email_key") {
			log.Warn("duplicate email during user creation")
			return store.ErrEmailExists
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return err
	}

	log.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user_profile WHERE id = $1`
	return s.scanUser(ctx, query, id)
}

// GetByUsername implements store.UserStore.GetByUsername
// The match is case-sensitive and exact.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user_profile WHERE username = $1`
	return s.scanUser(ctx, query, username)
}

// scanUser runs a single-row user query and maps absence to ErrUserNotFound.
func (s *PostgresUserStore) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.Email,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to query user", slog.String("error", err.Error()))
		return nil, err
	}

	return &user, nil
}
