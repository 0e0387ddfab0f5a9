package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with the server-assigned ID and CreatedAt.
//
// Error handling:
//   - unique violation on the email index → [ErrEmailAlreadyExists]
//   - unique violation on the username index → [ErrUsernameAlreadyExists]
//   - any other driver-level error → wrapped as "unexpected DB error"
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	query, args, err := r.db.Builder().
		Insert(user.TableName()).
		Columns("id", "username", "email", "password_hash", "created_at").
		Values(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error: executing insert")

		if r.db.classifier.IsUniqueViolation(err) {
			constraint := r.db.classifier.UniqueConstraint(err)
			switch {
			case strings.Contains(constraint, "email"):
				return models.User{}, ErrEmailAlreadyExists
			case strings.Contains(constraint, "username"):
				return models.User{}, ErrUsernameAlreadyExists
			}
		}

		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByEmail retrieves the user record whose email matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUserBy(ctx, "email", email)
}

// FindUserByUsername retrieves the user record whose username matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUserBy(ctx, "username", username)
}

func (r *userRepository) findUserBy(ctx context.Context, column, value string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select("id", "username", "email", "password_hash", "created_at").
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUserBy").Msg("error: building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&foundUser.ID, &foundUser.Username, &foundUser.Email, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findUserBy").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return foundUser, nil
}
