package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkarev/go-note-keeper/internal/config"
	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/store"
	"github.com/mkarev/go-note-keeper/internal/utils"
	"github.com/mkarev/go-note-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// bcryptCost is the bcrypt work factor applied when hashing passwords
	// at registration time.
	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Both uniqueness checks run before the insert so that the caller learns
// which of the two fields is taken; the unique indexes still guard the
// insert itself against concurrent registrations.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if username, email or password is blank.
//   - store.ErrEmailAlreadyExists / store.ErrUsernameAlreadyExists when the
//     respective field is taken.
func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		log.Error().Str("username", username).Str("email", email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if _, err := a.userRepository.FindUserByEmail(ctx, email); err == nil {
		return models.User{}, store.ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if _, err := a.userRepository.FindUserByUsername(ctx, username); err == nil {
		return models.User{}, store.ErrUsernameAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is blank.
//   - store.ErrNoUserWasFound when no account owns the email.
//   - ErrWrongPassword when the password does not match.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.ComparePassword(foundUser.PasswordHash, password) {
		log.Error().Str("id", foundUser.ID).Str("email", email).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
