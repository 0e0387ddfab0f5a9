// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/service"
	"github.com/mkarev/go-note-keeper/internal/store"
	"github.com/mkarev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn    func(ctx context.Context, username, email, password string) (models.User, error)
	loginFn       func(ctx context.Context, email, password string) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, email, password)
	}
	return models.User{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return models.User{}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed.jwt.token"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given service mocks; nil mocks
// become zero-value stubs.
func newTestHandler(t *testing.T, auth *mockAuthService, categories *mockCategoryService, notes *mockNoteService) *Handler {
	t.Helper()

	if auth == nil {
		auth = &mockAuthService{}
	}
	if categories == nil {
		categories = &mockCategoryService{}
	}
	if notes == nil {
		notes = &mockNoteService{}
	}

	return NewHandler(&service.Services{
		AuthService:     auth,
		CategoryService: categories,
		NoteService:     notes,
	}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, username, email, _ string) (models.User, error) {
			return models.User{ID: "u-1", Username: username, Email: email}, nil
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RegisterResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.NotContains(t, rec.Body.String(), "password", "no credential material may leak")
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON was passed")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Email: "taken@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, store.ErrEmailAlreadyExists.Error(), resp.Error)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (models.User, error) {
			return models.User{}, store.ErrUsernameAlreadyExists
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "taken", Email: "alice@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_UnexpectedErrorIsOpaque(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (models.User, error) {
			return models.User{}, store.ErrExecutingStatement
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "statement", "store internals must not leak")
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{ID: "u-1", Username: "alice"}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{SignedString: "signed.jwt.token"}, nil
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "alice", resp.Username)
}

func TestLogin_UnknownEmail(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.LoginRequest{Email: "ghost@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
