package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mkarev/go-note-keeper/models"
)

// HTTPClientConfig configures the HTTP implementation of [ServerAdapter].
type HTTPClientConfig struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string

	// Timeout bounds every single request.
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter builds a [ServerAdapter] speaking the server's REST
// API over resty.
func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, username, email, password string) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RegisterRequest{Username: username, Email: email, Password: password}).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var body models.RegisterResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.User{}, fmt.Errorf("decode register response: %w", err)
	}

	return body.User, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var body models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(body.Token)
	return body.Token, nil
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var body models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Note{}, fmt.Errorf("decode create note response: %w", err)
	}

	return body.Note, nil
}

func (h *httpServerAdapter) ListNotes(ctx context.Context) ([]models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var body models.NotesResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode list notes response: %w", err)
	}

	return body.Notes, nil
}

func (h *httpServerAdapter) GetNote(ctx context.Context, id string) (models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var body models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Note{}, fmt.Errorf("decode get note response: %w", err)
	}

	return body.Note, nil
}

func (h *httpServerAdapter) GetNoteByTitle(ctx context.Context, title string) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("title", title).
		Get("/api/notes/title")
	if err != nil {
		return models.Note{}, fmt.Errorf("get note by title request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var body models.NoteResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Note{}, fmt.Errorf("decode get note by title response: %w", err)
	}

	return body.Note, nil
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, id string, req models.UpdateNoteRequest) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var body models.UpdatedNoteResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Note{}, fmt.Errorf("decode update note response: %w", err)
	}

	return body.UpdatedNote, nil
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CategoryRequest{Name: name}).
		Post("/api/notes/categories")
	if err != nil {
		return models.Category{}, fmt.Errorf("create category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	var body models.CategoryResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Category{}, fmt.Errorf("decode create category response: %w", err)
	}

	return body.Category, nil
}

func (h *httpServerAdapter) ListCategories(ctx context.Context) ([]models.CategoryWithCount, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes/categories")
	if err != nil {
		return nil, fmt.Errorf("list categories request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var body models.CategoriesResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode list categories response: %w", err)
	}

	return body.Categories, nil
}

func (h *httpServerAdapter) GetCategory(ctx context.Context, id string) (models.Category, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes/categories/" + url.PathEscape(id))
	if err != nil {
		return models.Category{}, fmt.Errorf("get category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	var body models.CategoryResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Category{}, fmt.Errorf("decode get category response: %w", err)
	}

	return body.Category, nil
}

func (h *httpServerAdapter) UpdateCategory(ctx context.Context, id, name string) (models.Category, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CategoryRequest{Name: name}).
		Put("/api/notes/categories/" + url.PathEscape(id))
	if err != nil {
		return models.Category{}, fmt.Errorf("update category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	var body models.CategoryResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Category{}, fmt.Errorf("decode update category response: %w", err)
	}

	return body.Category, nil
}

func (h *httpServerAdapter) DeleteCategory(ctx context.Context, id string) (int64, error) {
	resp, err := h.authedRequest(ctx).Delete("/api/notes/categories/" + url.PathEscape(id))
	if err != nil {
		return 0, fmt.Errorf("delete category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var body models.DeleteResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return 0, fmt.Errorf("decode delete category response: %w", err)
	}

	if body.NotesAffected == nil {
		return 0, nil
	}
	return *body.NotesAffected, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// mapHTTPError turns non-2xx responses into the package sentinels, wrapped
// with the server's reason string when one is present.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	reason := strings.TrimSpace(string(resp.Body()))
	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		reason = body.Error
	}
	if reason == "" {
		reason = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, reason)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, reason)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, reason)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, reason)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, reason)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), reason)
	}
}
