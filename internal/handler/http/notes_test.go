// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarev/go-note-keeper/internal/service"
	"github.com/mkarev/go-note-keeper/internal/store"
	"github.com/mkarev/go-note-keeper/internal/utils"
	"github.com/mkarev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// Mock NoteService
// ─────────────────────────────────────────────

type mockNoteService struct {
	createFn     func(ctx context.Context, title, content string, categoryIDs []string, ownerID string) (models.Note, error)
	listFn       func(ctx context.Context, ownerID string) ([]models.Note, error)
	getByIDFn    func(ctx context.Context, id, ownerID string) (models.Note, error)
	getByTitleFn func(ctx context.Context, title, ownerID string) (models.Note, error)
	updateFn     func(ctx context.Context, update models.NoteUpdate) (models.Note, error)
	deleteFn     func(ctx context.Context, id, ownerID string) error
}

func (m *mockNoteService) Create(ctx context.Context, title, content string, categoryIDs []string, ownerID string) (models.Note, error) {
	if m.createFn != nil {
		return m.createFn(ctx, title, content, categoryIDs, ownerID)
	}
	return models.Note{}, nil
}

func (m *mockNoteService) List(ctx context.Context, ownerID string) ([]models.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockNoteService) GetByID(ctx context.Context, id, ownerID string) (models.Note, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id, ownerID)
	}
	return models.Note{}, store.ErrNoteNotFound
}

func (m *mockNoteService) GetByTitle(ctx context.Context, title, ownerID string) (models.Note, error) {
	if m.getByTitleFn != nil {
		return m.getByTitleFn(ctx, title, ownerID)
	}
	return models.Note{}, store.ErrNoteNotFound
}

func (m *mockNoteService) Update(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return models.Note{}, store.ErrNoteNotFound
}

func (m *mockNoteService) Delete(ctx context.Context, id, ownerID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return store.ErrNoteNotFound
}

// withIdentity stamps the request context the way the auth middleware does.
func withIdentity(req *http.Request, userID, username string) *http.Request {
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.UsernameCtxKey, username)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without the router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// createNote
// ─────────────────────────────────────────────

func TestCreateNote_Success(t *testing.T) {
	notes := &mockNoteService{
		createFn: func(_ context.Context, title, content string, categoryIDs []string, ownerID string) (models.Note, error) {
			assert.Equal(t, "u-1", ownerID)
			return models.Note{ID: "n-1", UserID: ownerID, Title: title, Content: content, Categories: categoryIDs}, nil
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	body := jsonBody(t, models.CreateNoteRequest{Title: "Plan", Content: "details", Categories: []string{"c-1"}})
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)), "u-1", "alice")
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.NoteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Note created successfully", resp.Message)
	assert.Equal(t, "n-1", resp.Note.ID)
}

func TestCreateNote_RewrittenTitleComesBack(t *testing.T) {
	notes := &mockNoteService{
		createFn: func(_ context.Context, _, content string, _ []string, ownerID string) (models.Note, error) {
			return models.Note{ID: "n-2", UserID: ownerID, Title: "Plan (1)", Content: content}, nil
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	body := jsonBody(t, models.CreateNoteRequest{Title: "Plan", Content: "details"})
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)), "u-1", "alice")
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.NoteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Plan (1)", resp.Note.Title)
}

func TestCreateNote_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "empty title", serviceErr: service.ErrEmptyTitle, wantStatus: http.StatusBadRequest},
		{name: "empty content", serviceErr: service.ErrEmptyContent, wantStatus: http.StatusBadRequest},
		{name: "foreign category", serviceErr: service.ErrForbidden, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &mockNoteService{
				createFn: func(_ context.Context, _, _ string, _ []string, _ string) (models.Note, error) {
					return models.Note{}, tt.serviceErr
				},
			}
			h := newTestHandler(t, nil, nil, notes)

			body := jsonBody(t, models.CreateNoteRequest{Title: "x", Content: "y"})
			req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)), "u-1", "alice")
			rec := httptest.NewRecorder()

			h.createNote(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateNote_NoIdentityInContext(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	body := jsonBody(t, models.CreateNoteRequest{Title: "x", Content: "y"})
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// listNotes / getNote
// ─────────────────────────────────────────────

func TestListNotes_EmptyListIsJSONArray(t *testing.T) {
	h := newTestHandler(t, nil, nil, &mockNoteService{})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/notes", nil), "u-1", "alice")
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notes":[]`)
}

func TestGetNote_MalformedID(t *testing.T) {
	notes := &mockNoteService{
		getByIDFn: func(_ context.Context, _, _ string) (models.Note, error) {
			return models.Note{}, service.ErrInvalidID
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/notes/42", nil), "u-1", "alice")
	req = withURLParam(req, "id", "42")
	rec := httptest.NewRecorder()

	h.getNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNote_OwnerScopedMissIs404(t *testing.T) {
	h := newTestHandler(t, nil, nil, &mockNoteService{})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/notes/n-1", nil), "u-1", "alice")
	req = withURLParam(req, "id", "n-1")
	rec := httptest.NewRecorder()

	h.getNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// getNoteByTitle
// ─────────────────────────────────────────────

func TestGetNoteByTitle_Success(t *testing.T) {
	notes := &mockNoteService{
		getByTitleFn: func(_ context.Context, title, ownerID string) (models.Note, error) {
			assert.Equal(t, "Weekly Plan", title)
			return models.Note{ID: "n-1", UserID: ownerID, Title: title}, nil
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/notes/title?title=Weekly+Plan", nil), "u-1", "alice")
	rec := httptest.NewRecorder()

	h.getNoteByTitle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.NoteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Weekly Plan", resp.Note.Title)
}

func TestGetNoteByTitle_MissingParamIs400(t *testing.T) {
	notes := &mockNoteService{
		getByTitleFn: func(_ context.Context, _, _ string) (models.Note, error) {
			t.Fatal("service reached without a title param")
			return models.Note{}, nil
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/notes/title", nil), "u-1", "alice")
	rec := httptest.NewRecorder()

	h.getNoteByTitle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNoteByTitle_UnknownTitleIs404(t *testing.T) {
	h := newTestHandler(t, nil, nil, &mockNoteService{})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/notes/title?title=Nope", nil), "u-1", "alice")
	rec := httptest.NewRecorder()

	h.getNoteByTitle(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// updateNote
// ─────────────────────────────────────────────

func TestUpdateNote_OmittedFieldsStayNil(t *testing.T) {
	notes := &mockNoteService{
		updateFn: func(_ context.Context, update models.NoteUpdate) (models.Note, error) {
			assert.Nil(t, update.Title)
			assert.Nil(t, update.Categories)
			require.NotNil(t, update.Content)
			return models.Note{ID: update.ID, Content: *update.Content}, nil
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodPut, "/api/notes/n-1", strings.NewReader(`{"content":"new"}`)), "u-1", "alice")
	req = withURLParam(req, "id", "n-1")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UpdatedNoteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Note updated successfully", resp.Message)
	assert.Equal(t, "new", resp.UpdatedNote.Content)
}

func TestUpdateNote_EmptyStringFieldIsNotOmitted(t *testing.T) {
	notes := &mockNoteService{
		updateFn: func(_ context.Context, update models.NoteUpdate) (models.Note, error) {
			require.NotNil(t, update.Title, "explicit empty title must reach the service")
			return models.Note{}, service.ErrEmptyTitle
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodPut, "/api/notes/n-1", strings.NewReader(`{"title":""}`)), "u-1", "alice")
	req = withURLParam(req, "id", "n-1")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateNote_ForeignNoteIs403(t *testing.T) {
	notes := &mockNoteService{
		updateFn: func(_ context.Context, _ models.NoteUpdate) (models.Note, error) {
			return models.Note{}, service.ErrForbidden
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodPut, "/api/notes/n-1", strings.NewReader(`{"title":"mine now"}`)), "u-intruder", "bob")
	req = withURLParam(req, "id", "n-1")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─────────────────────────────────────────────
// deleteNote
// ─────────────────────────────────────────────

func TestDeleteNote_Success(t *testing.T) {
	notes := &mockNoteService{
		deleteFn: func(_ context.Context, id, ownerID string) error {
			assert.Equal(t, "n-1", id)
			assert.Equal(t, "u-1", ownerID)
			return nil
		},
	}
	h := newTestHandler(t, nil, nil, notes)

	req := withIdentity(httptest.NewRequest(http.MethodDelete, "/api/notes/n-1", nil), "u-1", "alice")
	req = withURLParam(req, "id", "n-1")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DeleteResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Note deleted successfully", resp.Message)
	assert.Nil(t, resp.NotesAffected)
}
