package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/utils"
	"github.com/mkarev/go-note-keeper/models"
)

// identityFromContext pulls the authenticated user id stored by the auth
// middleware. A miss means the route was wired outside the auth group; the
// request is answered 401 and false is returned.
func identityFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		logger.FromRequest(r).Error().Msg("no authenticated user in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}

	return userID, true
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.Create(ctx, req.Title, req.Content, req.Categories, userID)
	if err != nil {
		h.writeDomainError(w, r, err, "note creation failed")
		return
	}

	// the stored title may differ from the requested one; the client must
	// read it back from the response
	utils.WriteJSON(w, models.NoteResponse{
		Message: "Note created successfully",
		Note:    note,
	}, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	notes, err := h.services.NoteService.List(ctx, userID)
	if err != nil {
		h.writeDomainError(w, r, err, "note listing failed")
		return
	}

	if notes == nil {
		notes = make([]models.Note, 0)
	}

	utils.WriteJSON(w, models.NotesResponse{Notes: notes}, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.GetByID(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeDomainError(w, r, err, "note lookup failed")
		return
	}

	utils.WriteJSON(w, models.NoteResponse{Note: note}, http.StatusOK)
}

// getNoteByTitle answers GET /api/notes/title?title=... . The title travels
// as a query parameter because titles may contain slashes.
func (h *Handler) getNoteByTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		utils.WriteError(w, "`title` query parameter is required", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.GetByTitle(ctx, title, userID)
	if err != nil {
		h.writeDomainError(w, r, err, "note lookup by title failed")
		return
	}

	utils.WriteJSON(w, models.NoteResponse{Note: note}, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.NoteService.Update(ctx, models.NoteUpdate{
		ID:         chi.URLParam(r, "id"),
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		Categories: req.Categories,
	})
	if err != nil {
		h.writeDomainError(w, r, err, "note update failed")
		return
	}

	utils.WriteJSON(w, models.UpdatedNoteResponse{
		Message:     "Note updated successfully",
		UpdatedNote: updated,
	}, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.Delete(ctx, chi.URLParam(r, "id"), userID); err != nil {
		h.writeDomainError(w, r, err, "note deletion failed")
		return
	}

	utils.WriteJSON(w, models.DeleteResponse{Message: "Note deleted successfully"}, http.StatusOK)
}
