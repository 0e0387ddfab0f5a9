package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/utils"
	"github.com/mkarev/go-note-keeper/models"
)

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	category, created, err := h.services.CategoryService.Create(ctx, req.Name, userID)
	if err != nil {
		h.writeDomainError(w, r, err, "category creation failed")
		return
	}

	// creating a name the owner already has is not an error; the existing
	// record comes back with a 200
	if !created {
		utils.WriteJSON(w, models.CategoryResponse{
			Message:  "Category already exists. Returning existing category.",
			Category: category,
		}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, models.CategoryResponse{
		Message:  "Category created successfully",
		Category: category,
	}, http.StatusCreated)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	categories, err := h.services.CategoryService.List(ctx, userID)
	if err != nil {
		h.writeDomainError(w, r, err, "category listing failed")
		return
	}

	if categories == nil {
		categories = make([]models.CategoryWithCount, 0)
	}

	utils.WriteJSON(w, models.CategoriesResponse{Categories: categories}, http.StatusOK)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	category, err := h.services.CategoryService.GetByID(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeDomainError(w, r, err, "category lookup failed")
		return
	}

	utils.WriteJSON(w, models.CategoryResponse{Category: category}, http.StatusOK)
}

func (h *Handler) getCategoryByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	category, err := h.services.CategoryService.GetByName(ctx, chi.URLParam(r, "name"), userID)
	if err != nil {
		h.writeDomainError(w, r, err, "category lookup by name failed")
		return
	}

	utils.WriteJSON(w, models.CategoryResponse{Category: category}, http.StatusOK)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	category, err := h.services.CategoryService.Update(ctx, chi.URLParam(r, "id"), userID, req.Name)
	if err != nil {
		h.writeDomainError(w, r, err, "category update failed")
		return
	}

	utils.WriteJSON(w, models.CategoryResponse{
		Message:  "Category updated successfully",
		Category: category,
	}, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := identityFromContext(w, r)
	if !ok {
		return
	}

	notesAffected, err := h.services.CategoryService.Delete(ctx, chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeDomainError(w, r, err, "category deletion failed")
		return
	}

	utils.WriteJSON(w, models.DeleteResponse{
		Message:       "Category deleted successfully",
		NotesAffected: &notesAffected,
	}, http.StatusOK)
}
