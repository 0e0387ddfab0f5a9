package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/store"
	"github.com/mkarev/go-note-keeper/models"
)

// titleRetryAttempts bounds how often a save is retried when a concurrent
// save grabs the computed title between the probe and the insert.
const titleRetryAttempts = 3

// noteService is the concrete implementation of NoteService. It owns the
// title-uniqueness loop and the category ownership checks; the repositories
// stay free of domain policy.
type noteService struct {
	noteRepository     store.NoteRepository
	categoryRepository store.CategoryRepository
	logger             *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given repositories.
func NewNoteService(noteRepository store.NoteRepository, categoryRepository store.CategoryRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository:     noteRepository,
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

// Create persists a new note for ownerID. The stored title is resolved
// through the uniqueness probe and may differ from the requested one, so
// callers must read it back from the returned note.
func (s *noteService) Create(ctx context.Context, title, content string, categoryIDs []string, ownerID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return models.Note{}, ErrEmptyTitle
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Note{}, ErrEmptyContent
	}

	categoryIDs = dedupeIDs(categoryIDs)
	ok, err := validateCategoryOwnership(ctx, s.categoryRepository, categoryIDs, ownerID)
	if err != nil {
		log.Err(err).Str("owner_id", ownerID).Msg("category ownership check ended with error")
		return models.Note{}, err
	}
	if !ok {
		return models.Note{}, ErrForbidden
	}

	for attempt := 0; attempt < titleRetryAttempts; attempt++ {
		uniqueTitle, err := computeUniqueTitle(ctx, s.noteRepository, ownerID, title, "")
		if err != nil {
			return models.Note{}, err
		}

		created, err := s.noteRepository.CreateNote(ctx, models.Note{
			UserID:     ownerID,
			Title:      uniqueTitle,
			Content:    content,
			Categories: categoryIDs,
		})
		if errors.Is(err, store.ErrNoteTitleTaken) {
			// Lost the probe-to-insert race; recompute against the
			// now-current titles and try again.
			continue
		}
		if err != nil {
			log.Err(err).Str("owner_id", ownerID).Msg("note creation ended with error")
			return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
		}

		return created, nil
	}

	return models.Note{}, fmt.Errorf("note creation ended with error: %w", store.ErrNoteTitleTaken)
}

// List returns all of the owner's notes.
func (s *noteService) List(ctx context.Context, ownerID string) ([]models.Note, error) {
	notes, err := s.noteRepository.FindAllNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("note listing ended with error: %w", err)
	}

	return notes, nil
}

// GetByID returns the owner's note with the given id. A miss is reported
// identically whether the note is absent or owned by someone else.
func (s *noteService) GetByID(ctx context.Context, id, ownerID string) (models.Note, error) {
	if !isWellFormedID(id) {
		return models.Note{}, ErrInvalidID
	}

	return s.noteRepository.FindNoteByID(ctx, id, ownerID)
}

// GetByTitle returns the owner's note with the exact title.
func (s *noteService) GetByTitle(ctx context.Context, title, ownerID string) (models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Note{}, ErrEmptyTitle
	}

	return s.noteRepository.FindNoteByTitle(ctx, title, ownerID)
}

// Update applies the non-nil fields of update to the owner's note.
//
// The ownership check runs before any field validation: an update aimed at
// another user's note fails ErrForbidden even when its payload is invalid.
// A provided title is re-run through the uniqueness probe, excluding the
// note's own id.
func (s *noteService) Update(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	if !isWellFormedID(update.ID) {
		return models.Note{}, ErrInvalidID
	}

	ownerID, err := s.noteRepository.FindNoteOwner(ctx, update.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, err
		}

		log.Err(err).Str("id", update.ID).Msg("note owner lookup ended with error")
		return models.Note{}, fmt.Errorf("note owner lookup ended with error: %w", err)
	}
	if ownerID != update.UserID {
		return models.Note{}, ErrForbidden
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return models.Note{}, ErrEmptyTitle
		}
		update.Title = &title
	}
	if update.Content != nil {
		content := strings.TrimSpace(*update.Content)
		if content == "" {
			return models.Note{}, ErrEmptyContent
		}
		update.Content = &content
	}
	if update.Categories != nil {
		distinct := dedupeIDs(*update.Categories)
		if distinct == nil {
			distinct = make([]string, 0)
		}

		ok, err := validateCategoryOwnership(ctx, s.categoryRepository, distinct, update.UserID)
		if err != nil {
			log.Err(err).Str("owner_id", update.UserID).Msg("category ownership check ended with error")
			return models.Note{}, err
		}
		if !ok {
			return models.Note{}, ErrForbidden
		}

		update.Categories = &distinct
	}

	for attempt := 0; attempt < titleRetryAttempts; attempt++ {
		if update.Title != nil {
			uniqueTitle, err := computeUniqueTitle(ctx, s.noteRepository, update.UserID, *update.Title, update.ID)
			if err != nil {
				return models.Note{}, err
			}
			update.Title = &uniqueTitle
		}

		updated, err := s.noteRepository.UpdateNote(ctx, update)
		if errors.Is(err, store.ErrNoteTitleTaken) && update.Title != nil {
			continue
		}
		if err != nil {
			if errors.Is(err, store.ErrNoteNotFound) {
				return models.Note{}, err
			}

			log.Err(err).Str("id", update.ID).Msg("note update ended with error")
			return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
		}

		return updated, nil
	}

	return models.Note{}, fmt.Errorf("note update ended with error: %w", store.ErrNoteTitleTaken)
}

// Delete removes the owner's note permanently. Categories referenced by the
// note are untouched.
func (s *noteService) Delete(ctx context.Context, id, ownerID string) error {
	log := logger.FromContext(ctx)

	if !isWellFormedID(id) {
		return ErrInvalidID
	}

	if err := s.noteRepository.DeleteNote(ctx, id, ownerID); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return err
		}

		log.Err(err).Str("id", id).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}
