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

// categoryService is the concrete implementation of CategoryService.
type categoryService struct {
	categoryRepository store.CategoryRepository
	logger             *logger.Logger
}

// NewCategoryService constructs a CategoryService wired to the given
// repository.
func NewCategoryService(categoryRepository store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

// Create looks the name up first and returns the existing record when the
// owner already has it, so repeated creates are idempotent. The boolean
// reports whether a new record was created.
func (s *categoryService) Create(ctx context.Context, name, ownerID string) (models.Category, bool, error) {
	log := logger.FromContext(ctx)

	name, err := normalizeCategoryName(name)
	if err != nil {
		return models.Category{}, false, err
	}

	existing, err := s.categoryRepository.FindCategoryByName(ctx, name, ownerID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrCategoryNotFound) {
		log.Err(err).Str("name", name).Msg("category search by name failed")
		return models.Category{}, false, fmt.Errorf("category search by name failed: %w", err)
	}

	created, err := s.categoryRepository.CreateCategory(ctx, models.Category{
		UserID: ownerID,
		Name:   name,
	})
	if err != nil {
		// A concurrent create can still win the race after the lookup;
		// surface the winner instead of failing.
		if errors.Is(err, store.ErrCategoryAlreadyExists) {
			existing, findErr := s.categoryRepository.FindCategoryByName(ctx, name, ownerID)
			if findErr == nil {
				return existing, false, nil
			}
		}

		log.Err(err).Str("name", name).Msg("category creation ended with error")
		return models.Category{}, false, fmt.Errorf("category creation ended with error: %w", err)
	}

	return created, true, nil
}

// List returns all of the owner's categories with live note counts.
func (s *categoryService) List(ctx context.Context, ownerID string) ([]models.CategoryWithCount, error) {
	categories, err := s.categoryRepository.FindAllCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("category listing ended with error: %w", err)
	}

	return categories, nil
}

// GetByID returns the owner's category with the given id.
func (s *categoryService) GetByID(ctx context.Context, id, ownerID string) (models.Category, error) {
	if !isWellFormedID(id) {
		return models.Category{}, ErrInvalidID
	}

	return s.categoryRepository.FindCategoryByID(ctx, id, ownerID)
}

// GetByName returns the owner's category with the exact name.
func (s *categoryService) GetByName(ctx context.Context, name, ownerID string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrEmptyCategoryName
	}

	return s.categoryRepository.FindCategoryByName(ctx, name, ownerID)
}

// Update renames the owner's category.
func (s *categoryService) Update(ctx context.Context, id, ownerID, name string) (models.Category, error) {
	if !isWellFormedID(id) {
		return models.Category{}, ErrInvalidID
	}

	name, err := normalizeCategoryName(name)
	if err != nil {
		return models.Category{}, err
	}

	return s.categoryRepository.UpdateCategoryName(ctx, id, ownerID, name)
}

// Delete removes the owner's category and pulls its reference out of every
// note. Notes themselves survive; only their category sets shrink.
func (s *categoryService) Delete(ctx context.Context, id, ownerID string) (int64, error) {
	log := logger.FromContext(ctx)

	if !isWellFormedID(id) {
		return 0, ErrInvalidID
	}

	notesAffected, err := s.categoryRepository.DeleteCategory(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return 0, err
		}

		log.Err(err).Str("id", id).Msg("category deletion ended with error")
		return 0, fmt.Errorf("category deletion ended with error: %w", err)
	}

	return notesAffected, nil
}

// normalizeCategoryName trims the name and enforces the length cap.
func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategoryName
	}
	if len([]rune(name)) > models.MaxCategoryNameLength {
		return "", ErrCategoryNameTooLong
	}

	return name, nil
}
