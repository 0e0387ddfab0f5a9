// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/store"
	"github.com/mkarev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.CategoryRepository
// ─────────────────────────────────────────────

type mockCategoryRepository struct {
	createFn     func(ctx context.Context, category models.Category) (models.Category, error)
	findByIDFn   func(ctx context.Context, id, userID string) (models.Category, error)
	findByNameFn func(ctx context.Context, name, userID string) (models.Category, error)
	findByIDsFn  func(ctx context.Context, ids []string, userID string) ([]models.Category, error)
	findAllFn    func(ctx context.Context, userID string) ([]models.CategoryWithCount, error)
	updateNameFn func(ctx context.Context, id, userID, name string) (models.Category, error)
	deleteFn     func(ctx context.Context, id, userID string) (int64, error)
}

func (m *mockCategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return category, nil
}

func (m *mockCategoryRepository) FindCategoryByID(ctx context.Context, id, userID string) (models.Category, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id, userID)
	}
	return models.Category{}, store.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindCategoryByName(ctx context.Context, name, userID string) (models.Category, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, name, userID)
	}
	return models.Category{}, store.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindCategoriesByIDs(ctx context.Context, ids []string, userID string) ([]models.Category, error) {
	if m.findByIDsFn != nil {
		return m.findByIDsFn(ctx, ids, userID)
	}
	return nil, nil
}

func (m *mockCategoryRepository) FindAllCategories(ctx context.Context, userID string) ([]models.CategoryWithCount, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCategoryRepository) UpdateCategoryName(ctx context.Context, id, userID, name string) (models.Category, error) {
	if m.updateNameFn != nil {
		return m.updateNameFn(ctx, id, userID, name)
	}
	return models.Category{}, store.ErrCategoryNotFound
}

func (m *mockCategoryRepository) DeleteCategory(ctx context.Context, id, userID string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return 0, store.ErrCategoryNotFound
}

func newTestCategoryService(categories *mockCategoryRepository) *categoryService {
	return &categoryService{
		categoryRepository: categories,
		logger:             logger.Nop(),
	}
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestCategoryService_Create_New(t *testing.T) {
	categories := &mockCategoryRepository{
		createFn: func(_ context.Context, category models.Category) (models.Category, error) {
			category.ID = "c-1"
			return category, nil
		},
	}
	svc := newTestCategoryService(categories)

	category, created, err := svc.Create(context.Background(), "  Work  ", "u-1")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Work", category.Name, "name must be trimmed before persisting")
	assert.Equal(t, "c-1", category.ID)
}

func TestCategoryService_Create_ExistingIsIdempotent(t *testing.T) {
	createCalled := false
	categories := &mockCategoryRepository{
		findByNameFn: func(_ context.Context, name, userID string) (models.Category, error) {
			return models.Category{ID: "c-1", UserID: userID, Name: name}, nil
		},
		createFn: func(_ context.Context, category models.Category) (models.Category, error) {
			createCalled = true
			return category, nil
		},
	}
	svc := newTestCategoryService(categories)

	category, created, err := svc.Create(context.Background(), "Work", "u-1")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "c-1", category.ID)
	assert.False(t, createCalled)
}

func TestCategoryService_Create_LostRaceSurfacesWinner(t *testing.T) {
	lookups := 0
	categories := &mockCategoryRepository{
		findByNameFn: func(_ context.Context, name, userID string) (models.Category, error) {
			lookups++
			if lookups == 1 {
				return models.Category{}, store.ErrCategoryNotFound
			}
			return models.Category{ID: "c-winner", UserID: userID, Name: name}, nil
		},
		createFn: func(_ context.Context, _ models.Category) (models.Category, error) {
			return models.Category{}, store.ErrCategoryAlreadyExists
		},
	}
	svc := newTestCategoryService(categories)

	category, created, err := svc.Create(context.Background(), "Work", "u-1")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "c-winner", category.ID)
}

func TestCategoryService_Create_NameValidation(t *testing.T) {
	svc := newTestCategoryService(&mockCategoryRepository{})

	_, _, err := svc.Create(context.Background(), "   ", "u-1")
	assert.ErrorIs(t, err, ErrEmptyCategoryName)

	_, _, err = svc.Create(context.Background(), strings.Repeat("x", models.MaxCategoryNameLength+1), "u-1")
	assert.ErrorIs(t, err, ErrCategoryNameTooLong)

	// the cap is inclusive
	_, _, err = svc.Create(context.Background(), strings.Repeat("x", models.MaxCategoryNameLength), "u-1")
	assert.NoError(t, err)
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestCategoryService_Delete_ReportsNotesAffected(t *testing.T) {
	id := uuid.NewString()
	categories := &mockCategoryRepository{
		deleteFn: func(_ context.Context, _, _ string) (int64, error) {
			return 4, nil
		},
	}
	svc := newTestCategoryService(categories)

	notesAffected, err := svc.Delete(context.Background(), id, "u-1")

	require.NoError(t, err)
	assert.Equal(t, int64(4), notesAffected)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	svc := newTestCategoryService(&mockCategoryRepository{})

	_, err := svc.Delete(context.Background(), uuid.NewString(), "u-1")

	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestCategoryService_Delete_MalformedID(t *testing.T) {
	svc := newTestCategoryService(&mockCategoryRepository{})

	_, err := svc.Delete(context.Background(), "not-a-uuid", "u-1")

	assert.ErrorIs(t, err, ErrInvalidID)
}

// ─────────────────────────────────────────────
// Update / lookups
// ─────────────────────────────────────────────

func TestCategoryService_Update_TrimsAndDelegates(t *testing.T) {
	id := uuid.NewString()
	categories := &mockCategoryRepository{
		updateNameFn: func(_ context.Context, gotID, userID, name string) (models.Category, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, "Renamed", name)
			return models.Category{ID: gotID, UserID: userID, Name: name}, nil
		},
	}
	svc := newTestCategoryService(categories)

	category, err := svc.Update(context.Background(), id, "u-1", " Renamed ")

	require.NoError(t, err)
	assert.Equal(t, "Renamed", category.Name)
}

func TestCategoryService_GetByID_MalformedID(t *testing.T) {
	svc := newTestCategoryService(&mockCategoryRepository{})

	_, err := svc.GetByID(context.Background(), "42", "u-1")

	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCategoryService_List_Delegates(t *testing.T) {
	categories := &mockCategoryRepository{
		findAllFn: func(_ context.Context, _ string) ([]models.CategoryWithCount, error) {
			return []models.CategoryWithCount{
				{Category: models.Category{ID: "c-1", Name: "Work"}, NoteCount: 2},
			}, nil
		},
	}
	svc := newTestCategoryService(categories)

	list, err := svc.List(context.Background(), "u-1")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].NoteCount)
}
