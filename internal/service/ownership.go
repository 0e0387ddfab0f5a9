package service

import (
	"context"
	"fmt"

	"github.com/mkarev/go-note-keeper/internal/store"
)

// validateCategoryOwnership reports whether every distinct id in categoryIDs
// resolves to a category owned by ownerID. Vacuously true for an empty set.
// A single foreign or unknown id fails the whole set; ids are never silently
// dropped.
func validateCategoryOwnership(ctx context.Context, categories store.CategoryRepository, categoryIDs []string, ownerID string) (bool, error) {
	distinct := dedupeIDs(categoryIDs)
	if len(distinct) == 0 {
		return true, nil
	}

	owned, err := categories.FindCategoriesByIDs(ctx, distinct, ownerID)
	if err != nil {
		return false, fmt.Errorf("category ownership check failed: %w", err)
	}

	return len(owned) == len(distinct), nil
}
