package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/mkarev/go-note-keeper/internal/store"
)

// titleSuffixPattern matches a trailing " (N)" counter suffix: a space, an
// open paren, one or more digits, a close paren, at the very end.
var titleSuffixPattern = regexp.MustCompile(` \(\d+\)$`)

// stripTitleSuffix removes one trailing " (N)" suffix so that repeated saves
// of "Plan (1)" still derive from the base "Plan".
func stripTitleSuffix(title string) string {
	return titleSuffixPattern.ReplaceAllString(title, "")
}

// computeUniqueTitle resolves the title a note will actually be stored
// under. It strips any trailing counter suffix from the proposal, then
// probes "base", "base (1)", "base (2)", ... until a title is free for the
// owner. The note with id excludeID is ignored by the probe so a note never
// collides with itself.
//
// Probe and insert are not serialized; the unique index on (owner, title)
// backstops concurrent saves and callers retry on store.ErrNoteTitleTaken.
func computeUniqueTitle(ctx context.Context, notes store.NoteRepository, ownerID, proposed, excludeID string) (string, error) {
	base := stripTitleSuffix(proposed)

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := notes.TitleExists(ctx, ownerID, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("title collision check failed: %w", err)
		}
		if !exists {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s (%d)", base, counter)
	}
}
