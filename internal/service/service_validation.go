package service

import "github.com/google/uuid"

// isWellFormedID reports whether id parses as a UUID. Malformed ids are
// rejected before they ever reach the store.
func isWellFormedID(id string) bool {
	return uuid.Validate(id) == nil
}

// dedupeIDs returns the distinct ids in first-seen order.
func dedupeIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	return distinct
}
