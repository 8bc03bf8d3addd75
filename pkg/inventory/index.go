package inventory

import "fmt"

// Index maps an entity's identity to its display name.
type Index map[string]string

// NewIndex builds an identity→display-name index in one pass. Identities are
// unique within a collection, so later entries never collide with earlier
// ones.
func NewIndex[T any](items []T, id, name func(T) string) Index {
	ix := make(Index, len(items))
	for _, item := range items {
		ix[id(item)] = name(item)
	}
	return ix
}

// Resolve returns the display name for id, or a placeholder carrying the raw
// ID when the entity has been removed from the directory since it was
// referenced.
func (ix Index) Resolve(id string) string {
	if name, ok := ix[id]; ok {
		return name
	}
	return fmt.Sprintf("#DELETED(%s)", id)
}

// ResolvePrincipal resolves an assignment principal by type. Types other
// than USER and GROUP are surfaced as unknown regardless of index contents.
func ResolvePrincipal(users, groups Index, principalType, principalID string) string {
	switch principalType {
	case "USER":
		return users.Resolve(principalID)
	case "GROUP":
		return groups.Resolve(principalID)
	default:
		return fmt.Sprintf("#UNKNOWN(%s)", principalID)
	}
}
