package snippet

import (
	"sort"
	"strings"
)

// SortField names a sortable snippet field.
type SortField string

// Sortable fields.
const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
	SortByLanguage  SortField = "language"
	SortByCategory  SortField = "category"
	SortByFavorite  SortField = "favorite"
)

// ValidSortFields lists the supported sort field values.
var ValidSortFields = []SortField{
	SortByCreatedAt, SortByUpdatedAt, SortByTitle,
	SortByLanguage, SortByCategory, SortByFavorite,
}

// IsValid reports whether f is a supported sort field.
func (f SortField) IsValid() bool {
	for _, valid := range ValidSortFields {
		if f == valid {
			return true
		}
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions. Ascending is the default.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter is the criteria object for filtering and sorting a query.
// All fields are optional; supplied criteria combine with AND logic.
type Filter struct {
	Query     string    // Case-insensitive substring over title OR description OR code
	Language  Language  // Exact match
	Category  Category  // Exact match
	Tags      []string  // Match if at least one tag in common (OR); empty = no filter
	Favorite  *bool     // Exact match; nil = no filter
	SortBy    SortField // Empty = no sorting, insertion order preserved
	SortOrder SortOrder // Defaults to ascending
}

// Matches reports whether s satisfies every supplied criterion of f.
func (f *Filter) Matches(s *Snippet) bool {
	if f.Query != "" && !matchesQuery(s, f.Query) {
		return false
	}
	if f.Language != "" && s.Language != f.Language {
		return false
	}
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(s.Tags, f.Tags) {
		return false
	}
	if f.Favorite != nil && s.Favorite != *f.Favorite {
		return false
	}
	return true
}

// matchesQuery tests a case-insensitive substring against title, description, and code.
func matchesQuery(s *Snippet, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Description), q) ||
		strings.Contains(strings.ToLower(s.Code), q)
}

// hasAnyTag reports whether tags and want share at least one element.
func hasAnyTag(tags, want []string) bool {
	for _, w := range want {
		for _, t := range tags {
			if t == w {
				return true
			}
		}
	}
	return false
}

// comparator returns negative, zero, or positive for a < b, a == b, a > b
// in ascending order.
type comparator func(a, b *Snippet) int

// comparators maps each sortable field to its typed comparator.
// Strings compare case-insensitively; booleans compare false < true;
// timestamps compare by instant.
var comparators = map[SortField]comparator{
	SortByCreatedAt: func(a, b *Snippet) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortByUpdatedAt: func(a, b *Snippet) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
	SortByTitle:     func(a, b *Snippet) int { return compareFolded(a.Title, b.Title) },
	SortByLanguage:  func(a, b *Snippet) int { return compareFolded(string(a.Language), string(b.Language)) },
	SortByCategory:  func(a, b *Snippet) int { return compareFolded(string(a.Category), string(b.Category)) },
	SortByFavorite: func(a, b *Snippet) int {
		if a.Favorite == b.Favorite {
			return 0
		}
		if !a.Favorite {
			return -1
		}
		return 1
	},
}

// compareFolded compares two strings case-insensitively.
func compareFolded(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Sort orders items in place by the given field and order.
// The sort is stable: ties preserve relative input order. Descending
// reverses the ascending comparator's pairwise result, which keeps the
// stability characteristics intact.
func Sort(items []Snippet, field SortField, order SortOrder) {
	cmp, ok := comparators[field]
	if !ok {
		return // Unknown field: leave insertion order untouched
	}

	sort.SliceStable(items, func(i, j int) bool {
		c := cmp(&items[i], &items[j])
		if order == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

// Select returns the items matching f, sorted per f's sort criteria.
// Filtering happens before sorting; the input slice is not modified.
func Select(items []Snippet, f Filter) []Snippet {
	matched := make([]Snippet, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			matched = append(matched, items[i])
		}
	}

	if f.SortBy != "" {
		Sort(matched, f.SortBy, f.SortOrder)
	}

	return matched
}
