package pipeline

import (
	"slices"
	"strings"

	"rhystmorgan/triaContacts/internal/models"
)

// Query is everything besides the collection that decides what is visible.
type Query struct {
	Sort   SortOption
	Tag    string
	Search string
}

// Active reports whether the query hides any contact on its own.
func (q Query) Active() bool {
	return q.Tag != "" || strings.TrimSpace(q.Search) != ""
}

// Apply runs sort, tag filter and search in that order.
func Apply(contacts []models.Contact, q Query) []models.Contact {
	return Search(FilterByTag(Sort(contacts, q.Sort), q.Tag), q.Search)
}

// FilterByTag keeps contacts carrying exactly tag. An empty tag keeps all.
func FilterByTag(contacts []models.Contact, tag string) []models.Contact {
	if tag == "" {
		return contacts
	}

	filtered := make([]models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if contact.HasTag(tag) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// Search keeps contacts whose name, email or phone contains the trimmed query,
// ignoring case. A blank query keeps all.
func Search(contacts []models.Contact, query string) []models.Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return contacts
	}

	filtered := make([]models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if strings.Contains(strings.ToLower(contact.Name), query) ||
			strings.Contains(strings.ToLower(contact.Email), query) ||
			strings.Contains(strings.ToLower(contact.Phone), query) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// Tags returns every distinct non-blank tag in the collection, sorted.
func Tags(contacts []models.Contact) []string {
	seen := make(map[string]struct{})
	var tags []string

	for _, contact := range contacts {
		for _, tag := range contact.Tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	slices.Sort(tags)
	return tags
}
