package pipeline

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rhystmorgan/triaContacts/internal/models"
)

type SortOption int

const (
	SortNameAsc SortOption = iota
	SortNameDesc
	SortRecentFirst
	SortOldestFirst
)

var ErrInvalidSortOption = errors.New("invalid sort option")

var sortOptionNames = map[SortOption]string{
	SortNameAsc:     "name-asc",
	SortNameDesc:    "name-desc",
	SortRecentFirst: "recent",
	SortOldestFirst: "oldest",
}

var sortOptionLabels = map[SortOption]string{
	SortNameAsc:     "Name A-Z",
	SortNameDesc:    "Name Z-A",
	SortRecentFirst: "Newest first",
	SortOldestFirst: "Oldest first",
}

func (o SortOption) String() string {
	if name, ok := sortOptionNames[o]; ok {
		return name
	}
	return fmt.Sprintf("SortOption(%d)", int(o))
}

func (o SortOption) Label() string {
	return sortOptionLabels[o]
}

// Next cycles through the options in declaration order.
func (o SortOption) Next() SortOption {
	return (o + 1) % SortOption(len(sortOptionNames))
}

func ParseSortOption(s string) (SortOption, error) {
	for option, name := range sortOptionNames {
		if name == s {
			return option, nil
		}
	}
	return SortNameAsc, fmt.Errorf("%w: %q (must be name-asc, name-desc, recent or oldest)", ErrInvalidSortOption, s)
}

// Sort returns a new, stably sorted slice. Contacts with equal keys keep their
// relative order.
func Sort(contacts []models.Contact, option SortOption) []models.Contact {
	sorted := slices.Clone(contacts)

	switch option {
	case SortNameAsc, SortNameDesc:
		// A Collator keeps internal buffers and must not be shared.
		collator := collate.New(language.English)
		sign := 1
		if option == SortNameDesc {
			sign = -1
		}
		slices.SortStableFunc(sorted, func(a, b models.Contact) int {
			return sign * collator.CompareString(a.Name, b.Name)
		})
	case SortRecentFirst:
		slices.SortStableFunc(sorted, func(a, b models.Contact) int {
			return cmp.Compare(b.CreatedAtMillis(), a.CreatedAtMillis())
		})
	case SortOldestFirst:
		slices.SortStableFunc(sorted, func(a, b models.Contact) int {
			return cmp.Compare(a.CreatedAtMillis(), b.CreatedAtMillis())
		})
	}

	return sorted
}
