package registry

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// itemSource implements fuzzy.Source over item names.
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Name }
func (s itemSource) Len() int            { return len(s) }

// Search fuzzy-filters items by name, best match first.
// An empty query returns all items sorted by name.
func Search(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		out := slices.Clone(items)
		slices.SortFunc(out, func(a, b Item) int { return strings.Compare(a.Name, b.Name) })
		return out
	}

	matches := fuzzy.FindFrom(query, itemSource(items))
	out := make([]Item, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}
