package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	items := []Item{{Name: "card"}, {Name: "button"}, {Name: "button-group"}, {Name: "dialog"}}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty sorts by name", "", []string{"button", "button-group", "card", "dialog"}},
		{"whitespace only", "  ", []string{"button", "button-group", "card", "dialog"}},
		{"exact first", "button", []string{"button", "button-group"}},
		{"fuzzy", "dlg", []string{"dialog"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, names(Search(items, tt.query))); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}
