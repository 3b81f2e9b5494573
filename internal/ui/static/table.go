// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as the tables printed
// by "ignix list".
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

// ItemHeaders are the columns of the item table.
var ItemHeaders = []string{"NAME", "DESCRIPTION", "INSTALLED"}

// maxDescription truncates long descriptions in the item table.
const maxDescription = 60

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// ItemTableRow formats an item for the item table. The name links to the
// item's docs when hyperlinks is set.
func ItemTableRow(it registry.Item, installed, hyperlinks bool) []string {
	name := it.Name
	if hyperlinks && it.Docs != "" {
		name = styles.Link(it.Name, it.Docs, lipgloss.NewStyle())
	}
	desc := ansi.Truncate(it.Description, maxDescription, "…")
	if desc == "" {
		desc = styles.MutedStyle.Render("-")
	}
	return []string{name, desc, styles.Installed(installed)}
}

// RenderItems renders items as a table. isInstalled reports whether an
// item is present in the current project and may be nil.
func RenderItems(items []registry.Item, isInstalled func(name string) bool, hyperlinks bool) string {
	rows := make([][]string, len(items))
	for i, it := range items {
		installed := isInstalled != nil && isInstalled(it.Name)
		rows[i] = ItemTableRow(it, installed, hyperlinks)
	}
	return RenderTable(ItemHeaders, rows)
}
