package main

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/ui/static"
)

// ItemDisplay holds item info for JSON output
type ItemDisplay struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Docs         string   `json:"docs,omitempty"`
	Installed    bool     `json:"installed"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput    bool
		filter        string
		installedOnly bool
		refresh       bool
	)

	cmd := &cobra.Command{
		Use:               "list <component|theme>",
		Short:             "List available components or themes",
		Aliases:           []string{"ls"},
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNamespaces,
		Long: `List the components or themes of the registry.

Inside a project, the INSTALLED column shows what was already added.
Use --filter for a fuzzy search by name.`,
		Example: `  ignix list component               # All components
  ignix ls theme                     # All themes
  ignix list component -f btn        # Fuzzy filter by name
  ignix list component --installed   # Only what the project uses
  ignix list component --json        # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			ns, err := project.ParseNamespace(args[0])
			if err != nil {
				return err
			}

			var p *project.Project
			if installedOnly {
				p, err = findProject(ctx)
			} else {
				p, err = findProjectOptional(ctx)
			}
			if err != nil {
				return err
			}

			client, err := newRegistryClient(ctx, refresh)
			if err != nil {
				return err
			}

			var idx *registry.Index
			err = withSpinner(ctx, "Fetching registry...", func() error {
				var err error
				idx, err = client.Index(ctx)
				return err
			})
			if err != nil {
				return err
			}

			isInstalled := func(name string) bool {
				return p != nil && p.IsInstalled(ns, name)
			}

			items := registry.Search(idx.Items(ns), filter)
			if installedOnly {
				var kept []registry.Item
				for _, it := range items {
					if isInstalled(it.Name) {
						kept = append(kept, it)
					}
				}
				items = kept
			}

			if jsonOutput {
				display := make([]ItemDisplay, 0, len(items))
				for _, it := range items {
					display = append(display, ItemDisplay{
						Name:         it.Name,
						Description:  it.Description,
						Dependencies: it.Dependencies,
						Docs:         it.Docs,
						Installed:    isInstalled(it.Name),
					})
				}
				return out.JSON(display)
			}

			if len(items) == 0 {
				l.Printf("No %s found\n", ns.Plural())
				return nil
			}

			hyperlinks := false
			if f, ok := out.Writer().(*os.File); ok {
				hyperlinks = isTerminal(f)
			}
			_, err = lipgloss.Fprint(out.Writer(), static.RenderItems(items, isInstalled, hyperlinks))
			if err != nil {
				return fmt.Errorf("write table: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Fuzzy filter by name")
	cmd.Flags().BoolVar(&installedOnly, "installed", false, "Only show items installed in the project")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the registry index")

	return cmd
}
