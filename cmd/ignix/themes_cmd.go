package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/interactive"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/ui/prompt"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

func newThemesCmd() *cobra.Command {
	var (
		set         string
		current     bool
		skipInstall bool
	)

	cmd := &cobra.Command{
		Use:     "themes",
		Short:   "Manage themes",
		Aliases: []string{"theme"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Pick the project's active theme.

Without flags, shows the available themes with the active one highlighted.
The chosen theme is added to the project if needed and recorded in ignix.toml.`,
		Example: `  ignix themes                  # Pick a theme interactively
  ignix themes --set ignix-dark # Set the theme without prompting
  ignix themes --current        # Print the active theme`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			p, err := findProject(ctx)
			if err != nil {
				return err
			}

			if current {
				if p.Config.Theme == "" {
					l.Println("No theme set (run 'ignix themes' to pick one)")
					return nil
				}
				out.Println(p.Config.Theme)
				return nil
			}

			client, err := newRegistryClient(ctx, false)
			if err != nil {
				return err
			}

			name := set
			if name == "" {
				if !isTerminal(os.Stdin) || !isTerminal(os.Stderr) {
					return errors.New("no theme given: use --set <name> or run in a terminal")
				}
				var ok bool
				name, ok, err = pickTheme(ctx, client, p.Config.Theme)
				if err != nil {
					return err
				}
				if !ok {
					l.Println(styles.Note(interactive.Cancelled))
					return nil
				}
			}

			theme, err := applyTheme(ctx, client, p, name, skipInstall)
			if err != nil {
				return err
			}
			out.Println(styles.Done("Active theme: " + theme))
			return nil
		},
	}

	cmd.Flags().StringVarP(&set, "set", "s", "", "Set the active theme")
	cmd.Flags().BoolVarP(&current, "current", "c", false, "Print the active theme")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Don't install npm dependencies of the theme")
	cmd.MarkFlagsMutuallyExclusive("set", "current")

	cmd.RegisterFlagCompletionFunc("set", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeItemNames(cmd.Context(), project.Theme), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// pickTheme shows the registry themes with current pre-highlighted.
func pickTheme(ctx context.Context, client *registry.Client, current string) (string, bool, error) {
	var idx *registry.Index
	err := withSpinner(ctx, "Fetching themes...", func() error {
		var err error
		idx, err = client.Index(ctx)
		return err
	})
	if err != nil {
		return "", false, err
	}

	themes := idx.Items(project.Theme)
	if len(themes) == 0 {
		return "", false, errors.New("registry has no themes")
	}

	opts := make([]prompt.Option, len(themes))
	initial := 0
	for i, t := range themes {
		opts[i] = prompt.Option{Label: t.Name, Description: t.Description}
		if strings.EqualFold(t.Name, current) {
			initial = i
		}
	}

	res, err := prompt.Select(ctx, "Choose a theme", opts, initial)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, nil
		}
		return "", false, err
	}
	if res.Cancelled {
		return "", false, nil
	}
	return themes[res.Index].Name, true, nil
}

// applyTheme adds the theme when it is not installed yet and records it
// as the project's active theme. It returns the registry spelling of name.
func applyTheme(ctx context.Context, client *registry.Client, p *project.Project, name string, skipInstall bool) (string, error) {
	item, err := client.Find(ctx, project.Theme, name)
	if err != nil {
		return "", err
	}

	if !p.IsInstalled(project.Theme, item.Name) {
		res, err := installItems(ctx, newInstaller(ctx, client, p), project.Theme, []string{item.Name})
		if err != nil {
			return "", err
		}
		if !skipInstall && len(res.Dependencies) > 0 {
			if err := installDependencies(ctx, client, p, res.Dependencies); err != nil {
				return "", err
			}
		}
	}

	unlock, err := project.Lock(p.Root)
	if err != nil {
		return "", err
	}
	defer unlock()

	p.Config.Theme = item.Name
	if err := p.Save(); err != nil {
		return "", err
	}
	return item.Name, nil
}
