package main

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/scaffold"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

func newAddCmd() *cobra.Command {
	var (
		force       bool
		dryRun      bool
		skipInstall bool
		refresh     bool
		copySnippet bool
	)

	cmd := &cobra.Command{
		Use:     "add <component|theme> <name>...",
		Short:   "Add components or themes",
		Aliases: []string{"a"},
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(2),
		Long: `Add components or themes from the registry to your project.

Registry dependencies are added first. Existing files are kept unless
--force is given. npm dependencies of the added items are installed with
the project's package manager.`,
		Example: `  ignix add component button card   # Add two components
  ignix add theme ignix-dark        # Add a theme
  ignix add component dialog -n     # Preview without writing
  ignix add component button --copy # Copy the import line to the clipboard`,
		ValidArgsFunction: completeAddArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			ns, err := project.ParseNamespace(args[0])
			if err != nil {
				return err
			}

			p, err := findProject(ctx)
			if err != nil {
				return err
			}

			client, err := newRegistryClient(ctx, refresh)
			if err != nil {
				return err
			}

			in := newInstaller(ctx, client, p)
			in.Force = force
			in.DryRun = dryRun

			res, err := installItems(ctx, in, ns, args[1:])
			if err != nil {
				return err
			}

			if !skipInstall && len(res.Dependencies) > 0 {
				if dryRun {
					missing := scaffold.MissingDependencies(p.Root, res.Dependencies)
					if len(missing) > 0 {
						output.FromContext(ctx).Println("Would install: " + strings.Join(missing, ", "))
					}
				} else if err := installDependencies(ctx, client, p, res.Dependencies); err != nil {
					return err
				}
			}

			if copySnippet && ns == project.Component && !dryRun {
				snippet := importSnippet(p, args[1])
				if err := clipboard.WriteAll(snippet); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println(styles.Note("Copied to clipboard: " + snippet))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be written")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Don't install npm dependencies")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the registry index")
	cmd.Flags().BoolVar(&copySnippet, "copy", false, "Copy the import line of the first component to the clipboard")

	return cmd
}

// installItems runs the installer behind a spinner and prints the result.
func installItems(ctx context.Context, in *scaffold.Installer, ns project.Namespace, names []string) (*scaffold.Result, error) {
	out := output.FromContext(ctx)

	var res *scaffold.Result
	err := withSpinner(ctx, fmt.Sprintf("Adding %s...", strings.Join(names, ", ")), func() error {
		var err error
		res, err = in.Install(ctx, ns, names)
		return err
	})
	if err != nil {
		return nil, err
	}

	verb := "Added"
	if in.DryRun {
		verb = "Would add"
	}
	out.Println(styles.Done(fmt.Sprintf("%s %s %s", verb, ns, strings.Join(res.Items, ", "))))
	for _, f := range res.Written {
		out.Println("  " + styles.Arrow + " " + f)
	}
	if n := len(res.Skipped); n > 0 {
		out.Println(styles.Note(fmt.Sprintf("  Skipped %d existing file(s) (use --force to overwrite)", n)))
	}
	return res, nil
}

// importSnippet returns the import line for a component, assuming the
// usual "@/" alias for the src directory.
func importSnippet(p *project.Project, name string) string {
	dir := strings.TrimPrefix(path.Clean(p.Config.ComponentsDir), "src/")
	return fmt.Sprintf("import { %s } from \"@/%s\";", componentName(name), path.Join(dir, strings.ToLower(name)))
}

// componentName converts a registry name like "dropdown-menu" to "DropdownMenu".
func componentName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// completeAddArgs completes the namespace, then item names from the registry.
func completeAddArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeNamespaces(cmd, args, toComplete)
	}
	ns, err := project.ParseNamespace(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeItemNames(cmd.Context(), ns), cobra.ShellCompDirectiveNoFileComp
}

func completeNamespaces(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"component", "theme"}, cobra.ShellCompDirectiveNoFileComp
}

func completeItemNames(ctx context.Context, ns project.Namespace) []string {
	client, err := newRegistryClient(ctx, false)
	if err != nil {
		return nil
	}
	idx, err := client.Index(ctx)
	if err != nil {
		return nil
	}
	var names []string
	for _, it := range idx.Items(ns) {
		names = append(names, it.Name)
	}
	return names
}
