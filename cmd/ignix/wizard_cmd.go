package main

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/interactive"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
	"github.com/100xmanas/ignix-ui/internal/ui/wizard/flows"
)

func newWizardCmd() *cobra.Command {
	var skipInstall bool

	cmd := &cobra.Command{
		Use:     "wizard",
		Short:   "Set up a project step by step",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Guided setup: pick the components directory, the language, a theme and
the components to add, review the summary and confirm.

In a project that already has ignix.toml the directory and language steps
are skipped. Nothing is changed until the summary is confirmed.`,
		Example: `  ignix wizard                  # Run the setup wizard
  ignix wizard --skip-install   # Don't run the package manager`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if !isTerminal(os.Stdin) || !isTerminal(os.Stderr) {
				return errors.New("the wizard needs a terminal (use 'ignix init' and 'ignix add' in scripts)")
			}

			p, err := findProjectOptional(ctx)
			if err != nil {
				return err
			}

			client, err := newRegistryClient(ctx, false)
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

			opts, err := flows.SetupInteractive(ctx, setupParams(ctx, p, idx))
			if err != nil {
				return err
			}
			if opts.Cancelled {
				l.Println(styles.Note(interactive.Cancelled))
				return nil
			}

			return applySetup(ctx, client, p, opts, skipInstall)
		},
	}

	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Don't install npm dependencies")

	return cmd
}

// setupParams builds the wizard parameters from the project (nil when not
// initialized) and the registry index.
func setupParams(ctx context.Context, p *project.Project, idx *registry.Index) flows.SetupWizardParams {
	params := flows.SetupWizardParams{
		ProjectDir:    config.WorkDirFromContext(ctx),
		ComponentsDir: project.Default().ComponentsDir,
		Themes:        itemInfos(idx.Items(project.Theme)),
		Components:    itemInfos(idx.Items(project.Component)),
	}
	if p != nil {
		params.ProjectDir = p.Root
		params.Initialized = true
		params.ComponentsDir = p.Config.ComponentsDir
		params.CurrentTheme = p.Config.Theme
	}
	return params
}

func itemInfos(items []registry.Item) []flows.ItemInfo {
	infos := make([]flows.ItemInfo, len(items))
	for i, it := range items {
		infos[i] = flows.ItemInfo{Name: it.Name, Description: it.Description}
	}
	return infos
}

// applySetup performs the confirmed wizard choices: init when needed, the
// theme, the components, then a single dependency install.
func applySetup(ctx context.Context, client *registry.Client, p *project.Project, opts flows.SetupOptions, skipInstall bool) error {
	out := output.FromContext(ctx)

	var (
		deps    []string
		created bool
		added   []string
	)

	var stages []stage
	if p == nil {
		stages = append(stages, stage{
			message: "Initializing project...",
			run: func(ctx context.Context) error {
				cfg := project.Default()
				cfg.ComponentsDir = opts.ComponentsDir
				cfg.TypeScript = opts.TypeScript
				if !opts.TypeScript {
					cfg.UtilsPath = strings.TrimSuffix(cfg.UtilsPath, ".ts") + ".js"
				}
				var err error
				p, err = project.Create(config.WorkDirFromContext(ctx), cfg, false)
				if err != nil {
					return err
				}
				created = true
				deps = append(deps, baseDependencies...)
				return setupProject(ctx, client, p)
			},
		})
	}

	if opts.Theme != "" {
		stages = append(stages, stage{
			message: "Adding theme " + opts.Theme + "...",
			run: func(ctx context.Context) error {
				// applyTheme installs dependencies itself unless told not to
				theme, err := applyTheme(ctx, client, p, opts.Theme, true)
				if err != nil {
					return err
				}
				item, err := client.Find(ctx, project.Theme, theme)
				if err != nil {
					return err
				}
				deps = append(deps, item.Dependencies...)
				added = append(added, "theme "+theme)
				return nil
			},
		})
	}

	if len(opts.Components) > 0 {
		stages = append(stages, stage{
			message: "Adding " + strings.Join(opts.Components, ", ") + "...",
			run: func(ctx context.Context) error {
				res, err := newInstaller(ctx, client, p).Install(ctx, project.Component, opts.Components)
				if err != nil {
					return err
				}
				deps = append(deps, res.Dependencies...)
				added = append(added, "components "+strings.Join(res.Items, ", "))
				return nil
			},
		})
	}

	if !skipInstall {
		stages = append(stages, stage{
			message: "Installing dependencies...",
			run: func(ctx context.Context) error {
				slices.Sort(deps)
				deps = slices.Compact(deps)
				if len(deps) == 0 {
					return nil
				}
				return installDependencies(ctx, client, p, deps)
			},
		})
	}

	if err := runStages(ctx, stages); err != nil {
		return err
	}

	if created {
		out.Println(styles.Done("Initialized Ignix UI in " + p.Root))
	}
	for _, a := range added {
		out.Println(styles.Done("Added " + a))
	}
	if !created && len(added) == 0 {
		out.Println(styles.Note("Nothing to do."))
	}
	return nil
}
