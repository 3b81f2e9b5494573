package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/ui/prompt"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

// baseDependencies are the npm packages every Ignix UI component relies on.
var baseDependencies = []string{"clsx", "tailwind-merge", "framer-motion", "class-variance-authority"}

// utilsItem is the registry component holding the shared cn() helper.
const (
	utilsItem = "utils"
	utilsFile = "utils.ts"
)

func newInitCmd() *cobra.Command {
	var (
		componentsDir string
		themesDir     string
		javascript    bool
		force         bool
		skipInstall   bool
		yes           bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Initialize Ignix UI in your project",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Initialize Ignix UI in the current directory.

Creates ignix.toml, the components and themes directories and the shared
utils helper, then installs the base dependencies with the project's package
manager (detected from its lockfile).

When ignix.toml already exists and the command runs in a terminal, init asks
before overwriting it. Use --force to overwrite without asking or --yes to
never ask.`,
		Example: `  ignix init                               # TypeScript project, default directories
  ignix init --js                          # JavaScript project
  ignix init --components-dir src/ui       # Custom components directory
  ignix init --skip-install                # Don't run the package manager`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cfg := project.Default()
			if componentsDir != "" {
				cfg.ComponentsDir = componentsDir
			}
			if themesDir != "" {
				cfg.ThemesDir = themesDir
			}
			if javascript {
				cfg.TypeScript = false
				cfg.UtilsPath = strings.TrimSuffix(cfg.UtilsPath, ".ts") + ".js"
			}

			root := config.WorkDirFromContext(ctx)
			p, err := project.Create(root, cfg, force)
			if errors.Is(err, project.ErrAlreadyInitialized) && !yes && isTerminal(os.Stdin) && isTerminal(os.Stderr) {
				res, cerr := prompt.Confirm(ctx, project.FileName+" already exists. Overwrite it?")
				if cerr != nil {
					return cerr
				}
				if !res.Confirmed {
					log.FromContext(ctx).Println("Cancelled.")
					return nil
				}
				p, err = project.Create(root, cfg, true)
			}
			if err != nil {
				if errors.Is(err, project.ErrAlreadyInitialized) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}

			client, err := newRegistryClient(ctx, false)
			if err != nil {
				return err
			}
			if err := setupProject(ctx, client, p); err != nil {
				return err
			}

			if !skipInstall {
				if err := installDependencies(ctx, client, p, baseDependencies); err != nil {
					return err
				}
			}

			out.Println(styles.Done("Initialized Ignix UI in " + p.Root))
			out.Println()
			out.Println("Next steps:")
			out.Println("  ignix add component button   # add your first component")
			out.Println("  ignix themes                 # pick a theme")
			return nil
		},
	}

	cmd.Flags().StringVar(&componentsDir, "components-dir", "", "Directory for components (default: src/components/ui)")
	cmd.Flags().StringVar(&themesDir, "themes-dir", "", "Directory for themes (default: src/themes)")
	cmd.Flags().BoolVar(&javascript, "js", false, "Use JavaScript instead of TypeScript")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing ignix.toml")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Don't install base dependencies")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Never prompt; fail if ignix.toml already exists")

	return cmd
}

// setupProject creates the project directories and writes the utils helper
// from the registry. A registry without the helper only produces a warning.
func setupProject(ctx context.Context, client *registry.Client, p *project.Project) error {
	l := log.FromContext(ctx)

	unlock, err := project.Lock(p.Root)
	if err != nil {
		return err
	}
	defer unlock()

	for _, ns := range project.Namespaces {
		if err := os.MkdirAll(p.Dir(ns), 0o755); err != nil {
			return fmt.Errorf("create %s directory: %w", ns, err)
		}
	}

	var data []byte
	err = withSpinner(ctx, "Fetching utils helper...", func() error {
		var err error
		data, err = client.File(ctx, project.Component, utilsItem, utilsFile)
		return err
	})
	if errors.Is(err, registry.ErrNotFound) {
		l.Printf("Warning: registry has no %s helper, skipping %s\n", utilsItem, p.Config.UtilsPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch utils helper: %w", err)
	}

	written, err := newInstaller(ctx, client, p).WriteFile(filepath.FromSlash(p.Config.UtilsPath), data)
	if err != nil {
		return fmt.Errorf("write utils helper: %w", err)
	}
	if written {
		l.Debug("wrote utils helper", "path", p.Config.UtilsPath)
	}
	return nil
}

// installDependencies installs deps with the project's package manager,
// skipping packages already in package.json.
func installDependencies(ctx context.Context, client *registry.Client, p *project.Project, deps []string) error {
	out := output.FromContext(ctx)
	in := newInstaller(ctx, client, p)

	var installed []string
	err := withSpinner(ctx, "Installing dependencies...", func() error {
		var err error
		installed, err = in.InstallDependencies(ctx, deps)
		return err
	})
	if err != nil {
		return err
	}
	if len(installed) > 0 {
		out.Println(styles.Done("Installed " + strings.Join(installed, ", ")))
	}
	return nil
}
