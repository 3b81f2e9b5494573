package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/scaffold"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage ignix configuration.

Global config: ~/.config/ignix/config.toml (override with IGNIX_CONFIG)
Project config: ignix.toml (written by 'ignix init')`,
		Example: `  ignix config init     # Create default global config
  ignix config show     # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  ignix config init      # Create global config
  ignix config init -f   # Overwrite existing config
  ignix config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if stdout {
				out.Print(config.DefaultFile())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Println(styles.Done("Created config file: " + path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

// configDisplay is the JSON form of the effective config.
type configDisplay struct {
	File           string             `json:"file"`
	Registry       string             `json:"registry"`
	PackageManager string             `json:"package_manager"`
	Timeout        string             `json:"timeout"`
	Theme          config.ThemeConfig `json:"theme"`
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration, including environment overrides
(IGNIX_REGISTRY) and defaults for unset keys.`,
		Example: `  ignix config show          # Show config in text format
  ignix config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := configFromContext(ctx)

			path, err := config.Path()
			if err != nil {
				return err
			}

			pm := cfg.PackageManager
			if pm == "" {
				pm = "detect (" + scaffold.DetectPackageManager(config.WorkDirFromContext(ctx)) + " here)"
			}

			d := configDisplay{
				File:           path,
				Registry:       cfg.Registry,
				PackageManager: pm,
				Timeout:        cfg.Timeout.String(),
				Theme:          cfg.Theme,
			}

			if jsonOutput {
				return out.JSON(d)
			}

			file := d.File
			if _, err := os.Stat(path); err != nil {
				file += " (not found, using defaults)"
			}
			out.Printf("config file: %s\n", file)
			out.Println()
			out.Printf("registry: %s\n", d.Registry)
			out.Printf("package_manager: %s\n", d.PackageManager)
			out.Printf("timeout: %s\n", d.Timeout)
			out.Printf("theme.name: %s\n", d.Theme.Name)
			out.Printf("theme.mode: %s\n", d.Theme.Mode)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
