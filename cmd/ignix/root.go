package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/interactive"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/output"
	"github.com/100xmanas/ignix-ui/internal/ui/prompt"
	"github.com/100xmanas/ignix-ui/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// newRootCmd builds the command tree. A fresh tree is built for every
// invocation so flag values never leak between menu dispatches.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	rootCmd := &cobra.Command{
		Use:   "ignix",
		Short: "Add Ignix UI components and themes to your project",
		Long: `ignix scaffolds components and themes of the Ignix React UI library
into your project.

Run without arguments for an interactive menu.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate mutually exclusive flags
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			ctx := log.WithLogger(cmd.Context(), log.New(cmd.ErrOrStderr(), verbose, quiet))
			cmd.SetContext(ctx)
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show registry requests and external commands")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newWizardCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs ignix with the process arguments and returns the exit code.
func Execute() int {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(cfg.Theme)

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignix: failed to get working directory: %v\n", err)
		return 1
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)

	// Logger for code running outside a command (the menu itself)
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	c := &cli{
		prompter:   prompt.Menu{},
		stdin:      os.Stdin,
		stderr:     os.Stderr,
		isTerminal: isTerminal,
	}
	return c.run(ctx, os.Args[1:])
}

// cli picks between the command line and the interactive menu.
type cli struct {
	prompter   interactive.Prompter
	stdin      *os.File
	stderr     *os.File
	isTerminal func(*os.File) bool
}

// run executes args through cobra, or starts the interactive menu when
// there are none. The menu is never shown when arguments are given.
func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) > 0 {
		return c.execute(ctx, args)
	}
	return c.interactive(ctx)
}

func (c *cli) execute(ctx context.Context, args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)
	rootCmd.SetArgs(args)
	rootCmd.SetErr(c.stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(c.stderr, styles.Failed(err.Error()))
		fmt.Fprintln(c.stderr)
		fmt.Fprintln(c.stderr, "Run 'ignix -h' for help")
		return 1
	}
	return 0
}

func (c *cli) interactive(ctx context.Context) int {
	if !c.isTerminal(c.stdin) || !c.isTerminal(c.stderr) {
		fmt.Fprintln(c.stderr, "ignix: interactive mode needs a terminal (run 'ignix -h' for commands)")
		return 1
	}

	fmt.Fprintln(c.stderr, banner())

	loop := &interactive.Loop{
		Prompter: c.prompter,
		Runner:   commandRunner{stderr: c.stderr},
		Out:      c.stderr,
	}
	loop.Run(ctx)
	return 0
}

// commandRunner runs a menu invocation on a fresh command tree.
type commandRunner struct {
	stderr *os.File
}

func (r commandRunner) Run(ctx context.Context, inv interactive.Invocation) error {
	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)
	rootCmd.SetArgs(inv.CommandArgs())
	rootCmd.SetErr(r.stderr)
	return rootCmd.Execute()
}

func banner() string {
	return styles.BannerStyle.Render("ignix") + styles.MutedStyle.Render(" · Ignix UI") + "\n" +
		styles.MutedStyle.Render("Modern, animated and accessible React components for your project.") + "\n"
}
