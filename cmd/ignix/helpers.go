package main

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/100xmanas/ignix-ui/internal/cache"
	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/scaffold"
	"github.com/100xmanas/ignix-ui/internal/ui/progress"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// configFromContext returns the loaded config, or the defaults when none
// was attached.
func configFromContext(ctx context.Context) config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return *cfg
	}
	return config.Default()
}

// newRegistryClient creates a client for the configured registry. The
// index cache is used when a cache directory is available.
func newRegistryClient(ctx context.Context, refresh bool) (*registry.Client, error) {
	cfg := configFromContext(ctx)

	opts := []registry.Option{registry.WithRefresh(refresh)}
	if dir, err := cache.Dir(); err == nil {
		opts = append(opts, registry.WithCacheDir(dir))
	} else {
		log.FromContext(ctx).Debug("registry cache disabled", "err", err)
	}
	return registry.New(cfg.Registry, cfg.Timeout, opts...)
}

// findProject locates ignix.toml from the working directory upwards.
func findProject(ctx context.Context) (*project.Project, error) {
	return project.Find(config.WorkDirFromContext(ctx))
}

// findProjectOptional is findProject that treats a missing project as nil.
func findProjectOptional(ctx context.Context) (*project.Project, error) {
	p, err := findProject(ctx)
	if errors.Is(err, project.ErrNotInitialized) {
		return nil, nil
	}
	return p, err
}

// newInstaller returns an installer for p using the configured package manager.
func newInstaller(ctx context.Context, client *registry.Client, p *project.Project) *scaffold.Installer {
	return &scaffold.Installer{
		Source:         client,
		Project:        p,
		PackageManager: configFromContext(ctx).PackageManager,
	}
}

type progressKey struct{}

// showProgress reports whether spinners and bars should be drawn: only
// when diagnostics go to a terminal and no other log lines interleave.
// Returns false inside runStages, whose bar is already on screen.
func showProgress(ctx context.Context) bool {
	if active, _ := ctx.Value(progressKey{}).(bool); active {
		return false
	}
	l := log.FromContext(ctx)
	f, ok := l.Writer().(*os.File)
	return ok && isTerminal(f) && !l.IsVerbose() && !l.IsQuiet()
}

// withSpinner runs fn while a spinner with msg is shown on stderr.
func withSpinner(ctx context.Context, msg string, fn func() error) error {
	if !showProgress(ctx) {
		return fn()
	}
	sp := progress.NewSpinner(msg)
	sp.Start()
	defer sp.Stop()
	return fn()
}

// stage is one step of a multi-step operation.
type stage struct {
	message string
	run     func(ctx context.Context) error
}

// runStages runs stages in order behind a progress bar and stops at the
// first error.
func runStages(ctx context.Context, stages []stage) error {
	l := log.FromContext(ctx)
	if len(stages) == 0 {
		return nil
	}

	var bar *progress.Bar
	if showProgress(ctx) {
		bar = progress.NewBar(len(stages), stages[0].message)
		bar.Start()
		defer bar.Stop()
	}
	ctx = context.WithValue(ctx, progressKey{}, true)

	for i, s := range stages {
		if bar != nil {
			bar.Set(i, s.message)
		} else {
			l.Debug("stage", "step", i+1, "of", len(stages), "msg", s.message)
		}
		if err := s.run(ctx); err != nil {
			return err
		}
	}
	if bar != nil {
		bar.Set(len(stages), "Done")
	}
	return nil
}
