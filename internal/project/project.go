// Package project manages the ignix.toml file of a consumer project.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/100xmanas/ignix-ui/internal/cache"
	"github.com/100xmanas/ignix-ui/internal/storage"
)

// FileName is the project configuration file written by "ignix init".
const FileName = "ignix.toml"

// lockFileName guards concurrent installs into the same project.
const lockFileName = ".ignix.lock"

var (
	// ErrNotInitialized is returned when no ignix.toml is found.
	ErrNotInitialized = errors.New("no ignix.toml found (run 'ignix init' first)")
	// ErrAlreadyInitialized is returned by Create when ignix.toml exists.
	ErrAlreadyInitialized = errors.New("project already initialized")
	// ErrBusy is returned by Lock when another ignix process is installing.
	ErrBusy = errors.New("another ignix command is modifying this project")
)

// Namespace selects components or themes.
type Namespace string

const (
	Component Namespace = "component"
	Theme     Namespace = "theme"
)

// Namespaces lists all namespaces in display order.
var Namespaces = []Namespace{Component, Theme}

// ParseNamespace accepts singular and plural forms, case-insensitively.
func ParseNamespace(s string) (Namespace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "component", "components":
		return Component, nil
	case "theme", "themes":
		return Theme, nil
	}
	return "", fmt.Errorf("unknown namespace %q: must be \"component\" or \"theme\"", s)
}

// Plural returns the directory-style name ("components", "themes").
func (n Namespace) Plural() string {
	return string(n) + "s"
}

// Installed tracks what has been added to the project.
type Installed struct {
	Components []string `toml:"components"`
	Themes     []string `toml:"themes"`
}

// Config is the content of ignix.toml.
type Config struct {
	ComponentsDir string    `toml:"components_dir"`
	ThemesDir     string    `toml:"themes_dir"`
	UtilsPath     string    `toml:"utils_path"`
	TypeScript    bool      `toml:"typescript"`
	Theme         string    `toml:"theme,omitempty"`
	Installed     Installed `toml:"installed"`
}

// Project is a loaded ignix.toml together with its root directory.
type Project struct {
	Root   string
	Config Config
}

// Default returns the configuration written by "ignix init" without flags.
func Default() Config {
	return Config{
		ComponentsDir: "src/components/ui",
		ThemesDir:     "src/themes",
		UtilsPath:     "src/lib/utils.ts",
		TypeScript:    true,
	}
}

// Path returns the ignix.toml path of the project.
func (p *Project) Path() string {
	return filepath.Join(p.Root, FileName)
}

// Dir returns the absolute directory holding items of the namespace.
func (p *Project) Dir(ns Namespace) string {
	dir := p.Config.ComponentsDir
	if ns == Theme {
		dir = p.Config.ThemesDir
	}
	return filepath.Join(p.Root, filepath.FromSlash(dir))
}

// Find walks up from dir to the filesystem root looking for ignix.toml.
func Find(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, FileName)); err == nil {
			return Load(abs)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, ErrNotInitialized
		}
		abs = parent
	}
}

// Load reads ignix.toml from root.
func Load(root string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return &Project{Root: root, Config: cfg}, nil
}

// Create writes a new ignix.toml in root. Fails with ErrAlreadyInitialized
// unless force is set.
func Create(root string, cfg Config, force bool) (*Project, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Project{Root: root, Config: cfg}
	if !force {
		if _, err := os.Stat(p.Path()); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, p.Path())
		}
	}
	if err := p.Save(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that directories are relative and stay inside the project.
func (c Config) Validate() error {
	for field, v := range map[string]string{
		"components_dir": c.ComponentsDir,
		"themes_dir":     c.ThemesDir,
		"utils_path":     c.UtilsPath,
	} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		if filepath.IsAbs(v) || strings.HasPrefix(filepath.Clean(filepath.FromSlash(v)), "..") {
			return fmt.Errorf("%s must be relative to the project root, got: %q", field, v)
		}
	}
	return nil
}

// Save writes ignix.toml atomically.
func (p *Project) Save() error {
	var buf bytes.Buffer
	buf.WriteString("# ignix project configuration\n# Managed by the ignix CLI; edit directories freely.\n\n")
	if err := toml.NewEncoder(&buf).Encode(p.Config); err != nil {
		return fmt.Errorf("encode %s: %w", FileName, err)
	}

	if err := storage.WriteFile(p.Path(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", FileName, err)
	}
	return nil
}

func (c *Config) list(ns Namespace) *[]string {
	if ns == Theme {
		return &c.Installed.Themes
	}
	return &c.Installed.Components
}

// MarkInstalled records name under the namespace, keeping the list sorted and unique.
func (p *Project) MarkInstalled(ns Namespace, name string) {
	l := p.Config.list(ns)
	if slices.Contains(*l, name) {
		return
	}
	*l = append(*l, name)
	slices.Sort(*l)
}

// IsInstalled reports whether name was installed under the namespace.
func (p *Project) IsInstalled(ns Namespace, name string) bool {
	return slices.Contains(*p.Config.list(ns), name)
}

// InstalledNames returns the installed names of the namespace.
func (p *Project) InstalledNames(ns Namespace) []string {
	return slices.Clone(*p.Config.list(ns))
}

// Lock takes the project's install lock without blocking.
// Caller must call the returned unlock func if err == nil.
func Lock(root string) (func(), error) {
	lock := cache.NewFileLock(filepath.Join(root, lockFileName))
	if err := lock.TryLock(); err != nil {
		if errors.Is(err, cache.ErrLocked) {
			return nil, ErrBusy
		}
		return nil, fmt.Errorf("lock project: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}
