package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultRegistry is the registry used when none is configured.
const DefaultRegistry = "https://raw.githubusercontent.com/100xmanas/ignix-ui/main/registry"

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 30 * time.Second

// ThemeConfig holds the terminal palette configuration.
type ThemeConfig struct {
	Name    string `toml:"name" json:"name,omitempty"` // preset name
	Mode    string `toml:"mode" json:"mode,omitempty"` // auto, light, dark
	Primary string `toml:"primary" json:"primary,omitempty"`
	Accent  string `toml:"accent" json:"accent,omitempty"`
	Success string `toml:"success" json:"success,omitempty"`
	Error   string `toml:"error" json:"error,omitempty"`
	Muted   string `toml:"muted" json:"muted,omitempty"`
	Warning string `toml:"warning" json:"warning,omitempty"`
}

// Config holds the ignix configuration
type Config struct {
	Registry       string        `toml:"registry" json:"registry"`
	PackageManager string        `toml:"package_manager" json:"package_manager,omitempty"`
	Timeout        time.Duration `toml:"-" json:"-"`
	Theme          ThemeConfig   `toml:"theme" json:"theme"`
}

// rawConfig mirrors the file layout before durations are parsed.
type rawConfig struct {
	Registry       string      `toml:"registry"`
	PackageManager string      `toml:"package_manager"`
	Timeout        string      `toml:"timeout"`
	Theme          ThemeConfig `toml:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Registry: DefaultRegistry,
		Timeout:  DefaultTimeout,
		Theme:    ThemeConfig{Name: "ignix", Mode: "auto"},
	}
}

// Path returns the config file location, honouring IGNIX_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("IGNIX_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ignix", "config.toml"), nil
}

// Load reads the config file at Path.
// Returns Default() if the file doesn't exist (no error).
// Returns Default() and an error if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return withEnv(Default()), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return withEnv(Default()), nil
		}
		return withEnv(Default()), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return withEnv(Default()), err
	}
	return withEnv(cfg), nil
}

func parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	if raw.Registry != "" {
		cfg.Registry = raw.Registry
	}
	cfg.PackageManager = raw.PackageManager
	cfg.Theme = raw.Theme
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "ignix"
	}
	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = "auto"
	}

	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid timeout %q: must be positive", raw.Timeout)
		}
		cfg.Timeout = d
	}

	if err := ValidateRegistry(cfg.Registry); err != nil {
		return Config{}, err
	}
	if err := ValidatePackageManager(cfg.PackageManager); err != nil {
		return Config{}, err
	}
	if err := validateEnum(cfg.Theme.Mode, "theme.mode", ValidThemeModes); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// withEnv applies environment overrides.
func withEnv(cfg Config) Config {
	if r := os.Getenv("IGNIX_REGISTRY"); r != "" {
		cfg.Registry = r
	}
	return cfg
}

// IsRemote reports whether registry is fetched over HTTP.
func IsRemote(registry string) bool {
	return strings.HasPrefix(registry, "http://") || strings.HasPrefix(registry, "https://")
}

// ValidateRegistry checks that the registry is an http(s) URL or an absolute
// path (or starts with ~).
func ValidateRegistry(registry string) error {
	if registry == "" || IsRemote(registry) || strings.HasPrefix(registry, "~") {
		return nil
	}
	if !filepath.IsAbs(registry) {
		return fmt.Errorf("registry must be an http(s) URL or an absolute path, got: %q", registry)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

type ctxKey struct{}
type workDirKey struct{}

// WithConfig attaches the loaded config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}

// WithWorkDir attaches the working directory commands operate on.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory from ctx,
// falling back to os.Getwd when unset or empty.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}

const defaultConfig = `# ignix configuration

# Where the component registry lives.
# Either an http(s) URL or an absolute directory (handy for registry development).
# The IGNIX_REGISTRY environment variable takes precedence.
# registry = "https://raw.githubusercontent.com/100xmanas/ignix-ui/main/registry"

# Package manager used to install component dependencies.
# Leave unset to detect from the project's lockfile.
# Available: "npm", "pnpm", "yarn", "bun"
# package_manager = "pnpm"

# Timeout for a single registry request (Go duration)
# timeout = "30s"

# Terminal colors used by menus, prompts and tables
# [theme]
# name = "ignix"   # none, ignix, dracula, nord, catppuccin
# mode = "auto"    # auto, light, dark
# accent = "#FF5555"
`

// DefaultFile returns the commented default config file content.
func DefaultFile() string {
	return defaultConfig
}

// Init creates a default config file at Path.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
