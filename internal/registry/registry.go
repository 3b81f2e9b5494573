// Package registry fetches the Ignix component and theme catalogue.
//
// A registry is a directory tree, served over HTTP(S) or read from disk:
//
//	index.json                 {"components": [...], "themes": [...]}
//	components/<name>/<file>   component sources
//	themes/<name>/<file>       theme sources
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/100xmanas/ignix-ui/internal/cache"
	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/project"
)

// ErrNotFound is returned when an item or file does not exist in the registry.
var ErrNotFound = errors.New("not found in registry")

// Item describes one installable component or theme.
type Item struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	Files                []string `json:"files"`
	Dependencies         []string `json:"dependencies,omitempty"`         // npm packages
	RegistryDependencies []string `json:"registryDependencies,omitempty"` // other components
	Docs                 string   `json:"docs,omitempty"`
}

// Index is the parsed index.json.
type Index struct {
	Components []Item `json:"components"`
	Themes     []Item `json:"themes"`
}

// Items returns the items of a namespace.
func (idx *Index) Items(ns project.Namespace) []Item {
	if ns == project.Theme {
		return idx.Themes
	}
	return idx.Components
}

// Client reads a registry. A Client caches the parsed index for its lifetime.
type Client struct {
	base     string
	http     *http.Client
	cacheDir string // empty disables the on-disk index cache
	refresh  bool
	index    *Index
}

// Option configures a Client.
type Option func(*Client)

// WithCacheDir enables the on-disk index cache in dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// WithRefresh ignores a fresh cached index and always refetches.
func WithRefresh(refresh bool) Option {
	return func(c *Client) { c.refresh = refresh }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for base, which is an http(s) URL or a directory.
func New(base string, timeout time.Duration, opts ...Option) (*Client, error) {
	if base == "" {
		base = config.DefaultRegistry
	}
	if err := config.ValidateRegistry(base); err != nil {
		return nil, err
	}
	if !config.IsRemote(base) {
		expanded, err := config.ExpandPath(base)
		if err != nil {
			return nil, err
		}
		base = expanded
	}
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Index fetches and parses index.json, using the disk cache when enabled.
func (c *Client) Index(ctx context.Context) (*Index, error) {
	if c.index != nil {
		return c.index, nil
	}
	l := log.FromContext(ctx)

	var cached *cache.Entry
	if c.cacheDir != "" && config.IsRemote(c.base) {
		e, err := cache.Load(c.cacheDir, c.base)
		if err != nil {
			l.Debug("ignoring index cache", "error", err)
		}
		cached = e
		if !c.refresh && !cached.IsStale() {
			if idx, err := parseIndex(cached.Index); err == nil {
				l.Debug("using cached index", "registry", c.base, "fetched_at", cached.FetchedAt.Format(time.RFC3339))
				c.index = idx
				return idx, nil
			}
		}
	}

	data, err := c.read(ctx, "index.json")
	if err != nil {
		if cached != nil {
			if idx, perr := parseIndex(cached.Index); perr == nil {
				l.Printf("Warning: registry unreachable (%v), using cached index from %s\n",
					err, cached.FetchedAt.Format(time.DateTime))
				c.index = idx
				return idx, nil
			}
		}
		return nil, fmt.Errorf("fetch registry index: %w", err)
	}

	idx, err := parseIndex(data)
	if err != nil {
		return nil, err
	}
	if c.cacheDir != "" && config.IsRemote(c.base) {
		if err := cache.Store(c.cacheDir, c.base, data); err != nil {
			l.Debug("failed to write index cache", "error", err)
		}
	}
	c.index = idx
	return idx, nil
}

func parseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse registry index: %w", err)
	}
	for _, ns := range project.Namespaces {
		for _, it := range idx.Items(ns) {
			if err := ValidateName(it.Name); err != nil {
				return nil, fmt.Errorf("parse registry index: %s: %w", ns, err)
			}
		}
	}
	return &idx, nil
}

// ValidateName checks that an item name is a single path segment, since
// it becomes a directory below the project's components or themes dir.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid item name %q", name)
	}
	return nil
}

// Find looks up an item by name (case-insensitive).
func (c *Client) Find(ctx context.Context, ns project.Namespace, name string) (Item, error) {
	idx, err := c.Index(ctx)
	if err != nil {
		return Item{}, err
	}
	for _, it := range idx.Items(ns) {
		if strings.EqualFold(it.Name, name) {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%s %q %w", ns, name, ErrNotFound)
}

// File returns the content of one file of an item.
func (c *Client) File(ctx context.Context, ns project.Namespace, name, file string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if strings.Contains(file, "..") || strings.HasPrefix(file, "/") {
		return nil, fmt.Errorf("invalid file path %q in %s %q", file, ns, name)
	}
	return c.read(ctx, path.Join(ns.Plural(), name, file))
}

// Resolve expands registry dependencies of components. The result lists
// dependencies before their dependents, each item once. Themes have no
// registry dependencies and resolve to themselves.
func (c *Client) Resolve(ctx context.Context, ns project.Namespace, names []string) ([]Item, error) {
	var (
		out     []Item
		visited = make(map[string]bool)
		visit   func(name string) error
	)
	visit = func(name string) error {
		key := strings.ToLower(name)
		if visited[key] {
			return nil
		}
		visited[key] = true

		it, err := c.Find(ctx, ns, name)
		if err != nil {
			return err
		}
		if ns == project.Component {
			for _, dep := range it.RegistryDependencies {
				if err := visit(dep); err != nil {
					return fmt.Errorf("%s: %w", it.Name, err)
				}
			}
		}
		out = append(out, it)
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Dependencies returns the sorted, unique npm dependencies of items.
func Dependencies(items []Item) []string {
	var deps []string
	for _, it := range items {
		for _, d := range it.Dependencies {
			if !slices.Contains(deps, d) {
				deps = append(deps, d)
			}
		}
	}
	slices.Sort(deps)
	return deps
}

func (c *Client) read(ctx context.Context, rel string) ([]byte, error) {
	if config.IsRemote(c.base) {
		return c.fetch(ctx, c.base+"/"+rel)
	}
	data, err := os.ReadFile(filepath.Join(c.base, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s %w", rel, ErrNotFound)
	}
	return data, err
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	log.FromContext(ctx).Debug("fetching", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ignix-cli")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %w", url, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
