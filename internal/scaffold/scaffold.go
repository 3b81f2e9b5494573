package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/100xmanas/ignix-ui/internal/cmd"
	"github.com/100xmanas/ignix-ui/internal/config"
	"github.com/100xmanas/ignix-ui/internal/log"
	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
	"github.com/100xmanas/ignix-ui/internal/storage"
)

// Source provides registry items and their files.
type Source interface {
	Resolve(ctx context.Context, ns project.Namespace, names []string) ([]registry.Item, error)
	File(ctx context.Context, ns project.Namespace, name, file string) ([]byte, error)
}

// Installer writes registry items into a project.
type Installer struct {
	Source         Source
	Project        *project.Project
	PackageManager string // empty: detect from lockfile
	Force          bool
	DryRun         bool
}

// Result describes what an install did (or would do with DryRun).
type Result struct {
	Items        []string // resolved item names, dependencies first
	Written      []string // paths relative to the project root
	Skipped      []string // existing files that were kept
	Dependencies []string // npm packages required by the items
}

// Install resolves names and writes their files while holding the project
// lock. All items and files are fetched before anything is written, so an
// unknown name leaves the project untouched.
func (in *Installer) Install(ctx context.Context, ns project.Namespace, names []string) (*Result, error) {
	l := log.FromContext(ctx)

	items, err := in.Source.Resolve(ctx, ns, names)
	if err != nil {
		return nil, err
	}

	if !in.DryRun {
		unlock, err := project.Lock(in.Project.Root)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	dir, err := filepath.Rel(in.Project.Root, in.Project.Dir(ns))
	if err != nil {
		return nil, err
	}

	type pending struct {
		rel  string
		path string
		data []byte
	}
	var files []pending
	res := &Result{Dependencies: registry.Dependencies(items)}

	for _, it := range items {
		if err := registry.ValidateName(it.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", ns, err)
		}
		res.Items = append(res.Items, it.Name)
		for _, f := range it.Files {
			rel := filepath.Join(dir, it.Name, in.targetName(f))
			path, err := in.projectPath(rel)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", ns, it.Name, err)
			}
			data, err := in.Source.File(ctx, ns, it.Name, f)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", ns, it.Name, err)
			}
			files = append(files, pending{rel: rel, path: path, data: data})
		}
	}

	for _, f := range files {
		path := f.path
		if _, err := os.Stat(path); err == nil && !in.Force {
			l.Debug("skipping existing file", "path", f.rel)
			res.Skipped = append(res.Skipped, f.rel)
			continue
		}
		res.Written = append(res.Written, f.rel)
		if in.DryRun {
			continue
		}
		if err := writeFile(path, f.data); err != nil {
			return nil, err
		}
		l.Debug("wrote file", "path", f.rel)
	}

	if in.DryRun {
		return res, nil
	}
	for _, name := range res.Items {
		in.Project.MarkInstalled(ns, name)
	}
	if err := in.Project.Save(); err != nil {
		return nil, err
	}
	return res, nil
}

// WriteFile writes a single registry-provided file at rel below the project
// root, honoring Force and DryRun. It reports whether the file was written.
func (in *Installer) WriteFile(rel string, data []byte) (bool, error) {
	path, err := in.projectPath(rel)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err == nil && !in.Force {
		return false, nil
	}
	if in.DryRun {
		return true, nil
	}
	return true, writeFile(path, data)
}

// projectPath joins rel to the project root and rejects paths that
// resolve outside of it.
func (in *Installer) projectPath(rel string) (string, error) {
	path := filepath.Join(in.Project.Root, rel)
	r, err := filepath.Rel(in.Project.Root, path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing to write %q outside the project root", rel)
	}
	return path, nil
}

// targetName renames TypeScript sources in JavaScript projects.
func (in *Installer) targetName(file string) string {
	if in.Project.Config.TypeScript {
		return filepath.FromSlash(file)
	}
	return filepath.FromSlash(JSName(file))
}

// JSName maps a TypeScript file name to its JavaScript counterpart.
func JSName(file string) string {
	switch {
	case strings.HasSuffix(file, ".d.ts"):
		return file
	case strings.HasSuffix(file, ".tsx"):
		return strings.TrimSuffix(file, ".tsx") + ".jsx"
	case strings.HasSuffix(file, ".ts"):
		return strings.TrimSuffix(file, ".ts") + ".js"
	}
	return file
}

// writeFile writes data atomically, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := storage.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// InstallDependencies installs npm packages in the project root.
// Packages already listed in package.json are not reinstalled.
func (in *Installer) InstallDependencies(ctx context.Context, deps []string) ([]string, error) {
	missing := MissingDependencies(in.Project.Root, deps)
	if len(missing) == 0 || in.DryRun {
		return missing, nil
	}

	pm := in.PackageManager
	if pm == "" {
		pm = DetectPackageManager(in.Project.Root)
	}
	if err := config.ValidatePackageManager(pm); err != nil {
		return nil, err
	}

	args := append(InstallArgs(pm), missing...)
	if err := cmd.RunContext(ctx, in.Project.Root, pm, args...); err != nil {
		return nil, fmt.Errorf("%s %s: %w", pm, strings.Join(args, " "), err)
	}
	return missing, nil
}

// InstallArgs returns the sub-command a package manager uses to add packages.
func InstallArgs(pm string) []string {
	if pm == "npm" {
		return []string{"install"}
	}
	return []string{"add"}
}

// DetectPackageManager picks the package manager from the lockfile in root.
func DetectPackageManager(root string) string {
	lockfiles := []struct {
		file string
		pm   string
	}{
		{"bun.lockb", "bun"},
		{"bun.lock", "bun"},
		{"pnpm-lock.yaml", "pnpm"},
		{"yarn.lock", "yarn"},
	}
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(root, lf.file)); err == nil {
			return lf.pm
		}
	}
	return "npm"
}

// MissingDependencies returns the deps not declared in root's package.json,
// keeping their order. Without a readable package.json all deps are missing.
func MissingDependencies(root string, deps []string) []string {
	declared, err := readPackageJSON(root)
	if err != nil {
		return slices.Clone(deps)
	}
	var missing []string
	for _, d := range deps {
		if !declared[d] {
			missing = append(missing, d)
		}
	}
	return missing
}
