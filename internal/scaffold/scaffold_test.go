package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/100xmanas/ignix-ui/internal/project"
	"github.com/100xmanas/ignix-ui/internal/registry"
)

// fakeSource serves items and files from memory.
type fakeSource struct {
	items map[string]registry.Item
	files map[string]string // "<name>/<file>" -> content
}

func (f *fakeSource) Resolve(_ context.Context, ns project.Namespace, names []string) ([]registry.Item, error) {
	var out []registry.Item
	seen := map[string]bool{}
	var visit func(string) error
	visit = func(name string) error {
		if seen[name] {
			return nil
		}
		seen[name] = true
		it, ok := f.items[name]
		if !ok {
			return fmt.Errorf("%s %q %w", ns, name, registry.ErrNotFound)
		}
		for _, d := range it.RegistryDependencies {
			if err := visit(d); err != nil {
				return err
			}
		}
		out = append(out, it)
		return nil
	}
	for _, n := range names {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *fakeSource) File(_ context.Context, _ project.Namespace, name, file string) ([]byte, error) {
	content, ok := f.files[name+"/"+file]
	if !ok {
		return nil, registry.ErrNotFound
	}
	return []byte(content), nil
}

func newSource() *fakeSource {
	return &fakeSource{
		items: map[string]registry.Item{
			"button": {Name: "button", Files: []string{"button.tsx"}, Dependencies: []string{"clsx"}},
			"card": {Name: "card", Files: []string{"card.tsx", "card-utils.ts"},
				Dependencies: []string{"framer-motion"}, RegistryDependencies: []string{"button"}},
			"broken":     {Name: "broken", Files: []string{"missing.tsx"}},
			"ignix-dark": {Name: "ignix-dark", Files: []string{"ignix-dark.css"}},
		},
		files: map[string]string{
			"button/button.tsx":         "button",
			"card/card.tsx":             "card",
			"card/card-utils.ts":        "utils",
			"ignix-dark/ignix-dark.css": "theme",
		},
	}
}

func newProject(t *testing.T, typescript bool) *project.Project {
	t.Helper()
	cfg := project.Default()
	cfg.TypeScript = typescript
	p, err := project.Create(t.TempDir(), cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestInstall(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	in := &Installer{Source: newSource(), Project: p}

	res, err := in.Install(context.Background(), project.Component, []string{"card"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := &Result{
		Items: []string{"button", "card"},
		Written: []string{
			filepath.Join("src", "components", "ui", "button", "button.tsx"),
			filepath.Join("src", "components", "ui", "card", "card.tsx"),
			filepath.Join("src", "components", "ui", "card", "card-utils.ts"),
		},
		Dependencies: []string{"clsx", "framer-motion"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Install() mismatch (-want +got):\n%s", diff)
	}
	if got := readFile(t, filepath.Join(p.Root, want.Written[1])); got != "card" {
		t.Errorf("card.tsx = %q", got)
	}

	loaded, err := project.Load(p.Root)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"button", "card"}, loaded.Config.Installed.Components); diff != "" {
		t.Errorf("installed mismatch (-want +got):\n%s", diff)
	}
}

func TestInstall_SkipsExisting(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	existing := filepath.Join(p.Root, "src", "components", "ui", "button", "button.tsx")
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(existing, []byte("local edits"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := &Installer{Source: newSource(), Project: p}
	res, err := in.Install(context.Background(), project.Component, []string{"button"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if len(res.Written) != 0 || len(res.Skipped) != 1 {
		t.Errorf("Install() written=%v skipped=%v", res.Written, res.Skipped)
	}
	if got := readFile(t, existing); got != "local edits" {
		t.Errorf("existing file overwritten: %q", got)
	}

	in.Force = true
	if _, err := in.Install(context.Background(), project.Component, []string{"button"}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, existing); got != "button" {
		t.Errorf("forced install did not overwrite: %q", got)
	}
}

func TestInstall_JavaScript(t *testing.T) {
	t.Parallel()

	p := newProject(t, false)
	in := &Installer{Source: newSource(), Project: p}
	if _, err := in.Install(context.Background(), project.Component, []string{"card"}); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"card.jsx", "card-utils.js"} {
		if _, err := os.Stat(filepath.Join(p.Root, "src", "components", "ui", "card", f)); err != nil {
			t.Errorf("%s not written: %v", f, err)
		}
	}
}

func TestInstall_Theme(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	in := &Installer{Source: newSource(), Project: p}
	if _, err := in.Install(context.Background(), project.Theme, []string{"ignix-dark"}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(p.Root, "src", "themes", "ignix-dark", "ignix-dark.css")); got != "theme" {
		t.Errorf("theme file = %q", got)
	}
	if !p.IsInstalled(project.Theme, "ignix-dark") {
		t.Error("theme not marked installed")
	}
}

func TestInstall_NothingWrittenOnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
	}{
		{"unknown name", []string{"button", "nope"}},
		{"missing file", []string{"button", "broken"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newProject(t, true)
			in := &Installer{Source: newSource(), Project: p}

			if _, err := in.Install(context.Background(), project.Component, tt.names); !errors.Is(err, registry.ErrNotFound) {
				t.Fatalf("Install() error = %v, want ErrNotFound", err)
			}
			if _, err := os.Stat(filepath.Join(p.Root, "src")); !os.IsNotExist(err) {
				t.Errorf("files were written despite error")
			}
		})
	}
}

func TestInstall_RejectsPathsOutsideProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item registry.Item
	}{
		{"item name", registry.Item{Name: "../../../../escaped", Files: []string{"pwn.ts"}}},
		{"file name", registry.Item{Name: "sneaky", Files: []string{"../../../../../escaped/pwn.ts"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newProject(t, true)
			src := &fakeSource{
				items: map[string]registry.Item{tt.item.Name: tt.item},
				files: map[string]string{tt.item.Name + "/" + tt.item.Files[0]: "export {}"},
			}
			in := &Installer{Source: src, Project: p}

			res, err := in.Install(context.Background(), project.Component, []string{tt.item.Name})
			if err == nil {
				t.Fatalf("Install() = %+v, want error", res)
			}
			escaped := filepath.Join(filepath.Dir(p.Root), "escaped")
			if _, err := os.Stat(escaped); !os.IsNotExist(err) {
				t.Errorf("wrote outside the project root: %s", escaped)
			}
			if p.IsInstalled(project.Component, tt.item.Name) {
				t.Errorf("%q marked installed", tt.item.Name)
			}
		})
	}
}

func TestWriteFile_RejectsPathsOutsideProject(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	in := &Installer{Source: newSource(), Project: p}

	if _, err := in.WriteFile(filepath.Join("..", "utils.ts"), []byte("x")); err == nil {
		t.Fatal("WriteFile() outside the project root should fail")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(p.Root), "utils.ts")); !os.IsNotExist(err) {
		t.Error("utils.ts written outside the project root")
	}

	written, err := in.WriteFile(filepath.Join("src", "lib", "utils.ts"), []byte("x"))
	if err != nil || !written {
		t.Fatalf("WriteFile() = %v, %v; want written", written, err)
	}
}

func TestInstall_DryRun(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	in := &Installer{Source: newSource(), Project: p, DryRun: true}
	res, err := in.Install(context.Background(), project.Component, []string{"button"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Written) != 1 {
		t.Errorf("Written = %v, want one planned file", res.Written)
	}
	if _, err := os.Stat(filepath.Join(p.Root, res.Written[0])); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
	if p.IsInstalled(project.Component, "button") {
		t.Error("dry run marked the component installed")
	}
}

func TestInstall_Busy(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	unlock, err := project.Lock(p.Root)
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	in := &Installer{Source: newSource(), Project: p}
	if _, err := in.Install(context.Background(), project.Component, []string{"button"}); !errors.Is(err, project.ErrBusy) {
		t.Errorf("Install() error = %v, want ErrBusy", err)
	}
}

func TestJSName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"button.tsx", "button.jsx"},
		{"utils.ts", "utils.js"},
		{"types.d.ts", "types.d.ts"},
		{"theme.css", "theme.css"},
		{"sub/dir/x.tsx", "sub/dir/x.jsx"},
	}
	for _, tt := range tests {
		if got := JSName(tt.in); got != tt.want {
			t.Errorf("JSName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectPackageManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lockfile string
		want     string
	}{
		{"", "npm"},
		{"package-lock.json", "npm"},
		{"bun.lockb", "bun"},
		{"bun.lock", "bun"},
		{"pnpm-lock.yaml", "pnpm"},
		{"yarn.lock", "yarn"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.lockfile, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if tt.lockfile != "" {
				if err := os.WriteFile(filepath.Join(dir, tt.lockfile), nil, 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if got := DetectPackageManager(dir); got != tt.want {
				t.Errorf("DetectPackageManager() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstallArgs(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"install"}, InstallArgs("npm")); diff != "" {
		t.Errorf("npm args mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"add"}, InstallArgs("pnpm")); diff != "" {
		t.Errorf("pnpm args mismatch:\n%s", diff)
	}
}

func TestMissingDependencies(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	deps := []string{"clsx", "framer-motion", "tailwind-merge"}

	if diff := cmp.Diff(deps, MissingDependencies(dir, deps)); diff != "" {
		t.Errorf("without package.json (-want +got):\n%s", diff)
	}

	pkg := `{"dependencies": {"clsx": "^2.0.0"}, "devDependencies": {"tailwind-merge": "^2.0.0"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o644); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"framer-motion"}, MissingDependencies(dir, deps)); diff != "" {
		t.Errorf("with package.json (-want +got):\n%s", diff)
	}
}

func TestInstallDependencies_NothingMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"dependencies": {"clsx": "1"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := project.Create(dir, project.Default(), false)
	if err != nil {
		t.Fatal(err)
	}

	// an invalid package manager is never consulted when nothing is missing
	in := &Installer{Project: p, PackageManager: "invalid"}
	missing, err := in.InstallDependencies(context.Background(), []string{"clsx"})
	if err != nil || len(missing) != 0 {
		t.Errorf("InstallDependencies() = %v, %v", missing, err)
	}
}

func TestInstallDependencies_InvalidPackageManager(t *testing.T) {
	t.Parallel()

	p := newProject(t, true)
	in := &Installer{Project: p, PackageManager: "pip"}
	if _, err := in.InstallDependencies(context.Background(), []string{"clsx"}); err == nil {
		t.Error("InstallDependencies() with invalid package manager should fail")
	}
}
