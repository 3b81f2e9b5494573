package cache

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestEntryIsStale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry *Entry
		want  bool
	}{
		{"nil entry", nil, true},
		{"never fetched", &Entry{}, true},
		{"fresh", &Entry{FetchedAt: time.Now().Add(-time.Minute)}, false},
		{"old", &Entry{FetchedAt: time.Now().Add(-2 * MaxAge)}, true},
	}
	for _, tt := range tests {
		if got := tt.entry.IsStale(); got != tt.want {
			t.Errorf("%s: IsStale() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStoreLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const registry = "https://example.com/registry"
	index := []byte(`{"components":[{"name":"button"}]}`)

	if err := Store(dir, registry, index); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	e, err := Load(dir, registry)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if e == nil {
		t.Fatal("Load() = nil, want entry")
	}
	if e.IsStale() {
		t.Error("freshly stored entry should not be stale")
	}

	var got, want any
	if err := json.Unmarshal(e.Index, &got); err != nil {
		t.Fatalf("cached index is not JSON: %v", err)
	}
	_ = json.Unmarshal(index, &want)
	if string(mustMarshal(t, got)) != string(mustMarshal(t, want)) {
		t.Errorf("Index = %s, want %s", e.Index, index)
	}
}

func TestLoad_MissingAndCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const registry = "/srv/registry"

	if e, err := Load(dir, registry); e != nil || err != nil {
		t.Errorf("Load(missing) = %v, %v; want nil, nil", e, err)
	}

	if err := os.WriteFile(EntryPath(dir, registry), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if e, err := Load(dir, registry); e != nil || err != nil {
		t.Errorf("Load(corrupted) = %v, %v; want nil, nil", e, err)
	}
}

func TestEntryPath_DistinctPerRegistry(t *testing.T) {
	t.Parallel()

	a := EntryPath("/c", "https://a.example.com")
	b := EntryPath("/c", "https://b.example.com")
	if a == b {
		t.Errorf("EntryPath collision: %s", a)
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
