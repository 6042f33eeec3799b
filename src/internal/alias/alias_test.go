package alias

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/testutil"
)

func newTestRegistry(t *testing.T) (*Registry, *store.Store) {
	t.Helper()
	t.Setenv("RTVM_ROOT", t.TempDir())
	config.ResetPathsCache()

	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return NewRegistry(st), st
}

func installVersion(t *testing.T, st *store.Store, runtimeName, version string) {
	t.Helper()
	if err := os.MkdirAll(st.InstallPath(runtimeName, version), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestRegistry_CreateAndResolve(t *testing.T) {
	r, st := newTestRegistry(t)
	installVersion(t, st, "node", "18.17.0")

	if err := r.Create("node", "lts", "18.17.0"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	version, ok, err := r.Resolve("node", "lts")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !ok {
		t.Fatal("Resolve reported alias absent")
	}
	if version != "18.17.0" {
		t.Errorf("Resolve = %q, want 18.17.0", version)
	}
}

func TestRegistry_CreateRequiresInstalledTarget(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.Create("node", "lts", "18.17.0")
	if !store.IsNotInstalled(err) {
		t.Fatalf("expected NotInstalledError, got %v", err)
	}
}

func TestRegistry_ResolveAbsent(t *testing.T) {
	r, _ := newTestRegistry(t)

	version, ok, err := r.Resolve("node", "nothing")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ok {
		t.Error("Resolve reported an alias that was never created")
	}
	if version != "" {
		t.Errorf("Resolve = %q, want empty", version)
	}
}

func TestRegistry_ResolveStaleAlias(t *testing.T) {
	r, st := newTestRegistry(t)
	installVersion(t, st, "node", "18.17.0")

	if err := r.Create("node", "lts", "18.17.0"); err != nil {
		t.Fatal(err)
	}

	// The target version disappears after the alias was created
	if err := os.RemoveAll(st.InstallPath("node", "18.17.0")); err != nil {
		t.Fatal(err)
	}

	_, ok, err := r.Resolve("node", "lts")
	if !ok {
		t.Error("stale alias should still be reported as existing")
	}
	if !store.IsNotInstalled(err) {
		t.Fatalf("expected NotInstalledError for stale alias, got %v", err)
	}
	if !testutil.ContainsSubstring(err.Error(), "18.17.0") {
		t.Errorf("error should name the missing version: %v", err)
	}
}

func TestRegistry_List(t *testing.T) {
	r, st := newTestRegistry(t)
	installVersion(t, st, "node", "18.17.0")
	installVersion(t, st, "node", "20.5.1")

	if entries, err := r.List("node"); err != nil || len(entries) != 0 {
		t.Fatalf("List on empty registry = %v, %v", entries, err)
	}

	for name, version := range map[string]string{
		"work":    "18.17.0",
		"default": "18.17.0",
		"next":    "20.5.1",
	} {
		if err := r.Create("node", name, version); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := r.List("node")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []Entry{
		{Name: "default", Version: "18.17.0"},
		{Name: "next", Version: "20.5.1"},
		{Name: "work", Version: "18.17.0"},
	}
	if len(entries) != len(want) {
		t.Fatalf("List returned %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestRegistry_Delete(t *testing.T) {
	r, st := newTestRegistry(t)
	installVersion(t, st, "node", "18.17.0")

	if err := r.Create("node", "lts", "18.17.0"); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete("node", "lts"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, ok, _ := r.Resolve("node", "lts"); ok {
		t.Error("alias still resolves after Delete")
	}

	if err := r.Delete("node", "lts"); err == nil {
		t.Error("deleting a missing alias should fail")
	}
}

func TestRegistry_PerRuntimeNamespaces(t *testing.T) {
	r, st := newTestRegistry(t)
	installVersion(t, st, "node", "18.17.0")
	installVersion(t, st, "go", "1.22.0")

	if err := r.Create("node", "default", "18.17.0"); err != nil {
		t.Fatal(err)
	}
	if err := r.Create("go", "default", "1.22.0"); err != nil {
		t.Fatal(err)
	}

	nodeVersion, _, err := r.Resolve("node", "default")
	if err != nil {
		t.Fatal(err)
	}
	goVersion, _, err := r.Resolve("go", "default")
	if err != nil {
		t.Fatal(err)
	}

	if nodeVersion != "18.17.0" || goVersion != "1.22.0" {
		t.Errorf("same alias name crossed runtime boundaries: node=%s go=%s", nodeVersion, goVersion)
	}
}

func TestAliasFileFormat(t *testing.T) {
	r, st := newTestRegistry(t)
	installVersion(t, st, "node", "18.17.0")

	if err := r.Create("node", "lts", "18.17.0"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(config.AliasFilePath("node"))
	if err != nil {
		t.Fatalf("alias file missing: %v", err)
	}

	var doc struct {
		Aliases map[string]string `json:"aliases"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("alias file is not valid JSON: %v\n%s", err, data)
	}
	if doc.Aliases["lts"] != "18.17.0" {
		t.Errorf(`alias file content = %s, want {"aliases":{"lts":"18.17.0"}}`, data)
	}

	if filepath.Base(config.AliasFilePath("node")) != "aliases-node.json" {
		t.Errorf("alias file name = %s", filepath.Base(config.AliasFilePath("node")))
	}
}
