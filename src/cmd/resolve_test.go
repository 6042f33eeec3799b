package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rtvm/rtvm/src/internal/alias"
	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
)

// mockProfile is a minimal Profile implementation for command tests
type mockProfile struct {
	name     string
	lts      bool
	releases []runtime.Release
}

func (m *mockProfile) Name() string          { return m.name }
func (m *mockProfile) DisplayName() string   { return m.name }
func (m *mockProfile) Executables() []string { return []string{m.name} }
func (m *mockProfile) HasLTS() bool          { return m.lts }
func (m *mockProfile) PinFileName() string   { return "." + m.name + "-version" }
func (m *mockProfile) PlatformSuffix(goos, goarch string) (string, error) {
	return goos + "-" + goarch, nil
}
func (m *mockProfile) ArchiveExt(goos string) string {
	if goos == "windows" {
		return ".zip"
	}
	return ".tar.gz"
}
func (m *mockProfile) DownloadURL(version, suffix, ext string) string {
	return fmt.Sprintf("https://example.com/%s-%s-%s%s", m.name, version, suffix, ext)
}
func (m *mockProfile) BinaryDir(installDir, version, suffix string) string {
	return filepath.Join(installDir, "bin")
}
func (m *mockProfile) RequiresInstallScript() bool                   { return false }
func (m *mockProfile) Repair(stageDir, version, suffix string) error { return nil }
func (m *mockProfile) Releases() ([]runtime.Release, error)          { return m.releases, nil }

// newTestStore points the store at a scratch root for one test
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	t.Setenv("RTVM_ROOT", t.TempDir())
	config.ResetPathsCache()
	t.Cleanup(config.ResetPathsCache)

	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	return st
}

// installFake materializes an installed version without a network
func installFake(t *testing.T, st *store.Store, name, version string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(st.InstallPath(name, version), "bin"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
}

func TestResolveVersion_InstalledLiteralWins(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mocka"}
	installFake(t, st, "mocka", "1.2.3")

	got, err := resolveVersion(st, p, "1.2.3")
	if err != nil {
		t.Fatalf("resolveVersion() error = %v", err)
	}
	if got != "1.2.3" {
		t.Errorf("resolveVersion() = %q, want %q", got, "1.2.3")
	}
}

func TestResolveVersion_AliasResolves(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockb"}
	installFake(t, st, "mockb", "2.0.0")

	if err := alias.NewRegistry(st).Create("mockb", "work", "2.0.0"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := resolveVersion(st, p, "work")
	if err != nil {
		t.Fatalf("resolveVersion() error = %v", err)
	}
	if got != "2.0.0" {
		t.Errorf("resolveVersion() = %q, want %q", got, "2.0.0")
	}
}

func TestResolveVersion_StaleAliasErrors(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockc"}
	installFake(t, st, "mockc", "2.0.0")

	if err := alias.NewRegistry(st).Create("mockc", "work", "2.0.0"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := os.RemoveAll(st.InstallPath("mockc", "2.0.0")); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}

	_, err := resolveVersion(st, p, "work")
	if !store.IsNotInstalled(err) {
		t.Errorf("resolveVersion() error = %v, want NotInstalledError", err)
	}
}

func TestResolveVersion_LatestSelector(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockd", releases: []runtime.Release{
		{Version: "3.0.0-rc1", Stable: false},
		{Version: "2.1.0", Stable: true},
		{Version: "2.0.0", Stable: true},
	}}

	got, err := resolveVersion(st, p, "latest")
	if err != nil {
		t.Fatalf("resolveVersion() error = %v", err)
	}
	if got != "2.1.0" {
		t.Errorf("resolveVersion(latest) = %q, want %q (prereleases skipped)", got, "2.1.0")
	}
}

func TestResolveVersion_LatestWithoutStableReleases(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mocke", releases: []runtime.Release{
		{Version: "1.0.0-beta", Stable: false},
	}}

	if _, err := resolveVersion(st, p, "latest"); err == nil {
		t.Fatal("resolveVersion(latest) expected an error when no stable release exists")
	}
}

func TestResolveVersion_LTSSelector(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockf", lts: true, releases: []runtime.Release{
		{Version: "21.0.0", Stable: true},
		{Version: "20.11.1", Stable: true, LTS: true},
	}}

	got, err := resolveVersion(st, p, "lts")
	if err != nil {
		t.Fatalf("resolveVersion() error = %v", err)
	}
	if got != "20.11.1" {
		t.Errorf("resolveVersion(lts) = %q, want %q", got, "20.11.1")
	}
}

func TestResolveVersion_LTSRequiresSupport(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockg"}

	if _, err := resolveVersion(st, p, "lts"); err == nil {
		t.Fatal("resolveVersion(lts) expected an error for a runtime without LTS releases")
	}
}

func TestResolveVersion_UnknownPassthrough(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockh"}

	got, err := resolveVersion(st, p, "9.9.9")
	if err != nil {
		t.Fatalf("resolveVersion() error = %v", err)
	}
	if got != "9.9.9" {
		t.Errorf("resolveVersion() = %q, want the input back unchanged", got)
	}
}

// An alias shadows the catalog selectors only when actually defined;
// this pins the resolution order of installed version over alias.
func TestResolveVersion_InstalledBeatsAlias(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mocki"}
	installFake(t, st, "mocki", "1.0.0")
	installFake(t, st, "mocki", "2.0.0")

	// Alias named like an installed version must not win
	if err := alias.NewRegistry(st).Create("mocki", "1.0.0", "2.0.0"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := resolveVersion(st, p, "1.0.0")
	if err != nil {
		t.Fatalf("resolveVersion() error = %v", err)
	}
	if got != "1.0.0" {
		t.Errorf("resolveVersion() = %q, want the installed version %q", got, "1.0.0")
	}
}
