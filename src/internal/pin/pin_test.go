package pin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
)

type fakeProfile struct {
	name string
}

func (p *fakeProfile) Name() string          { return p.name }
func (p *fakeProfile) DisplayName() string   { return p.name }
func (p *fakeProfile) Executables() []string { return []string{p.name} }
func (p *fakeProfile) HasLTS() bool          { return false }
func (p *fakeProfile) PinFileName() string   { return "." + p.name + "-version" }
func (p *fakeProfile) PlatformSuffix(goos, goarch string) (string, error) {
	return goos + "-" + goarch, nil
}
func (p *fakeProfile) ArchiveExt(goos string) string { return ".tar.gz" }
func (p *fakeProfile) DownloadURL(version, suffix, ext string) string {
	return "https://example.invalid/" + version + ext
}
func (p *fakeProfile) BinaryDir(installDir, version, suffix string) string {
	return filepath.Join(installDir, "bin")
}
func (p *fakeProfile) RequiresInstallScript() bool                   { return false }
func (p *fakeProfile) Repair(stageDir, version, suffix string) error { return nil }
func (p *fakeProfile) Releases() ([]runtime.Release, error)          { return nil, nil }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	t.Setenv("RTVM_ROOT", t.TempDir())
	config.ResetPathsCache()

	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return st
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	return dir
}

func installVersion(t *testing.T, st *store.Store, runtimeName, version string) {
	t.Helper()
	if err := os.MkdirAll(st.InstallPath(runtimeName, version), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestSetAndGet_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	profile := &fakeProfile{name: "node"}
	installVersion(t, st, "node", "18.17.0")
	chdirTemp(t)

	if err := Set(st, profile, "18.17.0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	version, ok, err := Get(profile)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get reported no pin after Set")
	}
	if version != "18.17.0" {
		t.Errorf("Get = %q, want 18.17.0", version)
	}
}

func TestSet_RequiresInstalled(t *testing.T) {
	st := newTestStore(t)
	profile := &fakeProfile{name: "node"}
	dir := chdirTemp(t)

	err := Set(st, profile, "18.17.0")
	if !store.IsNotInstalled(err) {
		t.Fatalf("expected NotInstalledError, got %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(dir, ".node-version")); !os.IsNotExist(statErr) {
		t.Error("Set wrote a pin file despite failing")
	}
}

func TestSet_WritesTypeSpecificFile(t *testing.T) {
	st := newTestStore(t)
	profile := &fakeProfile{name: "rust"}
	installVersion(t, st, "rust", "1.70.0")
	dir := chdirTemp(t)

	if err := Set(st, profile, "1.70.0"); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join(dir, ".rust-version"))
	if err != nil {
		t.Fatalf("pin file missing: %v", err)
	}
	if string(content) != "1.70.0" {
		t.Errorf("pin file content = %q, want 1.70.0", content)
	}
}

func TestGet_NoPin(t *testing.T) {
	chdirTemp(t)
	profile := &fakeProfile{name: "node"}

	version, ok, err := Get(profile)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || version != "" {
		t.Errorf("Get in empty directory = %q, %v; want absent", version, ok)
	}
}

func TestGet_TrimsWhitespace(t *testing.T) {
	dir := chdirTemp(t)
	profile := &fakeProfile{name: "python"}

	if err := os.WriteFile(filepath.Join(dir, ".python-version"), []byte("3.11.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	version, ok, err := Get(profile)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if version != "3.11.0" {
		t.Errorf("Get = %q, want 3.11.0", version)
	}
}
