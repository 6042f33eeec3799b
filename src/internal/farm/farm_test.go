package farm

import (
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
)

type fakeProfile struct {
	name      string
	execs     []string
	nestedBin bool
}

func (p *fakeProfile) Name() string          { return p.name }
func (p *fakeProfile) DisplayName() string   { return strings.ToUpper(p.name[:1]) + p.name[1:] }
func (p *fakeProfile) Executables() []string { return p.execs }
func (p *fakeProfile) HasLTS() bool          { return false }
func (p *fakeProfile) PinFileName() string   { return "." + p.name + "-version" }
func (p *fakeProfile) PlatformSuffix(goos, goarch string) (string, error) {
	return goos + "-" + goarch, nil
}
func (p *fakeProfile) ArchiveExt(goos string) string { return ".tar.gz" }
func (p *fakeProfile) DownloadURL(version, suffix, ext string) string {
	return "https://example.invalid/" + p.name + "-" + version + ext
}
func (p *fakeProfile) BinaryDir(installDir, version, suffix string) string {
	if p.nestedBin {
		return filepath.Join(installDir, p.name+"-v"+version+"-"+suffix, "bin")
	}
	return filepath.Join(installDir, "bin")
}
func (p *fakeProfile) RequiresInstallScript() bool                   { return false }
func (p *fakeProfile) Repair(stageDir, version, suffix string) error { return nil }
func (p *fakeProfile) Releases() ([]runtime.Release, error)          { return nil, nil }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	t.Setenv("RTVM_ROOT", t.TempDir())
	config.ResetPathsCache()

	s, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return s
}

func registerFake(t *testing.T, name string, execs ...string) *fakeProfile {
	t.Helper()
	profile := &fakeProfile{name: name, execs: execs}
	if err := runtime.Register(profile); err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	t.Cleanup(func() { _ = runtime.Unregister(name) })
	return profile
}

// installFake lays a version directory down on disk directly
func installFake(t *testing.T, st *store.Store, name, version string, bins ...string) {
	t.Helper()
	binDir := filepath.Join(st.InstallPath(name, version), "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, bin := range bins {
		script := []byte("#!/bin/sh\necho " + bin + "\n")
		if err := os.WriteFile(filepath.Join(binDir, bin), script, 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func assertLauncher(t *testing.T, name, wantTargetPart string) {
	t.Helper()
	link := filepath.Join(config.DefaultPaths().Bin, name)

	if goruntime.GOOS == "windows" {
		content, err := os.ReadFile(link + ".cmd")
		if err != nil {
			t.Fatalf("launcher %s missing: %v", name, err)
		}
		if !strings.Contains(string(content), wantTargetPart) {
			t.Errorf("launcher %s does not reference %s:\n%s", name, wantTargetPart, content)
		}
		return
	}

	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("launcher %s missing: %v", name, err)
	}
	if !strings.Contains(target, wantTargetPart) {
		t.Errorf("launcher %s points at %s, want a path containing %s", name, target, wantTargetPart)
	}
}

func TestUse_CreatesLaunchers(t *testing.T) {
	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")

	installFake(t, st, "alpha", "18.17.0", "alpha", "alpha-pkg")

	if err := Use(st, profile, "18.17.0"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}

	assertLauncher(t, "alpha", filepath.Join("versions", "alpha", "18.17.0"))
	assertLauncher(t, "alpha-pkg", filepath.Join("versions", "alpha", "18.17.0"))

	marker := filepath.Join(config.DefaultPaths().Root, config.MarkerPrefix+"alpha")
	content, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("version marker missing: %v", err)
	}
	if strings.TrimSpace(string(content)) != "18.17.0" {
		t.Errorf("marker content = %q, want 18.17.0", content)
	}
}

func TestUse_NotInstalled(t *testing.T) {
	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")

	err := Use(st, profile, "99.0.0")
	if !store.IsNotInstalled(err) {
		t.Fatalf("expected NotInstalledError, got %v", err)
	}
}

func TestUse_SwitchReplacesLaunchers(t *testing.T) {
	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")

	installFake(t, st, "alpha", "18.17.0", "alpha")
	installFake(t, st, "alpha", "20.5.1", "alpha")

	if err := Use(st, profile, "18.17.0"); err != nil {
		t.Fatal(err)
	}
	if err := Use(st, profile, "20.5.1"); err != nil {
		t.Fatal(err)
	}

	assertLauncher(t, "alpha", filepath.Join("versions", "alpha", "20.5.1"))

	if got, _ := st.Active().Get("alpha"); got != "20.5.1" {
		t.Errorf("active version = %q, want 20.5.1", got)
	}
}

func TestUse_KeepsOtherRuntimesActive(t *testing.T) {
	st := newTestStore(t)
	alpha := registerFake(t, "alpha", "alpha")
	beta := registerFake(t, "beta", "beta")

	installFake(t, st, "alpha", "18.17.0", "alpha")
	installFake(t, st, "alpha", "20.5.1", "alpha")
	installFake(t, st, "beta", "1.22.0", "beta")

	if err := Use(st, alpha, "18.17.0"); err != nil {
		t.Fatal(err)
	}
	if err := Use(st, beta, "1.22.0"); err != nil {
		t.Fatal(err)
	}

	// Both runtimes are reachable after the second switch
	assertLauncher(t, "alpha", filepath.Join("versions", "alpha", "18.17.0"))
	assertLauncher(t, "beta", filepath.Join("versions", "beta", "1.22.0"))

	// Switching alpha again must not drop beta's launchers
	if err := Use(st, alpha, "20.5.1"); err != nil {
		t.Fatal(err)
	}
	assertLauncher(t, "alpha", filepath.Join("versions", "alpha", "20.5.1"))
	assertLauncher(t, "beta", filepath.Join("versions", "beta", "1.22.0"))

	if got, _ := st.Active().Get("beta"); got != "1.22.0" {
		t.Errorf("beta active version = %q, want 1.22.0", got)
	}
}

func TestUse_CarriesOverPlainFiles(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("plain-file detection relies on symlinks")
	}

	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")
	installFake(t, st, "alpha", "18.17.0", "alpha")

	binDir := config.DefaultPaths().Bin
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	keeper := filepath.Join(binDir, "rtvm")
	if err := os.WriteFile(keeper, []byte("fake rtvm binary"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := Use(st, profile, "18.17.0"); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(keeper)
	if err != nil {
		t.Fatalf("plain file lost across rebuild: %v", err)
	}
	if string(content) != "fake rtvm binary" {
		t.Errorf("plain file content changed: %q", content)
	}

	info, err := os.Lstat(keeper)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("plain file became a symlink")
	}
	if info.Mode()&0111 == 0 {
		t.Error("plain file lost its executable bit")
	}
}

func TestUse_FlatBinaryDirFallback(t *testing.T) {
	st := newTestStore(t)

	// Profile expects a nested layout, but the tree on disk is flat
	profile := &fakeProfile{name: "alpha", execs: []string{"alpha"}, nestedBin: true}
	if err := runtime.Register(profile); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = runtime.Unregister("alpha") })

	installFake(t, st, "alpha", "18.17.0", "alpha")

	if err := Use(st, profile, "18.17.0"); err != nil {
		t.Fatalf("Use failed on flat layout: %v", err)
	}

	assertLauncher(t, "alpha", filepath.Join("versions", "alpha", "18.17.0"))
}

func TestUse_DamagedTree(t *testing.T) {
	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")

	// Version directory exists but holds no bin directory
	if err := os.MkdirAll(st.InstallPath("alpha", "18.17.0"), 0755); err != nil {
		t.Fatal(err)
	}

	err := Use(st, profile, "18.17.0")
	if !runtime.IsLayoutMismatch(err) {
		t.Fatalf("expected LayoutMismatchError, got %v", err)
	}
}

func TestRehash_RestoresFromMarkers(t *testing.T) {
	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")
	installFake(t, st, "alpha", "18.17.0", "alpha", "alpha-pkg")

	if err := Use(st, profile, "18.17.0"); err != nil {
		t.Fatal(err)
	}

	// Wipe the farm, then rebuild it from the markers alone
	if err := os.RemoveAll(config.DefaultPaths().Bin); err != nil {
		t.Fatal(err)
	}

	if err := Rehash(st); err != nil {
		t.Fatalf("Rehash failed: %v", err)
	}

	assertLauncher(t, "alpha", filepath.Join("versions", "alpha", "18.17.0"))
	assertLauncher(t, "alpha-pkg", filepath.Join("versions", "alpha", "18.17.0"))
}

func TestRehash_PicksUpNewExecutables(t *testing.T) {
	st := newTestStore(t)
	profile := registerFake(t, "alpha", "alpha")
	installFake(t, st, "alpha", "18.17.0", "alpha")

	if err := Use(st, profile, "18.17.0"); err != nil {
		t.Fatal(err)
	}

	// A package manager drops a new executable into the active version
	binDir := filepath.Join(st.InstallPath("alpha", "18.17.0"), "bin")
	if err := os.WriteFile(filepath.Join(binDir, "newtool"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := Rehash(st); err != nil {
		t.Fatalf("Rehash failed: %v", err)
	}

	assertLauncher(t, "newtool", filepath.Join("versions", "alpha", "18.17.0"))
}

func TestRehash_SkipsStaleMarker(t *testing.T) {
	st := newTestStore(t)
	registerFake(t, "alpha", "alpha")

	// Marker names a version that is no longer on disk
	if err := st.Active().Set("alpha", "9.9.9"); err != nil {
		t.Fatal(err)
	}

	if err := Rehash(st); err != nil {
		t.Fatalf("Rehash should skip stale markers, got: %v", err)
	}

	if _, err := os.Lstat(filepath.Join(config.DefaultPaths().Bin, "alpha")); !os.IsNotExist(err) {
		t.Error("stale marker still produced a launcher")
	}
}
