// Package alias maps user-chosen names to installed versions. Each
// runtime type keeps its own document, so "lts" can mean one thing for
// node and another for go.
package alias

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/store"
)

// document is the on-disk shape of aliases-<runtime>.json
type document struct {
	Aliases map[string]string `json:"aliases"`
}

// Entry is one alias with its target version
type Entry struct {
	Name    string
	Version string
}

// Registry resolves and persists aliases against the version store.
type Registry struct {
	st *store.Store
}

// NewRegistry creates a Registry backed by the given store.
func NewRegistry(st *store.Store) *Registry {
	return &Registry{st: st}
}

// Create points an alias at an installed version. The target must be
// installed at creation time; it is not re-validated afterwards.
func (r *Registry) Create(runtimeName, name, version string) error {
	if !r.st.IsInstalled(runtimeName, version) {
		return &store.NotInstalledError{Runtime: runtimeName, Version: version}
	}

	doc, err := load(runtimeName)
	if err != nil {
		return err
	}

	doc.Aliases[name] = version
	return save(runtimeName, doc)
}

// Resolve returns the version an alias points at. The second return
// value reports whether the alias exists at all. A defined alias whose
// target has since been removed resolves to a NotInstalledError.
func (r *Registry) Resolve(runtimeName, name string) (string, bool, error) {
	doc, err := load(runtimeName)
	if err != nil {
		return "", false, err
	}

	version, ok := doc.Aliases[name]
	if !ok {
		return "", false, nil
	}

	if !r.st.IsInstalled(runtimeName, version) {
		return "", true, &store.NotInstalledError{Runtime: runtimeName, Version: version}
	}

	return version, true, nil
}

// List returns all aliases for a runtime, sorted by alias name.
func (r *Registry) List(runtimeName string) ([]Entry, error) {
	doc, err := load(runtimeName)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(doc.Aliases))
	for name, version := range doc.Aliases {
		entries = append(entries, Entry{Name: name, Version: version})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// Delete removes an alias.
func (r *Registry) Delete(runtimeName, name string) error {
	doc, err := load(runtimeName)
	if err != nil {
		return err
	}

	if _, ok := doc.Aliases[name]; !ok {
		return fmt.Errorf("no alias named %s for %s", name, runtimeName)
	}

	delete(doc.Aliases, name)
	return save(runtimeName, doc)
}

func load(runtimeName string) (*document, error) {
	path := config.AliasFilePath(runtimeName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{Aliases: make(map[string]string)}, nil
		}
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if doc.Aliases == nil {
		doc.Aliases = make(map[string]string)
	}

	return &doc, nil
}

func save(runtimeName string, doc *document) error {
	path := config.AliasFilePath(runtimeName)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
