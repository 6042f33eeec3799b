package runtime

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages all registered runtime profiles.
type Registry struct {
	profiles map[string]Profile
	mu       sync.RWMutex
}

// Global registry instance
var globalRegistry = &Registry{
	profiles: make(map[string]Profile),
}

// NewRegistry creates a new profile registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// Register adds a runtime profile to the registry.
func (r *Registry) Register(profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := profile.Name()
	if _, exists := r.profiles[name]; exists {
		return fmt.Errorf("runtime profile '%s' is already registered", name)
	}

	r.profiles[name] = profile
	return nil
}

// Get retrieves a runtime profile by name.
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[name]
	if !exists {
		return nil, fmt.Errorf("unknown runtime '%s'", name)
	}

	return profile, nil
}

// List returns all registered runtime names, sorted for stable output.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns all registered profiles in name order.
func (r *Registry) GetAll() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make([]Profile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, r.profiles[name])
	}
	return profiles
}

// Has checks if a runtime profile is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.profiles[name]
	return exists
}

// Unregister removes a runtime profile from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[name]; !exists {
		return fmt.Errorf("unknown runtime '%s'", name)
	}

	delete(r.profiles, name)
	return nil
}

// Global registry access functions

// Register adds a profile to the global registry.
func Register(profile Profile) error {
	return globalRegistry.Register(profile)
}

// Get retrieves a profile from the global registry.
func Get(name string) (Profile, error) {
	return globalRegistry.Get(name)
}

// List returns all registered runtime names from the global registry.
func List() []string {
	return globalRegistry.List()
}

// GetAll returns all profiles from the global registry.
func GetAll() []Profile {
	return globalRegistry.GetAll()
}

// Has checks if a profile exists in the global registry.
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// Unregister removes a profile from the global registry.
func Unregister(name string) error {
	return globalRegistry.Unregister(name)
}
