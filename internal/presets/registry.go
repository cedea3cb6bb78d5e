package presets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gradlegen/gradlegen/internal/cli/ui"
)

// NotFoundError is returned when no preset matches a name. Suggestions holds
// the registered names closest to it.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("preset %s not found", e.Name)
	}
	return fmt.Sprintf("preset %s not found, did you mean %s?", e.Name, strings.Join(e.Suggestions, " or "))
}

// Registry manages available presets
type Registry struct {
	presets map[string]*Preset
	mutex   sync.RWMutex
}

// NewRegistry creates a new preset registry
func NewRegistry() *Registry {
	return &Registry{
		presets: make(map[string]*Preset),
	}
}

// Register registers a preset in the registry
func (r *Registry) Register(p *Preset) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := normalizeName(p.Name)
	if _, exists := r.presets[key]; exists {
		return fmt.Errorf("preset %s already registered", p.Name)
	}

	r.presets[key] = p
	return nil
}

// Get retrieves a preset by name. Case and surrounding spaces are ignored, so
// "Android-App " finds android-app. A miss returns a *NotFoundError.
func (r *Registry) Get(name string) (*Preset, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if p, exists := r.presets[normalizeName(name)]; exists {
		return p, nil
	}

	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, &NotFoundError{Name: name, Suggestions: ui.FindSimilar(normalizeName(name), names, nil)}
}

// normalizeName maps a user-typed preset name to its registry key
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// List returns all registered presets sorted by name
func (r *Registry) List() []*Preset {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	presets := make([]*Preset, 0, len(r.presets))
	for _, p := range r.presets {
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })

	return presets
}

// Names returns the names of all registered presets, sorted
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name
	}
	return names
}

// Exists checks if a preset exists
func (r *Registry) Exists(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.presets[normalizeName(name)]
	return exists
}

// Unregister removes a preset from the registry
func (r *Registry) Unregister(name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := normalizeName(name)
	if _, exists := r.presets[key]; !exists {
		return &NotFoundError{Name: name}
	}

	delete(r.presets, key)
	return nil
}

var (
	defaultRegistry = NewRegistry()
	builtinOnce     sync.Once
	builtinErr      error
)

// DefaultRegistry returns the default preset registry
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// SetDefaultRegistry sets the default preset registry (useful for testing)
func SetDefaultRegistry(r *Registry) {
	defaultRegistry = r
	builtinOnce = sync.Once{}
	builtinErr = nil
}

// RegisterBuiltinPresets registers all built-in presets in the default
// registry. Repeated calls are no-ops.
func RegisterBuiltinPresets() error {
	builtinOnce.Do(func() {
		for _, p := range Builtin() {
			if err := defaultRegistry.Register(p); err != nil {
				builtinErr = fmt.Errorf("failed to register preset %s: %w", p.Name, err)
				return
			}
		}
	})
	return builtinErr
}
