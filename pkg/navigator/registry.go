package navigator

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyRegistered = errors.New("extension already registered")
	ErrNotRegistered     = errors.New("extension not registered")
)

// Extension coordinates under which Register installs the navigator.
const (
	ExtensionKind = "core"
	ExtensionName = "navigator"
)

// Factory builds a navigator-like extension for a host.
type Factory func(host Host, platform Platform, opts ...Option) (Controller, error)

// Registry is the host library's extension table.
type Registry interface {
	Register(kind, name string, f Factory) error
	Lookup(kind, name string) (Factory, bool)
}

// Register installs the navigator factory into reg. Call it once.
func Register(reg Registry) error {
	if reg == nil {
		return errors.New("navigator: nil registry")
	}
	return reg.Register(ExtensionKind, ExtensionName, func(h Host, p Platform, opts ...Option) (Controller, error) {
		return New(h, p, opts...)
	})
}

// MemoryRegistry is an in-process Registry.
type MemoryRegistry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty MemoryRegistry.
func NewRegistry() *MemoryRegistry {
	return &MemoryRegistry{factories: make(map[string]Factory)}
}

func registryKey(kind, name string) string { return kind + "/" + name }

// Register implements Registry.
func (r *MemoryRegistry) Register(kind, name string, f Factory) error {
	key := registryKey(kind, name)
	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("%s: %w", key, ErrAlreadyRegistered)
	}
	r.factories[key] = f
	return nil
}

// Lookup implements Registry.
func (r *MemoryRegistry) Lookup(kind, name string) (Factory, bool) {
	f, ok := r.factories[registryKey(kind, name)]
	return f, ok
}

// Invoke looks up an extension and builds it.
func (r *MemoryRegistry) Invoke(kind, name string, h Host, p Platform, opts ...Option) (Controller, error) {
	f, ok := r.Lookup(kind, name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", registryKey(kind, name), ErrNotRegistered)
	}
	return f(h, p, opts...)
}
