package dynamic

import (
	"fmt"
	"slices"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Module is a flat map-backed namespace.
type Module struct {
	name string
	ns   map[string]any
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{name: name, ns: make(map[string]any)}
}

// Define installs a namespace entry and returns the module, for fluent setup.
func (m *Module) Define(name string, entry any) *Module {
	m.ns[name] = entry
	return m
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// MemberNames enumerates all member names, sorted.
func (m *Module) MemberNames() []string {
	names := make([]string, 0, len(m.ns))
	for name := range m.ns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Member resolves a name in the module namespace.
func (m *Module) Member(name string) (any, bool) {
	entry, ok := m.ns[name]
	return entry, ok
}

// Own is identical to Member for modules: they have no ancestors.
func (m *Module) Own(name string) (any, bool) {
	return m.Member(name)
}

// Replace installs a new namespace entry in place.
func (m *Module) Replace(name string, entry any) error {
	m.ns[name] = entry
	return nil
}

// GetAttr reads a module attribute, routing through Slot entries.
func (m *Module) GetAttr(name string) (any, error) {
	entry, ok := m.ns[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", m.name, name, domain.ErrNoSuchMember)
	}
	if slot, ok := entry.(ports.Slot); ok {
		return slot.SlotGet(m)
	}
	return entry, nil
}

// SetAttr writes a module attribute, routing through Slot entries.
func (m *Module) SetAttr(name string, value any) error {
	if entry, ok := m.ns[name]; ok {
		if slot, ok := entry.(ports.Slot); ok {
			return slot.SlotSet(m, value)
		}
	}
	m.ns[name] = value
	return nil
}

// Call invokes a module-level function by name.
func (m *Module) Call(name string, args ...any) (any, error) {
	entry, ok := m.ns[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", m.name, name, domain.ErrNoSuchMember)
	}
	fn, ok := entry.(ports.Callable)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not callable", m.name, name)
	}
	return fn.Call(args, nil)
}

var _ ports.Module = (*Module)(nil)
