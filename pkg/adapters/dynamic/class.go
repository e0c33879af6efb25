package dynamic

import (
	"fmt"
	"slices"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// objectClass is the universal base every class ultimately inherits from. It
// carries a couple of natively-bound defaults so Default provenance and the
// degenerate no-real-owner scope bucket actually occur in this model.
var objectClass = newObjectClass()

func newObjectClass() *Class {
	c := &Class{name: ports.UniversalBaseName, ns: make(map[string]any)}
	c.ns["__str__"] = NewNativeFunc("__str__", "__str__(self) -> str", func(args []any, kwargs map[string]any) (any, error) {
		return fmt.Sprint(args[0]), nil
	})
	c.ns["__repr__"] = NewNativeFunc("__repr__", "__repr__(self) -> str", func(args []any, kwargs map[string]any) (any, error) {
		return fmt.Sprintf("%#v", args[0]), nil
	})
	return c
}

// ObjectClass returns the shared universal base class.
func ObjectClass() ports.Class { return objectClass }

// Class is a map-backed class namespace with bases.
type Class struct {
	name  string
	bases []*Class
	ns    map[string]any
}

// NewClass creates a class. Base-less classes implicitly inherit from the
// universal base.
func NewClass(name string, bases ...*Class) *Class {
	return &Class{name: name, bases: bases, ns: make(map[string]any)}
}

// Define installs a namespace entry and returns the class, for fluent setup.
func (c *Class) Define(name string, entry any) *Class {
	c.ns[name] = entry
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Bases returns the direct ancestors in resolution order. The universal base
// appears last, and only on classes with no declared bases (descendants reach
// it transitively).
func (c *Class) Bases() []ports.Class {
	if c == objectClass {
		return nil
	}
	if len(c.bases) == 0 {
		return []ports.Class{objectClass}
	}
	out := make([]ports.Class, len(c.bases))
	for i, b := range c.bases {
		out[i] = b
	}
	return out
}

// Own looks a name up in this class's own namespace.
func (c *Class) Own(name string) (any, bool) {
	entry, ok := c.ns[name]
	return entry, ok
}

// Member resolves a name through the class and its ancestors.
func (c *Class) Member(name string) (any, bool) {
	if entry, ok := c.ns[name]; ok {
		return entry, true
	}
	for _, base := range c.Bases() {
		if entry, ok := base.Member(name); ok {
			return entry, true
		}
	}
	return nil, false
}

// MemberNames enumerates all member names, inherited included, sorted.
func (c *Class) MemberNames() []string {
	seen := make(map[string]struct{})
	c.collectNames(seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Class) collectNames(into map[string]struct{}) {
	for name := range c.ns {
		into[name] = struct{}{}
	}
	for _, base := range c.Bases() {
		if b, ok := base.(*Class); ok {
			b.collectNames(into)
		}
	}
}

// Replace installs a new namespace entry in place.
func (c *Class) Replace(name string, entry any) error {
	c.ns[name] = entry
	return nil
}

// GetAttr reads a class attribute, routing through Slot entries.
func (c *Class) GetAttr(name string) (any, error) {
	entry, ok := c.Member(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", c.name, name, domain.ErrNoSuchMember)
	}
	if slot, ok := entry.(ports.Slot); ok {
		return slot.SlotGet(c)
	}
	return entry, nil
}

// SetAttr writes a class attribute, routing through Slot entries.
func (c *Class) SetAttr(name string, value any) error {
	if entry, ok := c.Member(name); ok {
		if slot, ok := entry.(ports.Slot); ok {
			return slot.SlotSet(c, value)
		}
	}
	c.ns[name] = value
	return nil
}

// New constructs an instance, running "__init__" when defined.
func (c *Class) New(args ...any) (ports.Object, error) {
	obj := &Object{class: c, dict: make(map[string]any)}
	if init, ok := c.Member("__init__"); ok {
		fn, callable := init.(ports.Callable)
		if !callable {
			return nil, fmt.Errorf("%s.__init__ is not callable", c.name)
		}
		if _, err := fn.Call(append([]any{obj}, args...), nil); err != nil {
			return nil, fmt.Errorf("constructing %s: %w", c.name, err)
		}
	}
	return obj, nil
}

// CallMethod invokes a class-scoped callable by name: class methods receive
// the class implicitly, static methods receive args as-is, and unbound
// functions expect any receiver to be passed explicitly by the caller.
func (c *Class) CallMethod(name string, args ...any) (any, error) {
	entry, ok := c.Member(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", c.name, name, domain.ErrNoSuchMember)
	}
	switch m := entry.(type) {
	case ports.ClassMethod:
		return m.ClassFunc().Call(append([]any{ports.Class(c)}, args...), nil)
	case ports.StaticMethod:
		return m.StaticFunc().Call(args, nil)
	case ports.Callable:
		return m.Call(args, nil)
	default:
		return nil, fmt.Errorf("%s.%s is not callable", c.name, name)
	}
}

var _ ports.Class = (*Class)(nil)
