package dynamic

import (
	"fmt"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Object is an instance with a map-backed attribute dict.
type Object struct {
	class *Class
	dict  map[string]any
}

// Class returns the instance's class.
func (o *Object) Class() ports.Class { return o.class }

// Dict exposes the raw attribute storage. Property wrappers use it for
// guarded raw access.
func (o *Object) Dict() map[string]any { return o.dict }

// Get reads an attribute: class properties first, then the instance dict,
// then class attributes (slots included).
func (o *Object) Get(name string) (any, error) {
	if prop, ok := o.classProperty(name); ok {
		return prop.Get(o)
	}
	if v, ok := o.dict[name]; ok {
		return v, nil
	}
	return o.class.GetAttr(name)
}

// Set writes an attribute: property setters first, then class slots, then the
// instance dict.
func (o *Object) Set(name string, value any) error {
	if prop, ok := o.classProperty(name); ok {
		return prop.Set(o, value)
	}
	if entry, ok := o.class.Member(name); ok {
		if slot, ok := entry.(ports.Slot); ok {
			return slot.SlotSet(o.class, value)
		}
	}
	o.dict[name] = value
	return nil
}

// CallMethod invokes a named method with the instance bound as receiver.
func (o *Object) CallMethod(name string, args ...any) (any, error) {
	entry, ok := o.class.Member(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", o.class.Name(), name, domain.ErrNoSuchMember)
	}
	switch m := entry.(type) {
	case ports.ClassMethod:
		return m.ClassFunc().Call(append([]any{ports.Class(o.class)}, args...), nil)
	case ports.StaticMethod:
		return m.StaticFunc().Call(args, nil)
	case ports.Callable:
		return m.Call(append([]any{ports.Object(o)}, args...), nil)
	default:
		return nil, fmt.Errorf("%s.%s is not callable", o.class.Name(), name)
	}
}

// classProperty resolves a property descriptor through the class chain.
func (o *Object) classProperty(name string) (ports.Property, bool) {
	entry, ok := o.class.Member(name)
	if !ok {
		return nil, false
	}
	prop, ok := entry.(ports.Property)
	return prop, ok
}

var _ ports.Object = (*Object)(nil)
