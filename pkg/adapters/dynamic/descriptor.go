package dynamic

import (
	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Prop is a property descriptor: a computed instance attribute with a getter
// and an optional setter.
type Prop struct {
	getter func(self ports.Object) (any, error)
	setter func(self ports.Object, value any) error
	doc    string
}

// NewProperty creates a read-only property.
func NewProperty(getter func(self ports.Object) (any, error)) *Prop {
	return &Prop{getter: getter}
}

// WithSetter adds a setter and returns the property.
func (p *Prop) WithSetter(setter func(self ports.Object, value any) error) *Prop {
	p.setter = setter
	return p
}

// WithDoc attaches a documentation string and returns the property.
func (p *Prop) WithDoc(doc string) *Prop {
	p.doc = doc
	return p
}

// Get reads the property through its getter.
func (p *Prop) Get(self ports.Object) (any, error) {
	return p.getter(self)
}

// Set writes the property through its setter, or fails with ErrNoSetter.
func (p *Prop) Set(self ports.Object, value any) error {
	if p.setter == nil {
		return domain.ErrNoSetter
	}
	return p.setter(self, value)
}

// HasSetter reports whether the property is writable.
func (p *Prop) HasSetter() bool { return p.setter != nil }

var _ ports.Property = (*Prop)(nil)

// Static wraps a function as a class-scoped callable with no implicit
// receiver.
type Static struct {
	fn ports.Function
}

// NewStatic creates a static method descriptor.
func NewStatic(fn ports.Function) *Static { return &Static{fn: fn} }

// StaticFunc returns the wrapped function.
func (s *Static) StaticFunc() ports.Function { return s.fn }

var _ ports.StaticMethod = (*Static)(nil)

// ClassMeth wraps a function as a class-scoped callable receiving the class
// object as its implicit first argument.
type ClassMeth struct {
	fn ports.Function
}

// NewClassMethod creates a class method descriptor.
func NewClassMethod(fn ports.Function) *ClassMeth { return &ClassMeth{fn: fn} }

// ClassFunc returns the wrapped function.
func (c *ClassMeth) ClassFunc() ports.Function { return c.fn }

var _ ports.ClassMethod = (*ClassMeth)(nil)
