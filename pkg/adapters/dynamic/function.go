package dynamic

import (
	"slices"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Impl is the Go implementation backing a model callable. Receivers arrive
// explicitly in args (instance methods receive the instance as args[0], class
// methods the class).
type Impl func(args []any, kwargs map[string]any) (any, error)

// Func is a declared function: its parameter names are introspectable.
type Func struct {
	name   string
	params []string
	doc    string
	impl   Impl
}

// NewFunc creates a declared function with the given parameter names.
func NewFunc(name string, params []string, impl Impl) *Func {
	return &Func{name: name, params: params, impl: impl}
}

// WithDoc attaches a documentation string and returns the function.
func (f *Func) WithDoc(doc string) *Func {
	f.doc = doc
	return f
}

// Name returns the declared name.
func (f *Func) Name() string { return f.name }

// Call invokes the implementation.
func (f *Func) Call(args []any, kwargs map[string]any) (any, error) {
	return f.impl(args, kwargs)
}

// Params returns the declared parameter names.
func (f *Func) Params() ([]string, error) {
	return slices.Clone(f.params), nil
}

// Doc returns the documentation string.
func (f *Func) Doc() string { return f.doc }

var _ ports.Function = (*Func)(nil)

// NativeFunc models a natively-bound callable with no inspectable
// declaration, like a foreign binding. Its signature can only be recovered
// from its documentation string, if at all.
type NativeFunc struct {
	name string
	doc  string
	impl Impl
}

// NewNativeFunc creates a native callable. doc may carry a signature fragment
// on its first line, mirroring how binding generators document functions.
func NewNativeFunc(name, doc string, impl Impl) *NativeFunc {
	return &NativeFunc{name: name, doc: doc, impl: impl}
}

// Name returns the declared name.
func (f *NativeFunc) Name() string { return f.name }

// Call invokes the implementation.
func (f *NativeFunc) Call(args []any, kwargs map[string]any) (any, error) {
	return f.impl(args, kwargs)
}

// Params always fails: native declarations are not introspectable.
func (f *NativeFunc) Params() ([]string, error) {
	return nil, domain.ErrSignatureUnavailable
}

// Doc returns the documentation string.
func (f *NativeFunc) Doc() string { return f.doc }

var _ ports.Function = (*NativeFunc)(nil)
