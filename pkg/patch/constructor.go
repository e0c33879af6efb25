package patch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// initWrapper is the constructor interceptor. It delegates to the constructor
// it replaced, and after the class's first construction runs the one-time
// instance-variable registration pass, then restores the wrapped constructor
// so the pass never repeats. Because interception is installed after member
// patching, the restored constructor keeps any notification wrapper it
// already carried.
type initWrapper struct {
	engine *Engine
	cls    ports.Class
	orig   ports.Callable
}

func (w *initWrapper) Call(args []any, kwargs map[string]any) (any, error) {
	result, err := w.orig.Call(args, kwargs)
	if err != nil {
		return nil, err
	}

	if _, done := w.engine.initialized[w.cls]; !done {
		w.engine.initialized[w.cls] = struct{}{}
		if len(args) > 0 {
			if self, ok := args[0].(ports.Object); ok {
				w.engine.registerInstanceVariables(w.cls, self)
			}
		}
	}

	if err := w.cls.Replace("__init__", w.orig); err != nil {
		w.engine.log.Error("failed to restore constructor", "class", w.cls.Name(), "err", err)
	}
	return result, nil
}

func (w *initWrapper) Params() ([]string, error) {
	if fn, ok := w.orig.(ports.Function); ok {
		return fn.Params()
	}
	return nil, domain.ErrSignatureUnavailable
}

func (w *initWrapper) Doc() string { return w.orig.Doc() }

var _ ports.Function = (*initWrapper)(nil)

// InterceptConstructor wraps a class constructor so the first construction
// registers every instance variable it materializes as a patchable
// instance-level member. Idempotent per class; classes without a constructor
// are skipped (they materialize no instance variables).
func (e *Engine) InterceptConstructor(cls ports.Class) error {
	if _, done := e.intercepted[cls]; done {
		return nil
	}
	entry, ok := cls.Member("__init__")
	if !ok {
		return nil
	}
	orig, ok := entry.(ports.Callable)
	if !ok {
		return &domain.WrapError{
			Member: cls.Name() + ".__init__",
			Err:    fmt.Errorf("constructor is not callable"),
		}
	}
	if err := cls.Replace("__init__", &initWrapper{engine: e, cls: cls, orig: orig}); err != nil {
		return &domain.WrapError{Member: cls.Name() + ".__init__", Err: err}
	}
	e.intercepted[cls] = struct{}{}
	return nil
}

// registerInstanceVariables patches every attribute the first construction
// materialized in the instance dict as an instance-level variable.
func (e *Engine) registerInstanceVariables(cls ports.Class, self ports.Object) {
	dict := self.Dict()
	names := make([]string, 0, len(dict))
	for name := range dict {
		// Shadow slots left by property wrappers on ancestor classes are
		// storage, not members.
		if strings.HasPrefix(name, shadowPrefix) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		rec := domain.MemberRecord{
			Name:            name,
			Member:          dict[name],
			Kind:            domain.KindVariable,
			Scope:           domain.ScopeInstance,
			Provenance:      domain.ProvenanceLocal,
			ImplementedFrom: cls.Name(),
			Owner:           cls,
			OwnerName:       cls.Name(),
		}
		if err := e.Apply(rec); err != nil {
			e.log.Error("failed to patch instance variable",
				"member", rec.QualifiedName(), "err", err)
		}
	}
}
