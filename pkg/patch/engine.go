package patch

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/observe"
	"github.com/aretw0/canary/pkg/ports"
)

// Engine installs observing wrappers over classified members.
type Engine struct {
	hub     *observe.Hub
	log     *slog.Logger
	metrics *observe.Metrics

	patched     map[identity]struct{}
	intercepted map[ports.Class]struct{}
	initialized map[ports.Class]struct{}
	installs    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

// WithMetrics attaches prometheus instrumentation to the engine.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates a patch engine dispatching through hub.
func NewEngine(hub *observe.Hub, opts ...Option) *Engine {
	e := &Engine{
		hub:         hub,
		log:         slog.Default(),
		patched:     make(map[identity]struct{}),
		intercepted: make(map[ports.Class]struct{}),
		initialized: make(map[ports.Class]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// identity keys the already-patched set. Descriptors (pointer-shaped values)
// dedup by pointer so an inherited method shared by several subclasses is
// wrapped once; plain variable values dedup by (owner, name), since equal
// values on unrelated containers are distinct members.
type identity struct {
	ptr   uintptr
	typ   reflect.Type
	owner any
	name  string
}

func memberIdentity(rec domain.MemberRecord) identity {
	rv := reflect.ValueOf(rec.Member)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return identity{ptr: rv.Pointer(), typ: rv.Type()}
	}
	return identity{owner: rec.Owner, name: rec.Name}
}

// InstallCount reports how many wrapper installations the engine has
// performed. Double-patching the same descriptor does not increase it.
func (e *Engine) InstallCount() int { return e.installs }

// Apply wraps one classified member in place. It no-ops when the underlying
// descriptor has already been patched. Wrap failures are logged with the
// qualified member name and returned to the caller; kinds that take no
// wrapper (classes, modules, special variables) are skipped silently.
func (e *Engine) Apply(rec domain.MemberRecord) error {
	key := memberIdentity(rec)
	if _, done := e.patched[key]; done {
		e.log.Debug("already patched", "member", rec.QualifiedName())
		return nil
	}

	owner, ok := rec.Owner.(ports.Container)
	if !ok {
		return &domain.WrapError{Member: rec.QualifiedName(), Err: fmt.Errorf("owner is not a container")}
	}

	var err error
	switch rec.Kind {
	case domain.KindMethod, domain.KindSpecialMethod, domain.KindFunction:
		switch rec.Scope {
		case domain.ScopeInstance:
			err = e.wrapInstanceMethod(owner, rec)
		case domain.ScopeClass:
			err = e.wrapClassScopedCallable(owner, rec)
		case domain.ScopeModule:
			err = e.wrapModuleFunction(owner, rec)
		}
	case domain.KindClassMethod:
		err = e.wrapClassMethod(owner, rec)
	case domain.KindStaticMethod:
		err = e.wrapStaticMethod(owner, rec)
	case domain.KindProperty:
		err = e.wrapProperty(owner, rec)
	case domain.KindVariable:
		switch rec.Scope {
		case domain.ScopeInstance:
			err = e.wrapInstanceVariable(owner, rec)
		case domain.ScopeClass:
			err = e.wrapClassVariable(owner, rec)
		case domain.ScopeModule:
			err = e.wrapModuleVariable(owner, rec)
		}
	default:
		e.log.Debug("skipping unsupported member kind",
			"member", rec.QualifiedName(), "kind", string(rec.Kind))
		return nil
	}

	if err != nil {
		werr := &domain.WrapError{Member: rec.QualifiedName(), Err: err}
		e.log.Error("wrapper installation failed", "member", rec.QualifiedName(), "err", err)
		return werr
	}

	e.patched[key] = struct{}{}
	e.installs++
	e.metrics.PatchApplied(string(rec.Kind))
	e.log.Debug("patched member",
		"member", rec.QualifiedName(), "kind", string(rec.Kind), "scope", string(rec.Scope))
	return nil
}

// asCallable views a namespace entry as something invocable, unwrapping
// static and class method shells.
func asCallable(entry any) (ports.Callable, bool) {
	switch v := entry.(type) {
	case ports.StaticMethod:
		return v.StaticFunc(), true
	case ports.ClassMethod:
		return v.ClassFunc(), true
	case ports.Callable:
		return v, true
	}
	return nil, false
}

// wrapClassScopedCallable handles plain callables that classified class-level
// (no self declaration): they behave like static methods.
func (e *Engine) wrapClassScopedCallable(owner ports.Container, rec domain.MemberRecord) error {
	if _, isClassMethod := rec.Member.(ports.ClassMethod); isClassMethod {
		return e.wrapClassMethod(owner, rec)
	}
	return e.wrapStaticMethod(owner, rec)
}
