package patch

import (
	"fmt"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// wrappedFunc is the call-observing replacement for a callable member. It
// preserves the original's externally visible shape: declared parameters and
// documentation delegate to the original descriptor.
type wrappedFunc struct {
	engine *Engine
	orig   ports.Callable
	owner  ports.Container
	name   string
	scope  domain.Scope

	// recvCount is how many leading arguments are the implicit receiver
	// (1 for instance and class methods, 0 for static and module functions).
	recvCount int
}

func (w *wrappedFunc) Call(args []any, kwargs map[string]any) (any, error) {
	recv := args[:min(w.recvCount, len(args))]
	rest := args[len(recv):]
	return w.engine.callThrough(w.orig, w.owner, w.name, w.scope, recv, rest, kwargs)
}

func (w *wrappedFunc) Params() ([]string, error) {
	if fn, ok := w.orig.(ports.Function); ok {
		return fn.Params()
	}
	return nil, domain.ErrSignatureUnavailable
}

func (w *wrappedFunc) Doc() string { return w.orig.Doc() }

var _ ports.Function = (*wrappedFunc)(nil)

// wrappedStatic and wrappedClassMethod keep the descriptor shells intact so
// re-classification of a patched member reports the same kind.
type wrappedStatic struct{ fn ports.Function }

func (w *wrappedStatic) StaticFunc() ports.Function { return w.fn }

type wrappedClassMethod struct{ fn ports.Function }

func (w *wrappedClassMethod) ClassFunc() ports.Function { return w.fn }

// callThrough is the shared call interception flow: notify before_call,
// honor suppression or argument substitution, invoke the original with the
// receiver re-attached, notify after_call, honor result substitution.
func (e *Engine) callThrough(orig ports.Callable, owner ports.Container, name string, scope domain.Scope, recv, args []any, kwargs map[string]any) (any, error) {
	verdict := e.hub.Notify(domain.Event{
		Type:   domain.EventBeforeCall,
		Scope:  scope,
		Owner:  owner,
		Name:   name,
		Member: orig,
		Args:   args,
		Kwargs: kwargs,
	}, nil)

	if o, ok := domain.AsCallOverride(verdict); ok && o.Suppress {
		return o.ReturnValue, nil
	}
	if o, ok := domain.AsArgOverride(verdict); ok {
		args, kwargs = o.Args, o.Kwargs
	}

	result, err := orig.Call(append(append([]any(nil), recv...), args...), kwargs)
	if err != nil {
		// Delegate failures propagate unchanged; swallowing them would
		// silently change program behavior for the instrumented caller.
		e.log.Error("error in wrapped callable", "member", owner.Name()+"."+name, "err", err)
		return nil, err
	}

	modified := e.hub.Notify(domain.Event{
		Type:   domain.EventAfterCall,
		Scope:  scope,
		Owner:  owner,
		Name:   name,
		Member: orig,
		Value:  result,
	}, nil)
	if modified != nil {
		return modified, nil
	}
	return result, nil
}

// wrapInstanceMethod replaces an instance-scoped callable with a wrapper
// taking (self, args...) and notifying at instance scope.
func (e *Engine) wrapInstanceMethod(owner ports.Container, rec domain.MemberRecord) error {
	orig, ok := asCallable(rec.Member)
	if !ok {
		return fmt.Errorf("member is not callable")
	}
	return owner.Replace(rec.Name, &wrappedFunc{
		engine:    e,
		orig:      orig,
		owner:     owner,
		name:      rec.Name,
		scope:     domain.ScopeInstance,
		recvCount: 1,
	})
}

// wrapClassMethod wraps a class method, keeping the class-method shell so the
// host model still binds the class as implicit receiver.
func (e *Engine) wrapClassMethod(owner ports.Container, rec domain.MemberRecord) error {
	cm, ok := rec.Member.(ports.ClassMethod)
	if !ok {
		return fmt.Errorf("member is not a class method descriptor")
	}
	return owner.Replace(rec.Name, &wrappedClassMethod{fn: &wrappedFunc{
		engine:    e,
		orig:      cm.ClassFunc(),
		owner:     owner,
		name:      rec.Name,
		scope:     domain.ScopeClass,
		recvCount: 1,
	}})
}

// wrapStaticMethod wraps a static method or a class-scoped plain callable.
// Static shells stay shells; bare callables stay bare.
func (e *Engine) wrapStaticMethod(owner ports.Container, rec domain.MemberRecord) error {
	wrapped := func(orig ports.Callable) *wrappedFunc {
		return &wrappedFunc{
			engine: e,
			orig:   orig,
			owner:  owner,
			name:   rec.Name,
			scope:  domain.ScopeClass,
		}
	}
	if sm, ok := rec.Member.(ports.StaticMethod); ok {
		return owner.Replace(rec.Name, &wrappedStatic{fn: wrapped(sm.StaticFunc())})
	}
	orig, ok := asCallable(rec.Member)
	if !ok {
		return fmt.Errorf("member is not callable")
	}
	return owner.Replace(rec.Name, wrapped(orig))
}

// wrapModuleFunction wraps a module-level function; the owner passed to
// notifications is the module (which the hub nulls out of the payload).
func (e *Engine) wrapModuleFunction(owner ports.Container, rec domain.MemberRecord) error {
	orig, ok := asCallable(rec.Member)
	if !ok {
		return fmt.Errorf("member is not callable")
	}
	return owner.Replace(rec.Name, &wrappedFunc{
		engine: e,
		orig:   orig,
		owner:  owner,
		name:   rec.Name,
		scope:  domain.ScopeModule,
	})
}
