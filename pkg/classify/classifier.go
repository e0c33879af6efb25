package classify

import (
	"log/slog"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// Classifier decides member kinds, scopes and provenance from descriptor
// shapes. It holds a logger because classification anomalies are logged and
// recovered, never raised.
type Classifier struct {
	log *slog.Logger
}

// New creates a classifier. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{log: logger}
}

// DescriptorOf looks up the raw namespace entry backing name, walking the
// container's own namespace and then each ancestor in resolution order,
// stopping at the first match.
func DescriptorOf(c ports.Container, name string) (any, bool) {
	if entry, ok := c.Own(name); ok {
		return entry, true
	}
	if cls, ok := c.(ports.Class); ok {
		for _, base := range cls.Bases() {
			if entry, ok := DescriptorOf(base, name); ok {
				return entry, true
			}
		}
	}
	return nil, false
}

// ImplementedIn returns the name of the container that actually defines name.
// For modules a member not in the module's own namespace is reported as
// "imported". Returns "" when no definition site is found.
func ImplementedIn(c ports.Container, name string) string {
	if _, ok := c.Own(name); ok {
		return c.Name()
	}
	if cls, ok := c.(ports.Class); ok {
		for _, base := range cls.Bases() {
			if from := ImplementedIn(base, name); from != "" {
				return from
			}
		}
		return ""
	}
	if _, ok := c.(ports.Module); ok {
		return "imported"
	}
	return ""
}

// KindOf decides a member's kind by descriptor shape. Precedence: class,
// module, property, static method, class method, plain function, non-callable
// (variable or special variable), then the callable fallback (method or
// special method for natively-bound callables with no inspectable
// declaration).
func (cl *Classifier) KindOf(c ports.Container, name string, member any) domain.Kind {
	switch member.(type) {
	case ports.Class:
		return domain.KindClass
	case ports.Module:
		return domain.KindModule
	}

	desc, _ := DescriptorOf(c, name)
	switch desc.(type) {
	case ports.Property:
		return domain.KindProperty
	case ports.StaticMethod:
		return domain.KindStaticMethod
	case ports.ClassMethod:
		return domain.KindClassMethod
	}

	if fn, ok := member.(ports.Function); ok {
		if _, err := fn.Params(); err == nil {
			if domain.IsSpecial(name) {
				return domain.KindSpecialMethod
			}
			return domain.KindFunction
		}
	}

	if _, callable := member.(ports.Callable); !callable {
		if domain.IsSpecial(name) {
			return domain.KindSpecialVariable
		}
		return domain.KindVariable
	}

	// Callable but not a recognized shape: best-guess method.
	if domain.IsSpecial(name) {
		return domain.KindSpecialMethod
	}
	return domain.KindMethod
}

// ScopeOf decides which notification channel a member routes to.
//
// Callables defined only on the universal base are bucketed as module-scoped.
// That rule is carried over from the behavior this layer replaces; it reads
// like a defect (class-scoped would be the obvious choice) but changing it
// would silently reroute events for default members, so the bucket is kept
// and isolated here. See DESIGN.md.
func (cl *Classifier) ScopeOf(c ports.Container, name string, member any, implementedFrom string, declaresSelf bool) domain.Scope {
	if _, ok := c.(ports.Module); ok {
		return domain.ScopeModule
	}
	if _, ok := c.(ports.Class); !ok {
		return domain.ScopeClass
	}

	desc, _ := DescriptorOf(c, name)
	switch desc.(type) {
	case ports.Property:
		return domain.ScopeInstance
	case ports.StaticMethod, ports.ClassMethod:
		return domain.ScopeClass
	}

	if _, callable := member.(ports.Callable); !callable {
		return domain.ScopeClass
	}
	if declaresSelf {
		return domain.ScopeInstance
	}
	if implementedFrom == ports.UniversalBaseName {
		return domain.ScopeModule
	}
	return domain.ScopeClass
}

// ProvenanceOf derives where a member is defined relative to the container.
func (cl *Classifier) ProvenanceOf(c ports.Container, implementedFrom string) domain.Provenance {
	switch implementedFrom {
	case c.Name():
		return domain.ProvenanceLocal
	case ports.UniversalBaseName:
		return domain.ProvenanceDefault
	case "":
		return domain.ProvenanceLocal
	default:
		return domain.ProvenanceInherited
	}
}

// UsesSelf reports whether a callable's first declared parameter is named
// exactly "self". Determined by safe signature introspection only; the
// callable is never invoked, and uninspectable declarations count as false.
func UsesSelf(member any) bool {
	fn, ok := member.(ports.Function)
	if !ok {
		return false
	}
	params, err := fn.Params()
	if err != nil || len(params) == 0 {
		return false
	}
	return params[0] == "self"
}

// Record classifies one member end to end and assembles its MemberRecord.
func (cl *Classifier) Record(c ports.Container, name string, member any) domain.MemberRecord {
	implementedFrom := ImplementedIn(c, name)
	declaresSelf := UsesSelf(member)
	kind := cl.KindOf(c, name, member)
	scope := cl.ScopeOf(c, name, member, implementedFrom, declaresSelf)
	prov := cl.ProvenanceOf(c, implementedFrom)

	return domain.MemberRecord{
		Name:            name,
		Member:          member,
		Kind:            kind,
		Scope:           scope,
		Provenance:      prov,
		ImplementedFrom: implementedFrom,
		Owner:           c,
		OwnerName:       c.Name(),
	}
}
