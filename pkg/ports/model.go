package ports

// UniversalBaseName is the declared name of the universal base class that
// every host-model class ultimately inherits from. Classification relies on
// it to tell Default provenance apart from ordinary inheritance.
const UniversalBaseName = "object"

// Container is a class or module namespace exposing named members.
type Container interface {
	// Name returns the container's declared name.
	Name() string

	// MemberNames enumerates every member name visible on the container,
	// including inherited ones, in sorted order.
	MemberNames() []string

	// Member resolves a name to its raw namespace entry, walking the
	// container's own namespace and then its ancestors in resolution order.
	Member(name string) (any, bool)

	// Own looks a name up in the container's own namespace only.
	Own(name string) (any, bool)

	// Replace installs a new namespace entry under name, replacing any
	// existing one. Host models that cannot replace members in place return
	// domain.ErrImmutableContainer.
	Replace(name string, entry any) error
}

// Class is a container that can construct instances and participates in an
// inheritance hierarchy rooted at a universal base.
type Class interface {
	Container

	// Bases returns the direct ancestors in resolution order. The universal
	// base is included last when present.
	Bases() []Class

	// New constructs an instance, running the class constructor when one is
	// defined.
	New(args ...any) (Object, error)

	// GetAttr reads a class attribute, honoring Slot entries.
	GetAttr(name string) (any, error)

	// SetAttr writes a class attribute, honoring Slot entries.
	SetAttr(name string, value any) error
}

// Module is a flat container with observable attribute access and no
// ancestors. Call keeps the Module shape distinct from Class under type
// assertions, the same way StaticFunc and ClassFunc keep StaticMethod and
// ClassMethod apart.
type Module interface {
	Container

	// GetAttr reads a module attribute, honoring Slot entries.
	GetAttr(name string) (any, error)

	// SetAttr writes a module attribute, honoring Slot entries.
	SetAttr(name string, value any) error

	// Call invokes a module-level function by name.
	Call(name string, args ...any) (any, error)
}

// Object is an instance of a Class.
type Object interface {
	// Class returns the instance's class.
	Class() Class

	// Dict exposes the instance's attribute storage directly, bypassing
	// property descriptors. Patched property wrappers use it for raw access
	// under the reentrancy guard.
	Dict() map[string]any

	// Get reads an attribute through the full protocol: class properties
	// first, then instance storage, then class attributes.
	Get(name string) (any, error)

	// Set writes an attribute through the full protocol.
	Set(name string, value any) error
}
