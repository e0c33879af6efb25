package domain

// Kind identifies what a classified member is. Exactly one Kind is assigned
// per member at classification time; re-classification of the same underlying
// descriptor is idempotent.
type Kind string

const (
	KindVariable        Kind = "variable"
	KindProperty        Kind = "property"
	KindMethod          Kind = "method"
	KindStaticMethod    Kind = "staticMethod"
	KindClassMethod     Kind = "classMethod"
	KindFunction        Kind = "function"
	KindModule          Kind = "module"
	KindClass           Kind = "class"
	KindSpecialMethod   Kind = "specialMethod"
	KindSpecialVariable Kind = "specialVariable"
)

// Scope identifies which notification channel a member's events route to and
// which wrapping strategy the patch engine applies.
type Scope string

const (
	ScopeInstance Scope = "instance"
	ScopeClass    Scope = "class"
	ScopeModule   Scope = "module"
)

// Provenance identifies where in the ancestor chain a member is defined.
type Provenance string

const (
	// ProvenanceLocal means the member is defined directly on the container.
	ProvenanceLocal Provenance = "Local"
	// ProvenanceInherited means the member is defined on a real ancestor.
	ProvenanceInherited Provenance = "Inherited"
	// ProvenanceDefault means the member only exists on the universal base.
	ProvenanceDefault Provenance = "Default"
)

// MemberRecord is the classification result for a single (container, name)
// pair. Records are immutable once created and owned by the inspector's
// per-container capture list.
type MemberRecord struct {
	// Name is the member's name as enumerated on the owner.
	Name string

	// Member is the raw namespace entry backing the member (a descriptor for
	// callables and properties, the value itself for plain variables).
	Member any

	Kind       Kind
	Scope      Scope
	Provenance Provenance

	// ImplementedFrom is the name of the container that actually defines the
	// member, walking the resolution order. Empty when no definition site
	// could be located.
	ImplementedFrom string

	// Owner is the container the record was captured from. It is kept as an
	// opaque reference so this package stays free of host-model types; the
	// inspector and patch engine assert it back to a ports container.
	Owner any

	// OwnerName is the owner's name, recorded separately so reports and
	// qualified names never need to touch the live container.
	OwnerName string
}

// QualifiedName returns "Owner.name", or just the name when the owner is
// anonymous.
func (r MemberRecord) QualifiedName() string {
	if r.OwnerName == "" {
		return r.Name
	}
	return r.OwnerName + "." + r.Name
}

// IsSpecial reports whether name has the double-underscore bracket shape
// ("__x__") that marks special methods and special variables.
func IsSpecial(name string) bool {
	return len(name) > 4 && name[:2] == "__" && name[len(name)-2:] == "__"
}
