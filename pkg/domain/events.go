package domain

// EventType is the category of a hub notification.
type EventType string

const (
	EventBeforeCall EventType = "before_call"
	EventAfterCall  EventType = "after_call"
	EventGet        EventType = "get"
	EventSet        EventType = "set"
)

// Event is the payload delivered to observer callbacks.
//
// For before_call events Args/Kwargs carry the pending call arguments (without
// the implicit receiver). For after_call events Value carries the result. For
// get events Value carries the current value; for set events the value about
// to be written.
type Event struct {
	Type  EventType
	Scope Scope

	// Owner is the container the member belongs to. It is nil when the owner
	// is a module: the hub nulls module owners out so live namespace identity
	// does not leak into callbacks uncontrolled.
	Owner any

	// Name is the member name the event concerns.
	Name string

	// Member is the original (pre-wrap) descriptor, when known.
	Member any

	Args   []any
	Kwargs map[string]any
	Value  any
}

// Callback observes one event. A nil return means "no opinion"; the first
// callback returning non-nil short-circuits the remaining subscribers and its
// result becomes the notification's result (typically one of the override
// values in this package).
type Callback func(ev Event) any
