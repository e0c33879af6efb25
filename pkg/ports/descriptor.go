package ports

// Callable is anything the host model can invoke. Receivers are passed
// explicitly: instance methods receive the instance as args[0], class methods
// the class, static methods and module functions nothing.
type Callable interface {
	Call(args []any, kwargs map[string]any) (any, error)

	// Doc returns the callable's documentation string, used as a signature
	// fallback for natively-bound callables. May be empty.
	Doc() string
}

// Function is a callable with (possibly) introspectable declared parameters.
// Params returns domain.ErrSignatureUnavailable for natively-bound callables
// whose declaration cannot be inspected; it never invokes the callable.
type Function interface {
	Callable
	Params() ([]string, error)
}

// Property is an instance-scoped computed attribute descriptor.
type Property interface {
	Get(self Object) (any, error)
	Set(self Object, value any) error
	HasSetter() bool
}

// StaticMethod marks a class-scoped callable that receives no implicit
// receiver. The method name is distinct from ClassMethod's so the two
// descriptor shapes stay distinguishable under type assertion.
type StaticMethod interface {
	StaticFunc() Function
}

// ClassMethod marks a class-scoped callable that receives the class object as
// its implicit first argument.
type ClassMethod interface {
	ClassFunc() Function
}

// Slot is a data descriptor installed in a container's namespace. Host models
// must route GetAttr/SetAttr through it when the namespace entry implements
// this interface. The patch engine uses slots to observe class-level and
// module-level variables.
type Slot interface {
	SlotGet(owner Container) (any, error)
	SlotSet(owner Container, value any) error
}
