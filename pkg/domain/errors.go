package domain

import (
	"errors"
	"fmt"
)

// ErrSignatureUnavailable is returned by Function.Params when a callable's
// declared parameters cannot be introspected (natively-bound callables).
// Classification recovers from it locally; it never surfaces to callers.
var ErrSignatureUnavailable = errors.New("signature unavailable")

// ErrNoSuchMember is returned when a named member cannot be resolved on a
// container or instance.
var ErrNoSuchMember = errors.New("no such member")

// ErrNoSetter is returned when writing through a property that has no setter.
var ErrNoSetter = errors.New("property has no setter")

// ErrImmutableContainer is returned by host models that do not permit dynamic
// member replacement.
var ErrImmutableContainer = errors.New("container does not permit member replacement")

// WrapError reports a failure while installing a wrapper for a member. It is
// logged and surfaced to the caller that requested patching, so an
// orchestrator applying many patches can choose to continue or abort.
type WrapError struct {
	Member string // qualified member name
	Err    error
}

func (e *WrapError) Error() string {
	return fmt.Sprintf("wrapping %s: %v", e.Member, e.Err)
}

func (e *WrapError) Unwrap() error { return e.Err }
