package observe

import "sync/atomic"

// Guard suspends hub dispatch while instrumentation code touches the
// underlying state it instruments. It replaces the bare process-wide flag of
// the layer this package descends from with a depth counter: nested raw
// accesses stack, and a single goroutine of control is assumed (see package
// docs), so no further synchronization is required beyond the atomic.
type Guard struct {
	depth atomic.Int32
}

// Suspend activates the guard and returns the release function. Callers must
// defer the release so the guard is cleared even when the raw access panics
// or returns an error.
//
//	release := guard.Suspend()
//	defer release()
func (g *Guard) Suspend() func() {
	g.depth.Add(1)
	return func() { g.depth.Add(-1) }
}

// Active reports whether any suspension is in effect.
func (g *Guard) Active() bool {
	return g.depth.Load() > 0
}
