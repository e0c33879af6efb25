package observe

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// defaultDenylist names infrastructure-internal member shapes that must never
// be instrumented, to avoid observing the machinery that feeds the observer
// (tokenizers, error-string extractors, native finalizers).
var defaultDenylist = []string{"tokenizer", "metta_err_str", "_free"}

// Hub is the publish/subscribe dispatcher for instrumentation events.
type Hub struct {
	log   *slog.Logger
	guard *Guard

	mu          sync.RWMutex
	subscribers map[string][]domain.Callback
	deny        []string

	metrics *Metrics
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) { h.log = logger }
}

// WithDenylist appends extra member-name substrings to the dispatch denylist.
func WithDenylist(substrings ...string) Option {
	return func(h *Hub) { h.deny = append(h.deny, substrings...) }
}

// WithMetrics attaches prometheus instrumentation to the hub.
func WithMetrics(m *Metrics) Option {
	return func(h *Hub) { h.metrics = m }
}

// NewHub creates a hub with the default denylist and a fresh guard.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		log:         slog.Default(),
		guard:       &Guard{},
		subscribers: make(map[string][]domain.Callback),
		deny:        append([]string(nil), defaultDenylist...),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Guard returns the hub's reentrancy guard. Patched wrappers suspend it
// around raw access to underlying values.
func (h *Hub) Guard() *Guard { return h.guard }

// Deny appends member-name substrings to the dispatch denylist at runtime.
// Entries cannot be removed; narrowing the denylist mid-flight would start
// observing members whose callers never expected events.
func (h *Hub) Deny(substrings ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, substr := range substrings {
		if !slices.Contains(h.deny, substr) {
			h.deny = append(h.deny, substr)
		}
	}
}

// Subscribe registers a callback under the (scope, event) key. Callbacks are
// invoked in registration order; the first non-nil result wins.
func (h *Hub) Subscribe(event domain.EventType, cb domain.Callback, scope domain.Scope) {
	key := subscriptionKey(scope, event)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[key] = append(h.subscribers[key], cb)
}

// Notify dispatches an event to all subscribers at its (scope, event) key and
// returns the first non-nil callback result, or defaultValue when nothing
// overrides. While the guard is active, or when the member name matches the
// denylist, Notify is a no-op returning nil.
func (h *Hub) Notify(ev domain.Event, defaultValue any) any {
	if h.guard.Active() {
		if h.metrics != nil {
			h.metrics.suppressed.Inc()
		}
		return nil
	}
	if h.denied(ev.Name) {
		return nil
	}

	// Module owners are nulled out so live namespace identity does not leak
	// into callbacks uncontrolled.
	if _, isModule := ev.Owner.(ports.Module); isModule {
		ev.Owner = nil
	}

	if h.metrics != nil {
		h.metrics.notifications.WithLabelValues(string(ev.Scope), string(ev.Type)).Inc()
	}

	h.mu.RLock()
	callbacks := h.subscribers[subscriptionKey(ev.Scope, ev.Type)]
	h.mu.RUnlock()

	// Dispatch runs under suspension: a callback that touches instrumented
	// state (reading the very property it observes, say) must not recurse
	// into notification a second time.
	release := h.guard.Suspend()
	defer release()

	for _, cb := range callbacks {
		if result := cb(ev); result != nil {
			if h.metrics != nil {
				h.metrics.overrides.Inc()
			}
			return result
		}
	}
	return defaultValue
}

func (h *Hub) denied(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, substr := range h.deny {
		if strings.Contains(name, substr) {
			return true
		}
	}
	return false
}

func subscriptionKey(scope domain.Scope, event domain.EventType) string {
	return string(scope) + "_" + string(event)
}
