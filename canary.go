package canary

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/inspect"
	"github.com/aretw0/canary/pkg/observe"
	"github.com/aretw0/canary/pkg/patch"
	"github.com/aretw0/canary/pkg/ports"
)

// Layer is the high-level entry point for the canary library. It wires the
// observer hub, the patch engine and the member registry together and
// provides a simplified API for consumers.
type Layer struct {
	hub       *observe.Hub
	patcher   *patch.Engine
	inspector *inspect.Inspector

	logger     *slog.Logger
	reportTo   io.Writer
	deny       []string
	registerer prometheus.Registerer
}

// Option defines a functional option for configuring the Layer.
type Option func(*Layer)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Layer) { l.logger = logger }
}

// WithReportWriter directs the one-line-per-member classification report to w.
func WithReportWriter(w io.Writer) Option {
	return func(l *Layer) { l.reportTo = w }
}

// WithDenylist appends member-name substrings that must never be dispatched.
func WithDenylist(substrings ...string) Option {
	return func(l *Layer) { l.deny = append(l.deny, substrings...) }
}

// WithMetrics registers prometheus collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(l *Layer) { l.registerer = reg }
}

// New initializes a new instrumentation layer.
func New(opts ...Option) *Layer {
	l := &Layer{}
	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var metrics *observe.Metrics
	if l.registerer != nil {
		metrics = observe.NewMetrics(l.registerer)
	}

	hubOpts := []observe.Option{observe.WithLogger(l.logger)}
	if len(l.deny) > 0 {
		hubOpts = append(hubOpts, observe.WithDenylist(l.deny...))
	}
	if metrics != nil {
		hubOpts = append(hubOpts, observe.WithMetrics(metrics))
	}
	l.hub = observe.NewHub(hubOpts...)

	patchOpts := []patch.Option{patch.WithLogger(l.logger)}
	if metrics != nil {
		patchOpts = append(patchOpts, patch.WithMetrics(metrics))
	}
	l.patcher = patch.NewEngine(l.hub, patchOpts...)

	inspectOpts := []inspect.Option{inspect.WithLogger(l.logger)}
	if l.reportTo != nil {
		inspectOpts = append(inspectOpts, inspect.WithReporter(inspect.NewReporter(l.reportTo)))
	}
	l.inspector = inspect.NewInspector(l.patcher, inspectOpts...)

	return l
}

// Subscribe registers a callback for an event type at the given scope.
func (l *Layer) Subscribe(event domain.EventType, cb domain.Callback, scope domain.Scope) {
	l.hub.Subscribe(event, cb, scope)
}

// Mark scans a container, classifying and recording its members.
func (l *Layer) Mark(c ports.Container, includeAll bool) {
	l.inspector.Mark(c, includeAll)
}

// MarkAncestors scans every base class reachable from the containers marked
// so far.
func (l *Layer) MarkAncestors(includeAll bool) {
	l.inspector.MarkAncestors(includeAll)
}

// Patch wraps every captured member so its use routes through the hub.
func (l *Layer) Patch() error {
	return l.inspector.PatchAll()
}

// Deny appends member-name substrings to the dispatch denylist at runtime.
func (l *Layer) Deny(substrings ...string) {
	l.hub.Deny(substrings...)
}

// Records returns every captured member record in scan order.
func (l *Layer) Records() []domain.MemberRecord {
	return l.inspector.Records()
}

// Hierarchy returns the recorded base-class names per scanned class.
func (l *Layer) Hierarchy() map[string][]string {
	return l.inspector.Hierarchy()
}

// Hub returns the underlying observer hub.
func (l *Layer) Hub() *observe.Hub { return l.hub }

// Patcher returns the underlying patch engine.
func (l *Layer) Patcher() *patch.Engine { return l.patcher }
