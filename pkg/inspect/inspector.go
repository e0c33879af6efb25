package inspect

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/canary/pkg/classify"
	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/patch"
	"github.com/aretw0/canary/pkg/ports"
)

// Inspector is the member registry: it scans containers, owns the capture
// lists and the hierarchy map, and orchestrates patching.
type Inspector struct {
	log        *slog.Logger
	classifier *classify.Classifier
	patcher    *patch.Engine
	reporter   *Reporter

	marked    map[ports.Container]struct{}
	recorded  map[memberKey]struct{}
	hierarchy map[ports.Container][]ports.Class
	captured  map[ports.Container][]domain.MemberRecord
	order     []ports.Container // scan order, for deterministic patching
}

// Bookkeeping is keyed by container identity, not name, so two distinct
// classes that happen to share a name are tracked independently.
type memberKey struct {
	container ports.Container
	member    string
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the inspector's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) { i.log = logger }
}

// WithReporter attaches a textual report sink; one line is emitted per
// classified member.
func WithReporter(r *Reporter) Option {
	return func(i *Inspector) { i.reporter = r }
}

// NewInspector creates a registry that patches through the given engine.
func NewInspector(patcher *patch.Engine, opts ...Option) *Inspector {
	i := &Inspector{
		log:       slog.Default(),
		patcher:   patcher,
		marked:    make(map[ports.Container]struct{}),
		recorded:  make(map[memberKey]struct{}),
		hierarchy: make(map[ports.Container][]ports.Class),
		captured:  make(map[ports.Container][]domain.MemberRecord),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.classifier = classify.New(i.log)
	return i
}

// Mark scans a container and records its members. Scanning the same
// container twice is a no-op. With includeAll set, leading-underscore
// exclusion and provenance filtering are both skipped.
func (i *Inspector) Mark(c ports.Container, includeAll bool) {
	if _, seen := i.marked[c]; seen {
		return
	}
	i.marked[c] = struct{}{}

	i.log.Info("inspecting container", "container", c.Name())
	records := i.scan(c, includeAll)
	i.captured[c] = append(i.captured[c], records...)
	i.order = append(i.order, c)

	if cls, ok := c.(ports.Class); ok {
		var bases []ports.Class
		for _, base := range cls.Bases() {
			if base.Name() == ports.UniversalBaseName {
				continue
			}
			bases = append(bases, base)
		}
		i.hierarchy[c] = bases
	}
}

// MarkAncestors recursively scans every not-yet-visited base class reachable
// from the containers marked so far, building the transitive closure of the
// inheritance graph. Terminates because ancestor chains are finite and
// visited containers are skipped.
func (i *Inspector) MarkAncestors(includeAll bool) {
	for {
		var pending []ports.Class
		for _, bases := range i.hierarchy {
			for _, base := range bases {
				if _, seen := i.marked[base]; !seen {
					pending = append(pending, base)
				}
			}
		}
		if len(pending) == 0 {
			return
		}
		for _, base := range pending {
			i.log.Info("inspecting base class", "container", base.Name())
			i.Mark(base, includeAll)
		}
	}
}

// scan enumerates, classifies, filters and captures one container's members.
func (i *Inspector) scan(c ports.Container, includeAll bool) []domain.MemberRecord {
	var records []domain.MemberRecord

	for _, name := range c.MemberNames() {
		if !includeAll && strings.HasPrefix(name, "_") && !domain.IsSpecial(name) {
			continue
		}
		member, ok := c.Member(name)
		if !ok {
			continue
		}

		rec := i.classifier.Record(c, name, member)

		if !includeAll {
			if rec.Provenance != domain.ProvenanceLocal {
				continue
			}
			// Class-scoped special variables are descriptor plumbing, not
			// members worth re-exporting.
			if rec.Scope == domain.ScopeClass && rec.Kind == domain.KindSpecialVariable {
				continue
			}
		}

		key := memberKey{container: c, member: name}
		if _, seen := i.recorded[key]; seen {
			continue
		}
		i.recorded[key] = struct{}{}
		records = append(records, rec)
	}

	sortRecords(records)
	if i.reporter != nil {
		for _, rec := range records {
			i.reporter.Record(rec)
		}
	}
	return records
}

// sortRecords orders by (scope, kind, name). Presentation contract only.
func sortRecords(records []domain.MemberRecord) {
	sort.Slice(records, func(a, b int) bool {
		ra, rb := records[a], records[b]
		if ra.Scope != rb.Scope {
			return ra.Scope < rb.Scope
		}
		if ra.Kind != rb.Kind {
			return ra.Kind < rb.Kind
		}
		return ra.Name < rb.Name
	})
}

// PatchAll wraps every captured member, intercepting each class constructor
// after its members are patched. Individual wrap failures are logged and
// collected; patching continues past them so one bad member does not stop
// the sweep.
func (i *Inspector) PatchAll() error {
	var errs []error
	for _, c := range i.order {
		records := i.captured[c]
		if len(records) == 0 {
			continue
		}
		for _, rec := range records {
			if err := i.patcher.Apply(rec); err != nil {
				errs = append(errs, err)
			}
		}
		if cls, ok := c.(ports.Class); ok {
			if err := i.patcher.InterceptConstructor(cls); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Records returns every captured record in scan order.
func (i *Inspector) Records() []domain.MemberRecord {
	var out []domain.MemberRecord
	for _, c := range i.order {
		out = append(out, i.captured[c]...)
	}
	return out
}

// Hierarchy returns the recorded base-class names per scanned class. The
// returned map collapses same-named classes; internal bookkeeping does not.
func (i *Inspector) Hierarchy() map[string][]string {
	out := make(map[string][]string, len(i.hierarchy))
	for c, bases := range i.hierarchy {
		names := make([]string, 0, len(bases))
		for _, base := range bases {
			names = append(names, base.Name())
		}
		out[c.Name()] = names
	}
	return out
}
