package inspect

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canary/pkg/adapters/dynamic"
	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/observe"
	"github.com/aretw0/canary/pkg/patch"
	"github.com/aretw0/canary/pkg/ports"
)

func newInspector(opts ...Option) (*observe.Hub, *Inspector) {
	hub := observe.NewHub()
	eng := patch.NewEngine(hub)
	return hub, NewInspector(eng, opts...)
}

func fixture() (*dynamic.Class, *dynamic.Class, *dynamic.Module) {
	base := dynamic.NewClass("Shape").
		Define("limit", 100).
		Define("_cache", map[string]any{}).
		Define("describe", dynamic.NewFunc("describe", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			return "shape", nil
		}))

	child := dynamic.NewClass("Circle", base).
		Define("__init__", dynamic.NewFunc("__init__", []string{"self", "radius"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			self.Dict()["radius"] = args[1]
			return nil, nil
		})).
		Define("area", dynamic.NewFunc("area", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			r, err := self.Get("radius")
			if err != nil {
				return nil, err
			}
			return 3 * r.(int), nil
		}))

	mod := dynamic.NewModule("geometry").
		Define("precision", 2).
		Define("Circle", child)

	return base, child, mod
}

func memberNames(records []domain.MemberRecord) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.QualifiedName())
	}
	return names
}

func TestMarkFilters(t *testing.T) {
	t.Run("default scan keeps local public members", func(t *testing.T) {
		_, insp := newInspector()
		_, child, _ := fixture()

		insp.Mark(child, false)
		names := memberNames(insp.Records())

		assert.Contains(t, names, "Circle.area")
		assert.Contains(t, names, "Circle.__init__", "dunder names are special, not private")
		assert.NotContains(t, names, "Circle.describe", "inherited members are excluded by default")
		assert.NotContains(t, names, "Circle._cache", "leading underscore names are excluded by default")
		assert.NotContains(t, names, "Circle.__str__", "universal defaults are excluded by default")
	})

	t.Run("includeAll keeps private and inherited members", func(t *testing.T) {
		_, insp := newInspector()
		_, child, _ := fixture()

		insp.Mark(child, true)
		names := memberNames(insp.Records())

		assert.Contains(t, names, "Circle.describe")
		assert.Contains(t, names, "Circle._cache")
		assert.Contains(t, names, "Circle.limit")
	})

	t.Run("marking twice is a no-op", func(t *testing.T) {
		_, insp := newInspector()
		_, child, _ := fixture()

		insp.Mark(child, false)
		count := len(insp.Records())
		insp.Mark(child, false)
		assert.Len(t, insp.Records(), count)
	})

	t.Run("module members", func(t *testing.T) {
		_, insp := newInspector()
		_, _, mod := fixture()

		insp.Mark(mod, false)
		names := memberNames(insp.Records())
		assert.Contains(t, names, "geometry.precision")
		assert.Contains(t, names, "geometry.Circle")
	})
}

func TestMarkSameNamedClasses(t *testing.T) {
	_, insp := newInspector()
	first := dynamic.NewClass("Dup").Define("limit", 100)
	second := dynamic.NewClass("Dup").Define("limit", 200)

	insp.Mark(first, false)
	insp.Mark(second, false)

	records := insp.Records()
	require.Len(t, records, 2, "same-named classes are tracked independently")
	assert.Same(t, first, records[0].Owner)
	assert.Same(t, second, records[1].Owner)
}

func TestMarkAncestors(t *testing.T) {
	_, insp := newInspector()
	_, child, _ := fixture()
	grand := dynamic.NewClass("Dot", child)

	insp.Mark(grand, false)
	insp.MarkAncestors(false)

	names := memberNames(insp.Records())
	assert.Contains(t, names, "Circle.area", "direct base is scanned")
	assert.Contains(t, names, "Shape.describe", "transitive base is scanned")

	hierarchy := insp.Hierarchy()
	assert.Equal(t, []string{"Circle"}, hierarchy["Dot"])
	assert.Equal(t, []string{"Shape"}, hierarchy["Circle"])
	assert.Empty(t, hierarchy["Shape"], "the universal base never appears in the hierarchy")
}

func TestRecordOrdering(t *testing.T) {
	_, insp := newInspector()
	_, child, _ := fixture()

	insp.Mark(child, false)
	records := insp.Records()

	// Records are sorted by (scope, kind, name) within a container.
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		prevKey := string(prev.Scope) + "|" + string(prev.Kind) + "|" + prev.Name
		curKey := string(cur.Scope) + "|" + string(cur.Kind) + "|" + cur.Name
		assert.LessOrEqual(t, prevKey, curKey)
	}
}

func TestReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	_, insp := newInspector(WithReporter(NewReporter(&buf)))
	_, child, _ := fixture()

	insp.Mark(child, false)

	out := buf.String()
	assert.Contains(t, out, "Circle: {level: instance, member-type: function, name: area, signature: (self)}")

	t.Run("non-callables have no signature", func(t *testing.T) {
		rec := domain.MemberRecord{
			Name: "limit", Member: 100,
			Kind: domain.KindVariable, Scope: domain.ScopeClass,
			OwnerName: "Shape",
		}
		line := FormatRecord(rec)
		assert.Equal(t, "Shape: {level: class, member-type: variable, name: limit}", line)
		assert.NotContains(t, line, "signature")
	})
}

func TestPatchAll(t *testing.T) {
	hub, insp := newInspector()
	_, child, mod := fixture()

	insp.Mark(child, false)
	insp.Mark(mod, false)
	insp.MarkAncestors(false)
	require.NoError(t, insp.PatchAll())

	var called []string
	for _, scope := range []domain.Scope{domain.ScopeInstance, domain.ScopeClass, domain.ScopeModule} {
		hub.Subscribe(domain.EventBeforeCall, func(ev domain.Event) any {
			called = append(called, ev.Name)
			return nil
		}, scope)
	}

	obj, err := child.New(2)
	require.NoError(t, err)
	v, err := obj.(*dynamic.Object).CallMethod("area")
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	assert.Contains(t, called, "area")

	t.Run("constructors are intercepted", func(t *testing.T) {
		// The first construction above registered radius as an instance
		// member; writes to it now notify.
		var sets []string
		hub.Subscribe(domain.EventSet, func(ev domain.Event) any {
			sets = append(sets, ev.Name)
			return nil
		}, domain.ScopeInstance)

		require.NoError(t, obj.Set("radius", 4))
		assert.Equal(t, []string{"radius"}, sets)
	})
}

func TestPatchAllCollectsFailures(t *testing.T) {
	_, insp := newInspector(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	cls := dynamic.NewClass("Bad").Define("x", 1)

	insp.Mark(cls, false)

	// Corrupt the captured record so the wrap fails, then make sure the
	// failure is reported but does not panic the sweep.
	records := insp.captured[cls]
	require.Len(t, records, 1)
	records[0].Kind = domain.KindMethod
	records[0].Scope = domain.ScopeInstance

	err := insp.PatchAll()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Bad.x"))
}
