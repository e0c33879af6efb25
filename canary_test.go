package canary

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canary/internal/demo"
	"github.com/aretw0/canary/pkg/adapters/dynamic"
	"github.com/aretw0/canary/pkg/domain"
)

func TestLayerEndToEnd(t *testing.T) {
	var report bytes.Buffer
	layer := New(WithReportWriter(&report))

	model := demo.New()
	layer.Mark(model.Circle, false)
	layer.Mark(model.Geometry, false)
	layer.MarkAncestors(false)
	require.NoError(t, layer.Patch())

	t.Run("report lists classified members", func(t *testing.T) {
		out := report.String()
		assert.Contains(t, out, "Circle: {level: instance, member-type: function, name: area, signature: (self)}")
		assert.Contains(t, out, "Shape: {level: class, member-type: variable, name: limit}")
	})

	t.Run("hierarchy excludes the universal base", func(t *testing.T) {
		hierarchy := layer.Hierarchy()
		assert.Equal(t, []string{"Shape"}, hierarchy["Circle"])
		assert.Empty(t, hierarchy["Shape"])
	})

	var calls []string
	layer.Subscribe(domain.EventBeforeCall, func(ev domain.Event) any {
		calls = append(calls, ev.Name)
		return nil
	}, domain.ScopeInstance)

	layer.Subscribe(domain.EventSet, func(ev domain.Event) any {
		if ev.Name != "limit" {
			return nil
		}
		return domain.SetOverride{Suppress: true}
	}, domain.ScopeClass)

	obj, err := model.Circle.New(5.0)
	require.NoError(t, err)
	circle := obj.(*dynamic.Object)

	t.Run("calls notify", func(t *testing.T) {
		area, err := circle.CallMethod("area")
		require.NoError(t, err)
		assert.InDelta(t, 78.5, area.(float64), 0.1)
		assert.Contains(t, calls, "area")
	})

	t.Run("property setter still works through the wrapper", func(t *testing.T) {
		require.NoError(t, circle.Set("diameter", 20.0))
		d, err := circle.Get("diameter")
		require.NoError(t, err)
		assert.Equal(t, 20.0, d)
	})

	t.Run("class variable writes can be vetoed", func(t *testing.T) {
		require.NoError(t, model.Shape.SetAttr("limit", 300))
		limit, err := model.Shape.GetAttr("limit")
		require.NoError(t, err)
		assert.Equal(t, 100, limit)
	})

	t.Run("module function events carry no owner", func(t *testing.T) {
		var owner any = "unset"
		layer.Subscribe(domain.EventBeforeCall, func(ev domain.Event) any {
			owner = ev.Owner
			return nil
		}, domain.ScopeModule)

		scaled, err := model.Geometry.Call("scale", 2.0, 8.0)
		require.NoError(t, err)
		assert.Equal(t, 16.0, scaled)
		assert.Nil(t, owner)
	})
}

func TestLayerMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	layer := New(WithMetrics(registry))

	model := demo.New()
	layer.Mark(model.Circle, false)
	layer.MarkAncestors(false)
	require.NoError(t, layer.Patch())

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["canary_patched_members_total"])
}

func TestLayerDenylist(t *testing.T) {
	layer := New(WithDenylist("area"))

	model := demo.New()
	layer.Mark(model.Circle, false)
	layer.MarkAncestors(false)
	require.NoError(t, layer.Patch())

	obj, err := model.Circle.New(2.0)
	require.NoError(t, err)

	fired := false
	layer.Subscribe(domain.EventBeforeCall, func(ev domain.Event) any {
		fired = true
		return nil
	}, domain.ScopeInstance)

	_, err = obj.(*dynamic.Object).CallMethod("area")
	require.NoError(t, err)

	assert.False(t, fired, "denylisted member names never dispatch")
}
