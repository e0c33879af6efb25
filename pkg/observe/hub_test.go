package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/canary/pkg/adapters/dynamic"
	"github.com/aretw0/canary/pkg/domain"
)

func getEvent(name string) domain.Event {
	return domain.Event{Type: domain.EventGet, Scope: domain.ScopeInstance, Name: name}
}

func TestHubFirstNonNilWins(t *testing.T) {
	hub := NewHub()

	var order []string
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		order = append(order, "first")
		return nil
	}, domain.ScopeInstance)
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		order = append(order, "second")
		return "override"
	}, domain.ScopeInstance)
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		order = append(order, "third")
		return "ignored"
	}, domain.ScopeInstance)

	result := hub.Notify(getEvent("radius"), "default")

	assert.Equal(t, "override", result)
	assert.Equal(t, []string{"first", "second"}, order, "dispatch stops at the first override")
}

func TestHubDefaultValue(t *testing.T) {
	hub := NewHub()

	t.Run("no subscribers", func(t *testing.T) {
		assert.Equal(t, "fallthrough", hub.Notify(getEvent("radius"), "fallthrough"))
	})

	t.Run("all callbacks pass", func(t *testing.T) {
		hub.Subscribe(domain.EventGet, func(ev domain.Event) any { return nil }, domain.ScopeInstance)
		assert.Equal(t, "fallthrough", hub.Notify(getEvent("radius"), "fallthrough"))
	})
}

func TestHubScopeEventKeying(t *testing.T) {
	hub := NewHub()

	calls := map[string]int{}
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		calls["instance_get"]++
		return nil
	}, domain.ScopeInstance)
	hub.Subscribe(domain.EventSet, func(ev domain.Event) any {
		calls["instance_set"]++
		return nil
	}, domain.ScopeInstance)
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		calls["class_get"]++
		return nil
	}, domain.ScopeClass)

	hub.Notify(domain.Event{Type: domain.EventGet, Scope: domain.ScopeInstance, Name: "x"}, nil)
	hub.Notify(domain.Event{Type: domain.EventGet, Scope: domain.ScopeClass, Name: "x"}, nil)

	assert.Equal(t, 1, calls["instance_get"])
	assert.Equal(t, 1, calls["class_get"])
	assert.Equal(t, 0, calls["instance_set"], "set subscribers never see get events")
}

func TestHubGuardSuppression(t *testing.T) {
	hub := NewHub()

	fired := false
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		fired = true
		return "override"
	}, domain.ScopeInstance)

	release := hub.Guard().Suspend()
	result := hub.Notify(getEvent("radius"), "default")
	release()

	assert.False(t, fired, "guarded notifications must not dispatch")
	assert.Nil(t, result, "guarded notifications yield nil, not the default")

	// After release the hub dispatches again.
	assert.Equal(t, "override", hub.Notify(getEvent("radius"), "default"))
}

func TestHubNestedNotifyIsInert(t *testing.T) {
	hub := NewHub()

	var inner any = "sentinel"
	depth := 0
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		depth++
		if depth == 1 {
			// A callback reading instrumented state triggers a nested
			// notification, which must be a no-op rather than recursing.
			inner = hub.Notify(getEvent("radius"), "default")
		}
		return nil
	}, domain.ScopeInstance)

	hub.Notify(getEvent("radius"), nil)

	assert.Equal(t, 1, depth, "nested notify must not re-enter callbacks")
	assert.Nil(t, inner)
}

func TestHubDenylist(t *testing.T) {
	hub := NewHub(WithDenylist("secret"))

	fired := false
	cb := func(ev domain.Event) any {
		fired = true
		return "override"
	}
	hub.Subscribe(domain.EventGet, cb, domain.ScopeInstance)

	t.Run("default entries", func(t *testing.T) {
		for _, name := range []string{"tokenizer", "run_tokenizer_pass", "metta_err_str", "buffer_free"} {
			fired = false
			assert.Nil(t, hub.Notify(getEvent(name), "default"), name)
			assert.False(t, fired, name)
		}
	})

	t.Run("custom entries", func(t *testing.T) {
		fired = false
		assert.Nil(t, hub.Notify(getEvent("my_secret_token"), "default"))
		assert.False(t, fired)
	})

	t.Run("clean names dispatch", func(t *testing.T) {
		fired = false
		hub.Notify(getEvent("radius"), nil)
		assert.True(t, fired)
	})

	t.Run("runtime additions", func(t *testing.T) {
		hub.Deny("radius")
		fired = false
		hub.Notify(getEvent("radius"), nil)
		assert.False(t, fired)
	})
}

func TestHubNullsModuleOwner(t *testing.T) {
	hub := NewHub()
	mod := dynamic.NewModule("geometry")

	var seen any = "unset"
	hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
		seen = ev.Owner
		return nil
	}, domain.ScopeModule)

	hub.Notify(domain.Event{
		Type:  domain.EventGet,
		Scope: domain.ScopeModule,
		Owner: mod,
		Name:  "precision",
	}, nil)

	assert.Nil(t, seen, "module owners are nulled before dispatch")

	t.Run("class owners survive dispatch", func(t *testing.T) {
		cls := dynamic.NewClass("Shape")
		var seen any
		hub.Subscribe(domain.EventGet, func(ev domain.Event) any {
			seen = ev.Owner
			return nil
		}, domain.ScopeClass)

		hub.Notify(domain.Event{
			Type:  domain.EventGet,
			Scope: domain.ScopeClass,
			Owner: cls,
			Name:  "limit",
		}, nil)

		assert.Same(t, cls, seen)
	})
}

func TestGuardDepth(t *testing.T) {
	g := &Guard{}
	assert.False(t, g.Active())

	outer := g.Suspend()
	inner := g.Suspend()
	assert.True(t, g.Active())

	inner()
	assert.True(t, g.Active(), "outer suspension still holds")
	outer()
	assert.False(t, g.Active())
}
