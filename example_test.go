package canary_test

import (
	"fmt"
	"log"

	"github.com/aretw0/canary"
	"github.com/aretw0/canary/pkg/adapters/dynamic"
	"github.com/aretw0/canary/pkg/domain"
	"github.com/aretw0/canary/pkg/ports"
)

// ExampleNew demonstrates instrumenting a small class: classify its members,
// patch them in place, and subscribe a callback that vetoes one write.
func ExampleNew() {
	// 1. Build (or bring) a dynamic object model.
	counter := dynamic.NewClass("Counter").
		Define("limit", 100).
		Define("__init__", dynamic.NewFunc("__init__", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			args[0].(ports.Object).Dict()["count"] = 0
			return nil, nil
		})).
		Define("bump", dynamic.NewFunc("bump", []string{"self"}, func(args []any, kwargs map[string]any) (any, error) {
			self := args[0].(ports.Object)
			n, err := self.Get("count")
			if err != nil {
				return nil, err
			}
			next := n.(int) + 1
			if err := self.Set("count", next); err != nil {
				return nil, err
			}
			return next, nil
		}))

	// 2. Classify and patch.
	layer := canary.New()
	layer.Mark(counter, false)
	layer.MarkAncestors(false)
	if err := layer.Patch(); err != nil {
		log.Fatal(err)
	}

	// 3. Watch calls, and veto raising the class limit.
	layer.Subscribe(domain.EventBeforeCall, func(ev domain.Event) any {
		fmt.Printf("call %s\n", ev.Name)
		return nil
	}, domain.ScopeInstance)
	layer.Subscribe(domain.EventSet, func(ev domain.Event) any {
		if ev.Name == "limit" {
			return domain.SetOverride{Suppress: true}
		}
		return nil
	}, domain.ScopeClass)

	// 4. Exercise the model.
	obj, err := counter.New()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := obj.(*dynamic.Object).CallMethod("bump"); err != nil {
		log.Fatal(err)
	}

	_ = counter.SetAttr("limit", 1000) // vetoed
	limit, _ := counter.GetAttr("limit")
	fmt.Printf("limit %v\n", limit)

	// Output:
	// call __init__
	// call bump
	// limit 100
}
