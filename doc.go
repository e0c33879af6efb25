/*
Package canary is a runtime instrumentation layer for dynamic object models.

Given an object model exposing introspectable members (classes, instances,
modules, functions, properties, variables), canary discovers those members,
classifies them, and transparently patches them so that every get, set, or
call passes through a notification hub before and after the real operation
executes. Subscribers can observe, veto, or rewrite pending operations
without the instrumented graph's source changing at all.

# Concept

The core works against any host model implementing the pkg/ports boundary:
enumerate members, resolve descriptors, replace members in place. The
pkg/adapters/dynamic package ships a reference model; real deployments adapt
their own binding layer behind the same interfaces.

# Usage

	layer := canary.New(canary.WithLogger(logger))

	layer.Subscribe(domain.EventBeforeCall, func(ev domain.Event) any {
		logger.Info("before", "member", ev.Name)
		return nil // observe only
	}, domain.ScopeInstance)

	layer.Mark(circleClass, false)
	layer.MarkAncestors(false)
	if err := layer.Patch(); err != nil {
		log.Fatal(err)
	}

	// Ordinary use of the model now routes through the hub.
	c, _ := circleClass.New(2.0)

Returning a domain override value from a callback suppresses or rewrites the
operation; returning nil observes without interfering.
*/
package canary
