/*
Package ports defines the boundary between the canary core and any host
object model it instruments.

The core (classifier, inspector, observer hub, patch engine) depends only on
these interfaces. A host model is an adapter that exposes introspectable containers (classes and modules), a small
descriptor vocabulary (functions, properties, static and class methods), and
in-place member replacement. pkg/adapters/dynamic provides the reference
implementation; any model exposing the same primitives can be instrumented.
*/
package ports
