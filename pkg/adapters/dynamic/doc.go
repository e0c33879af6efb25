/*
Package dynamic is the reference host object model for the canary core.

It implements the ports boundary with map-backed namespaces: classes with
bases and a shared universal "object" root, instances with attribute dicts,
flat modules, and the full descriptor vocabulary (declared functions, native
callables without inspectable declarations, properties, static and class
methods). Member replacement is permitted everywhere, which is what lets the
patch engine install observing wrappers in place.

The model exists so the core can be exercised and tested without a real
foreign binding layer; anything exposing the same primitives can be swapped
in behind pkg/ports.
*/
package dynamic
