/*
Package patch implements the patch engine.

Given a classified member record it produces a replacement member of the same
externally visible shape (same call signature, same attribute-access
semantics) that routes every get, set, or call through the observer hub
before delegating to, or suppressing, the original behavior. The engine
tracks which underlying descriptors have already been wrapped so patching is
idempotent: a descriptor shared through inheritance is wrapped exactly once.

Constructor interception is the one stateful trick: the first construction of
a class triggers a one-time pass registering every instance variable the
constructor materialized, after which the constructor it wrapped is restored.
*/
package patch
