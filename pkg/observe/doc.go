/*
Package observe implements the notification hub and the reentrancy guard.

The hub is a publish/subscribe dispatcher keyed by (scope, event type). Every
instrumented get, set, or call passes through it before and after the real
operation executes; subscribers may inspect the pending operation and veto or
override it by returning one of the domain override values. The first
subscriber returning a non-nil result wins and short-circuits the rest.

The guard suspends dispatch while a patched wrapper performs a raw read or
write of the underlying value, so the notification machinery never recurses
into itself.
*/
package observe
