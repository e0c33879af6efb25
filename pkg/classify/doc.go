/*
Package classify implements the descriptor classifier.

Given a container and a member name it determines the member's Kind (by
descriptor shape, in a fixed precedence), its Scope (which notification
channel events route to), and its Provenance (where in the ancestor chain the
member is actually defined). Classification never fails outward: unrecognized
shapes degrade to a best-guess kind and are logged, and signature
introspection falls back to documentation strings before giving up with an
explicit sentinel.
*/
package classify
