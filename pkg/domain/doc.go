/*
Package domain contains the core data model for the canary instrumentation layer.

It defines the closed classification enumerations (Kind, Scope, Provenance),
the MemberRecord produced by the inspector, the notification event types, and
the override protocol that observer callbacks use to veto or rewrite pending
operations. This package is kept pure: no I/O, no host-model dependencies.

# Key Entities

  - Kind: what a member is (method, property, class variable, ...).
  - Scope: which notification channel a member's events route to.
  - Provenance: where in the ancestor chain a member is actually defined.
  - MemberRecord: the immutable classification result for one (container, name).
  - CallOverride / GetOverride / SetOverride / ArgOverride: subscriber verdicts.
*/
package domain
