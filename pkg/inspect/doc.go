/*
Package inspect implements the member registry.

The Inspector walks a container's exposed members, classifies each one,
filters out irrelevant entries (inherited boilerplate, noisy special class
attributes) unless told not to, and records a stable capture list per
container. It also builds the base-class hierarchy map used to traverse
ancestor containers recursively, and drives the patch engine over everything
it captured.
*/
package inspect
