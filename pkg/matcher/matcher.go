// Package matcher builds a regexp switch: one combined pattern over an
// ordered list of sub-patterns that reports which sub-pattern matched, the
// capture groups that sub-pattern produces on its own, and the value tagged
// onto it.
//
// Each alternative is normalized to a non-capturing form and wrapped in a
// single dispatch group, so the combined pattern looks like
//
//	(alt0)|(alt1)|(alt2)
//
// The lowest-numbered dispatch group that participated in a match names the
// alternative that fired. Alternatives that have capturing groups of their own
// are then re-applied to the input to recover those groups.
package matcher

import "github.com/praetorian-inc/reswitch/pkg/pattern"

// Entry is one alternative of a switch: a sub-pattern and an optional value
// returned verbatim when the sub-pattern matches.
type Entry[V any] struct {
	Pattern  pattern.SubPattern
	Value    V
	HasValue bool
}

// Untagged returns an entry without a value.
func Untagged[V any](p pattern.SubPattern) Entry[V] {
	return Entry[V]{Pattern: p}
}

// Tagged returns an entry carrying value.
func Tagged[V any](p pattern.SubPattern, value V) Entry[V] {
	return Entry[V]{Pattern: p, Value: value, HasValue: true}
}
