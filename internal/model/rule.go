// Package model defines the data structures for bundle patching.
package model

import "regexp"

// Path represents a file system path.
type Path string

// RuleKind represents the matching strategy of a patch rule.
type RuleKind string

const (
	// KindLiteral matches an exact byte sequence and replaces every occurrence.
	KindLiteral RuleKind = "literal"
	// KindPattern matches a tolerant regexp once and replaces only the matched span.
	KindPattern RuleKind = "pattern"
	// KindPatternAll matches a tolerant regexp and replaces every occurrence,
	// expanding capture groups per match.
	KindPatternAll RuleKind = "pattern-all"
)

// Rule is one named pattern-and-replacement transformation applied to the
// buffer. Rules are immutable, defined statically and applied in a fixed
// order. A rule's matcher and replacement are self-contained: no rule depends
// on the match content of a previous rule, only on the cumulative buffer
// state.
type Rule struct {
	ID          string
	Description string
	Kind        RuleKind

	// Find/Replace drive KindLiteral rules.
	Find    []byte
	Replace []byte

	// Pattern/Template drive KindPattern and KindPatternAll rules. Template
	// follows regexp.Expand syntax ($1 references the capture group).
	Pattern  *regexp.Regexp
	Template []byte

	// Probe detects the rule's replacement already being present so an
	// already-patched bundle reports as satisfied rather than missing.
	// Optional.
	Probe *regexp.Regexp
}
