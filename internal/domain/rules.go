// Package domain implements the patch engine and the workflows built on it.
package domain

import (
	"regexp"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// The built-in rule set. Patterns anchor on stable structural shape and
// absorb minifier-renamed identifiers with capture groups, so a rule keeps
// matching across bundle versions where only the short names shift.
var (
	// prefsDefaultRule flips the feature preference defaults from !1 (false)
	// to !0 (true). The pair always occurs together in the defaults object.
	prefsDefaultRule = m.Rule{
		ID:          "prefs-default",
		Description: "enable quietPenguin and louderPenguin preference defaults",
		Kind:        m.KindLiteral,
		Find:        []byte(`quietPenguinEnabled:!1,louderPenguinEnabled:!1`),
		Replace:     []byte(`quietPenguinEnabled:!0,louderPenguinEnabled:!0`),
		Probe:       regexp.MustCompile(`quietPenguinEnabled:!0,louderPenguinEnabled:!0`),
	}

	// gateBypassRule rewrites the production availability gate to call through
	// unconditionally. The wrapper's minified name varies per version; the
	// capture group carries it into the replacement so only this one function
	// is touched.
	gateBypassRule = m.Rule{
		ID:          "gate-bypass",
		Description: "bypass the packaged-build availability gate",
		Kind:        m.KindPattern,
		Pattern:     regexp.MustCompile(`function (\w+)\(t\)\{return \w+\.app\.isPackaged\?\{status:"unavailable"\}:t\(\)\}`),
		Template:    []byte(`function $1(t){return t()}`),
		Probe:       regexp.MustCompile(`function \w+\(t\)\{return t\(\)\}`),
	}

	// featureInjectRule appends supported-status entries after the
	// desktopVoiceDictation key in every async feature-merger object literal.
	featureInjectRule = m.Rule{
		ID:          "feature-inject",
		Description: "mark quietPenguin and louderPenguin as supported in the feature merger",
		Kind:        m.KindPatternAll,
		Pattern:     regexp.MustCompile(`(desktopVoiceDictation:await \w+\(\))\}\)`),
		Template:    []byte(`$1,quietPenguin:{status:"supported"},louderPenguin:{status:"supported"}})`),
		Probe:       regexp.MustCompile(`quietPenguin:\{status:"supported"\}`),
	}
)

// Rules returns the built-in rule set in application order. The order is part
// of the contract: later rules run against the buffer state produced by
// earlier ones.
func Rules() []m.Rule {
	return []m.Rule{prefsDefaultRule, gateBypassRule, featureInjectRule}
}
