package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// unpatchedBundle mimics the relevant spans of a minified bundle: the
// preference defaults object, the packaged-build gate and the async feature
// merger.
const unpatchedBundle = `var HB={quietPenguinEnabled:!1,louderPenguinEnabled:!1,themeOverride:"system"};` +
	`function Jhe(t){return xe.app.isPackaged?{status:"unavailable"}:t()}` +
	`async function mC(){return Object.assign({},r,{desktopVoiceDictation:await bT()})}`

func TestRules_FixedOrder(t *testing.T) {
	rules := Rules()

	require.Len(t, rules, 3)
	assert.Equal(t, "prefs-default", rules[0].ID)
	assert.Equal(t, "gate-bypass", rules[1].ID)
	assert.Equal(t, "feature-inject", rules[2].ID)
}

func TestApply_LiteralRule(t *testing.T) {
	patcher := NewPatcher(Rules())

	out, outcome := patcher.Apply([]byte(unpatchedBundle), prefsDefaultRule)

	require.Equal(t, m.Applied, outcome.Status)
	assert.Equal(t, 1, outcome.Matches)
	assert.Contains(t, string(out), "quietPenguinEnabled:!0,louderPenguinEnabled:!0")
	assert.NotContains(t, string(out), "quietPenguinEnabled:!1")
}

func TestApply_GateBypass(t *testing.T) {
	patcher := NewPatcher(Rules())
	input := `function ABC(t){return XY.app.isPackaged?{status:"unavailable"}:t()}`

	out, outcome := patcher.Apply([]byte(input), gateBypassRule)

	require.Equal(t, m.Applied, outcome.Status)
	assert.Equal(t, 1, outcome.Matches)
	assert.Equal(t, `function ABC(t){return t()}`, string(out))
}

func TestApply_GateBypass_RequiresUnavailableLiteral(t *testing.T) {
	patcher := NewPatcher(Rules())
	input := `function ABC(t){return XY.app.isPackaged?{status:"disabled"}:t()}`

	out, outcome := patcher.Apply([]byte(input), gateBypassRule)

	assert.Equal(t, m.NotFound, outcome.Status)
	assert.Equal(t, input, string(out))
}

func TestApply_GateBypass_TouchesOnlyMatchedSpan(t *testing.T) {
	patcher := NewPatcher(Rules())

	// Incidental similar text before and after the gate must stay untouched.
	prefix := `function keep(t){return other(t)};`
	suffix := `;function also(u){return u()}`
	input := prefix + `function Qx(t){return ab.app.isPackaged?{status:"unavailable"}:t()}` + suffix

	out, outcome := patcher.Apply([]byte(input), gateBypassRule)

	require.Equal(t, m.Applied, outcome.Status)
	assert.Equal(t, prefix+`function Qx(t){return t()}`+suffix, string(out))
}

func TestApply_FeatureInject_ReplacesEveryOccurrence(t *testing.T) {
	patcher := NewPatcher(Rules())
	input := `({desktopVoiceDictation:await bT()});({desktopVoiceDictation:await fq()})`

	out, outcome := patcher.Apply([]byte(input), featureInjectRule)

	require.Equal(t, m.Applied, outcome.Status)
	assert.Equal(t, 2, outcome.Matches)
	assert.Equal(t, 2, strings.Count(string(out), `quietPenguin:{status:"supported"}`))
	// Each occurrence keeps its own captured call.
	assert.Contains(t, string(out), `desktopVoiceDictation:await bT(),quietPenguin:`)
	assert.Contains(t, string(out), `desktopVoiceDictation:await fq(),quietPenguin:`)
}

func TestApply_NoMatchLeavesBufferIdentical(t *testing.T) {
	patcher := NewPatcher(Rules())
	input := []byte("nothing in here resembles the patterns")

	for _, rule := range Rules() {
		out, outcome := patcher.Apply(input, rule)

		assert.Equal(t, m.NotFound, outcome.Status, rule.ID)
		assert.Equal(t, input, out, rule.ID)
	}
}

func TestRun_AllRulesApplied(t *testing.T) {
	patcher := NewPatcher(Rules())

	result := patcher.Run([]byte(unpatchedBundle))

	require.Len(t, result.Outcomes, 3)
	assert.True(t, result.Changed)
	assert.True(t, result.Complete())
	assert.Equal(t, 3, result.Applied())

	final := string(result.Final)
	assert.Contains(t, final, "quietPenguinEnabled:!0,louderPenguinEnabled:!0")
	assert.Contains(t, final, "function Jhe(t){return t()}")
	assert.Contains(t, final, `quietPenguin:{status:"supported"},louderPenguin:{status:"supported"}`)
}

func TestRun_Idempotent(t *testing.T) {
	patcher := NewPatcher(Rules())

	first := patcher.Run([]byte(unpatchedBundle))
	require.True(t, first.Changed)

	second := patcher.Run(first.Final)

	assert.False(t, second.Changed)
	assert.Equal(t, 0, second.Applied())
	assert.Equal(t, first.Final, second.Final)

	// The probes recognize the previously applied replacements.
	assert.Equal(t, 3, second.Satisfied())
	assert.True(t, second.Complete())
}

func TestRun_NoPatternsPresent(t *testing.T) {
	patcher := NewPatcher(Rules())
	input := []byte("completely unrelated content")

	result := patcher.Run(input)

	assert.False(t, result.Changed)
	assert.Equal(t, input, result.Final)
	assert.Equal(t, 0, result.Applied())
	assert.Equal(t, 3, result.Missing())
	assert.False(t, result.Effective())
}

func TestRun_SinglePatternPresent(t *testing.T) {
	patcher := NewPatcher(Rules())
	input := []byte(`config={quietPenguinEnabled:!1,louderPenguinEnabled:!1}`)

	result := patcher.Run(input)

	assert.True(t, result.Changed)
	assert.Equal(t, 1, result.Applied())
	assert.Equal(t, 2, result.Missing())
	assert.False(t, result.Complete())
	assert.True(t, result.Effective())

	// The buffer differs only in the span covered by the literal rule.
	assert.Equal(t,
		`config={quietPenguinEnabled:!0,louderPenguinEnabled:!0}`,
		string(result.Final),
	)
}
