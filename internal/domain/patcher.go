package domain

import (
	"bytes"
	"fmt"
	"log/slog"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// Patcher applies an ordered rule set to an in-memory buffer. It never touches
// the filesystem; loading and committing are the workflow's concern.
type Patcher interface {
	// Apply runs a single rule against buf. When the rule does not match, the
	// returned buffer is the input untouched.
	Apply(buf []byte, rule m.Rule) ([]byte, m.Outcome)

	// Run applies every rule in order against successive buffer states and
	// returns the final buffer plus one outcome per rule. Running twice over
	// the same initial buffer is idempotent: the second run reports zero
	// newly-applied rules.
	Run(buf []byte) m.RunResult
}

type patcher struct {
	rules []m.Rule
}

// NewPatcher constructs a Patcher over the given rule set.
func NewPatcher(rules []m.Rule) Patcher {
	return &patcher{rules: rules}
}

// Apply runs a single rule against buf.
func (p *patcher) Apply(buf []byte, rule m.Rule) ([]byte, m.Outcome) {
	outcome := m.Outcome{RuleID: rule.ID, Description: rule.Description}

	switch rule.Kind {
	case m.KindLiteral:
		return p.applyLiteral(buf, rule, outcome)
	case m.KindPattern:
		return p.applyPattern(buf, rule, outcome)
	case m.KindPatternAll:
		return p.applyPatternAll(buf, rule, outcome)
	}

	outcome.Status = m.Error
	outcome.Err = fmt.Errorf("rule %s: unknown kind %q", rule.ID, rule.Kind)

	return buf, outcome
}

// Run applies every rule in order against successive buffer states.
func (p *patcher) Run(buf []byte) m.RunResult {
	result := m.RunResult{Outcomes: make([]m.Outcome, 0, len(p.rules))}

	current := buf
	for _, rule := range p.rules {
		next, outcome := p.Apply(current, rule)
		if outcome.Status == m.Applied {
			result.Changed = true
		}

		slog.Debug("rule evaluated",
			"rule", rule.ID,
			"status", outcome.Status.String(),
			"matches", outcome.Matches,
		)

		result.Outcomes = append(result.Outcomes, outcome)
		current = next
	}

	result.Final = current

	return result
}

func (p *patcher) applyLiteral(buf []byte, rule m.Rule, outcome m.Outcome) ([]byte, m.Outcome) {
	count := bytes.Count(buf, rule.Find)
	if count == 0 {
		return buf, miss(buf, rule, outcome)
	}

	outcome.Status = m.Applied
	outcome.Matches = count

	return bytes.ReplaceAll(buf, rule.Find, rule.Replace), outcome
}

func (p *patcher) applyPattern(buf []byte, rule m.Rule, outcome m.Outcome) ([]byte, m.Outcome) {
	loc := rule.Pattern.FindSubmatchIndex(buf)
	if loc == nil {
		return buf, miss(buf, rule, outcome)
	}

	replacement := rule.Pattern.Expand(nil, rule.Template, buf, loc)

	// Splice only the matched span so incidental similar text stays untouched.
	out := make([]byte, 0, len(buf)-(loc[1]-loc[0])+len(replacement))
	out = append(out, buf[:loc[0]]...)
	out = append(out, replacement...)
	out = append(out, buf[loc[1]:]...)

	outcome.Status = m.Applied
	outcome.Matches = 1

	return out, outcome
}

func (p *patcher) applyPatternAll(buf []byte, rule m.Rule, outcome m.Outcome) ([]byte, m.Outcome) {
	locs := rule.Pattern.FindAllSubmatchIndex(buf, -1)
	if len(locs) == 0 {
		return buf, miss(buf, rule, outcome)
	}

	// Each occurrence expands the template with its own capture.
	out := make([]byte, 0, len(buf))
	prev := 0

	for _, loc := range locs {
		out = append(out, buf[prev:loc[0]]...)
		out = rule.Pattern.Expand(out, rule.Template, buf, loc)
		prev = loc[1]
	}

	out = append(out, buf[prev:]...)

	outcome.Status = m.Applied
	outcome.Matches = len(locs)

	return out, outcome
}

// miss classifies a non-match as satisfied (replacement already present) or
// missing, leaving the buffer untouched either way.
func miss(buf []byte, rule m.Rule, outcome m.Outcome) m.Outcome {
	if rule.Probe != nil && rule.Probe.Match(buf) {
		outcome.Status = m.Satisfied
		return outcome
	}

	outcome.Status = m.NotFound

	return outcome
}
