package model

// OutcomeStatus represents the per-rule result of a patch run.
type OutcomeStatus int

const (
	// Applied indicates the rule's pattern was found and rewritten.
	Applied OutcomeStatus = iota
	// Satisfied indicates the pattern was absent but the rule's replacement
	// is already present in the buffer (previously patched).
	Satisfied
	// NotFound indicates the pattern does not occur in the current buffer.
	NotFound
	// Error indicates the rule failed while being applied.
	Error
)

// String returns the human-readable status label used in reports.
func (s OutcomeStatus) String() string {
	switch s {
	case Applied:
		return "applied"
	case Satisfied:
		return "satisfied"
	case NotFound:
		return "missing"
	case Error:
		return "error"
	}

	return "unknown"
}

// Outcome records the result of applying a single rule.
type Outcome struct {
	RuleID      string
	Description string
	Status      OutcomeStatus
	Matches     int // occurrences replaced; 0 unless Status is Applied
	Err         error
}

// RunResult aggregates the per-rule outcomes of one engine run together with
// the final buffer state.
type RunResult struct {
	Final    []byte
	Outcomes []Outcome
	Changed  bool
}

// Applied returns the number of rules that rewrote the buffer.
func (r RunResult) Applied() int {
	return r.count(Applied)
}

// Satisfied returns the number of rules whose replacement was already present.
func (r RunResult) Satisfied() int {
	return r.count(Satisfied)
}

// Missing returns the number of rules whose pattern did not occur.
func (r RunResult) Missing() int {
	return r.count(NotFound)
}

// Total returns the number of rules that were run.
func (r RunResult) Total() int {
	return len(r.Outcomes)
}

// Complete reports whether every rule either rewrote the buffer or found its
// replacement already in place.
func (r RunResult) Complete() bool {
	return r.Applied()+r.Satisfied() == r.Total()
}

// Effective reports whether at least one rule took (or previously took) effect.
func (r RunResult) Effective() bool {
	return r.Applied()+r.Satisfied() > 0
}

func (r RunResult) count(status OutcomeStatus) int {
	n := 0

	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			n++
		}
	}

	return n
}

// CommitResult records whether the transformed buffer was persisted and where
// the pre-patch backup was written.
type CommitResult struct {
	Committed  bool
	BackupPath Path
}
