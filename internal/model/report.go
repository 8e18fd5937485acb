package model

import "time"

// RuleReport is the serializable form of a per-rule outcome.
type RuleReport struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Matches     int    `yaml:"matches,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

// RunReport is the serializable summary of a patch run. It is an optional
// machine-readable layer on top of the human-readable output; writing it never
// changes engine behavior.
type RunReport struct {
	Target      string       `yaml:"target"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	DryRun      bool         `yaml:"dry_run,omitempty"`
	Committed   bool         `yaml:"committed"`
	Backup      string       `yaml:"backup,omitempty"`
	Applied     int          `yaml:"applied"`
	Total       int          `yaml:"total"`
	Rules       []RuleReport `yaml:"rules"`
}

// NewRunReport builds a RunReport from a run and its commit result.
func NewRunReport(target Path, res RunResult, commit CommitResult, dryRun bool) RunReport {
	report := RunReport{
		Target:      string(target),
		GeneratedAt: time.Now().UTC(),
		DryRun:      dryRun,
		Committed:   commit.Committed,
		Backup:      string(commit.BackupPath),
		Applied:     res.Applied(),
		Total:       res.Total(),
		Rules:       make([]RuleReport, 0, len(res.Outcomes)),
	}

	for _, outcome := range res.Outcomes {
		entry := RuleReport{
			ID:          outcome.RuleID,
			Description: outcome.Description,
			Status:      outcome.Status.String(),
			Matches:     outcome.Matches,
		}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}

		report.Rules = append(report.Rules, entry)
	}

	return report
}
