package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// ReportStore persists machine-readable run reports.
type ReportStore interface {
	Save(path m.Path, report m.RunReport) error
	Load(path m.Path) (m.RunReport, error)
}

// YAMLReportStore stores run reports as YAML documents on disk.
type YAMLReportStore struct{}

// NewReportStore constructs the default YAML-backed ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// Save marshals the report and writes it to path.
func (s *YAMLReportStore) Save(path m.Path, report m.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}

	return nil
}

// Load reads and unmarshals a run report from path.
func (s *YAMLReportStore) Load(path m.Path) (m.RunReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read run report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("unmarshal run report: %w", err)
	}

	return report, nil
}
