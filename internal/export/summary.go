// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// SummaryFile is the name of the YAML run summary written beside the CSVs.
const SummaryFile = "conversion_summary.yaml"

// TableSummary records the outcome for one output table.
type TableSummary struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Rows int    `yaml:"rows"`
}

// RunSummary is the on-disk record of a conversion run: what was read,
// what was written, and how many warnings surfaced along the way.
type RunSummary struct {
	GeneratedAt time.Time      `yaml:"generated_at"`
	InputDir    string         `yaml:"input_dir"`
	OutputDir   string         `yaml:"output_dir"`
	Start       string         `yaml:"start,omitempty"`
	End         string         `yaml:"end,omitempty"`
	Tables      []TableSummary `yaml:"tables"`
	Warnings    int            `yaml:"warnings"`
}

// WriteSummary saves the run summary to a YAML file.
func WriteSummary(path string, s RunSummary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
