// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

// RunFile is the on-disk record of a run's parameters and outcome. It lets
// a later `dedup` invocation reuse the original settings without
// re-querying the API.
type RunFile struct {
	Query      string           `yaml:"query"`
	YearsBack  int              `yaml:"years_back,omitempty"`
	MaxRecords int              `yaml:"max_records"`
	Threshold  int              `yaml:"threshold"`
	Summary    types.RunSummary `yaml:"summary"`
}

// WriteRunFile saves the run parameters and summary as "<base>_run.yaml".
func WriteRunFile(base string, rf RunFile) (string, error) {
	path := strings.TrimSuffix(base, ".csv") + "_run.yaml"
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return "", fmt.Errorf("marshaling run file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}

// ReadRunFile loads a previously saved run file.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
