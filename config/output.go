package config

import (
	"fmt"
	"path/filepath"
)

// Report formats accepted in OutputConfig.Report.
const (
	ReportNone = "none"
	ReportJSON = "json"
	ReportCSV  = "csv"
)

// OutputConfig controls where solutions and reports are written.
type OutputConfig struct {
	// Dir receives <dataset>.txt when no explicit output path is given.
	Dir string `json:"dir"`
	// Report additionally writes a per-library summary next to the solution.
	Report string `json:"report"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "out"
	}
	if c.Report == "" {
		c.Report = ReportNone
	}
}

// Validate checks the report format.
func (c OutputConfig) Validate() error {
	switch c.Report {
	case ReportNone, ReportJSON, ReportCSV:
		return nil
	}
	return fmt.Errorf("unknown report format %q", c.Report)
}

// SolutionPath returns the default solution path for dataset.
func (c OutputConfig) SolutionPath(dataset string) string {
	return filepath.Join(c.Dir, dataset+".txt")
}

// ReportPath returns the report path matching a solution path, or "" when
// reports are disabled.
func (c OutputConfig) ReportPath(solutionPath string) string {
	if c.Report == ReportNone || c.Report == "" {
		return ""
	}
	ext := filepath.Ext(solutionPath)
	return solutionPath[:len(solutionPath)-len(ext)] + ".report." + c.Report
}
