package lint

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// issueReport is the machine-readable form of an Issue.
type issueReport struct {
	Rule       string `json:"rule" yaml:"rule"`
	Severity   string `json:"severity" yaml:"severity"`
	Message    string `json:"message" yaml:"message"`
	File       string `json:"file" yaml:"file"`
	Line       int    `json:"line" yaml:"line"`
	Column     int    `json:"column" yaml:"column"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

func toReports(issues []Issue) []issueReport {
	reports := make([]issueReport, 0, len(issues))
	for _, i := range issues {
		reports = append(reports, issueReport{
			Rule:       i.Rule,
			Severity:   i.Severity.String(),
			Message:    i.Message,
			File:       i.File,
			Line:       i.Line,
			Column:     i.Column,
			Suggestion: i.Suggestion,
		})
	}
	return reports
}

// FormatIssues renders issues in the requested output format.
// Supported formats: text, json, yaml.
func FormatIssues(issues []Issue, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		bytes, err := json.MarshalIndent(toReports(issues), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(bytes) + "\n", nil
	case "yaml", "yml":
		bytes, err := yaml.Marshal(toReports(issues))
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(bytes), nil
	case "text", "":
		var sb strings.Builder
		for _, i := range issues {
			sb.WriteString(Format(i))
			sb.WriteString("\n")
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", format)
	}
}
