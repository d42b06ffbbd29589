// Package lint turns precondition failures and ignored directives into
// positioned diagnostics.
package lint

import "fmt"

// Severity indicates the severity level of a lint issue.
type Severity int

const (
	// SeverityError blocks generation for the package.
	SeverityError Severity = iota
	// SeverityWarning indicates a directive that was ignored.
	SeverityWarning
	// SeverityInfo indicates a suggestion or informational message.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity maps "error", "warning" or "info" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Issue represents a single diagnostic.
type Issue struct {
	// Rule is the unique identifier of the rule that found this issue.
	Rule string
	// Message describes the issue.
	Message string
	// File is the path to the file containing the issue.
	File string
	// Line is the line number (1-based) where the issue was found.
	Line int
	// Column is the column number (1-based) where the issue was found.
	Column int
	// Severity indicates how serious the issue is.
	Severity Severity
	// Suggestion provides a recommended fix for the issue.
	Suggestion string
}

// String formats the issue the way compilers do, e.g.
// "user.go:12:6: error: Entity: User is missing required field `id` (uuid.UUID) (DG003)".
func (i Issue) String() string {
	return Format(i)
}

// Format renders issue as file:line:col: severity: message (rule).
func Format(issue Issue) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s (%s)",
		issue.File, issue.Line, issue.Column, issue.Severity, issue.Message, issue.Rule)
}

// Config controls linting behavior.
type Config struct {
	// DisabledRules is a list of rule IDs to skip.
	DisabledRules []string
	// MinSeverity is the minimum severity level to report.
	// Issues with lower severity will be filtered out.
	MinSeverity Severity
	// OutputFile is the generated file left out of analysis. Empty means
	// discover.DefaultOutputFile.
	OutputFile string
}

// IsRuleDisabled returns true if the given rule ID is disabled.
func (c *Config) IsRuleDisabled(ruleID string) bool {
	for _, id := range c.DisabledRules {
		if id == ruleID {
			return true
		}
	}
	return false
}

// ShouldReport returns true if the issue should be reported based on config.
func (c *Config) ShouldReport(issue Issue) bool {
	if c.IsRuleDisabled(issue.Rule) {
		return false
	}
	// Lower severity value means higher priority (Error=0 is most severe)
	return issue.Severity <= c.MinSeverity
}

// Filter returns the issues that pass the config. A nil config keeps all.
func (c *Config) Filter(issues []Issue) []Issue {
	if c == nil {
		return issues
	}
	kept := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if c.ShouldReport(issue) {
			kept = append(kept, issue)
		}
	}
	return kept
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
