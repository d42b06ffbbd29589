package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/domaingen/lint"
)

// NewLintCommand creates a new lint command that uses the provided Linter.
func NewLintCommand(linter Linter) *cobra.Command {
	var opts LintOptions

	cmd := &cobra.Command{
		Use:   "lint [dirs...]",
		Short: "Check directives without generating code",
		Long: `Lint runs the same checks as build and prints the diagnostics
without writing anything.

Issues are categorized by severity (error, warning, info) and include
file location and rule information.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			issues, err := linter.Lint(cmd.Context(), dirsOrDefault(args), opts)
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}

			out := cmd.OutOrStdout()
			errorCount := 0
			for _, issue := range issues {
				if issue.Severity == lint.SeverityError {
					errorCount++
				}
			}

			switch {
			case opts.Format != "" && opts.Format != "text":
				report, err := lint.FormatIssues(issues, opts.Format)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(out, report)
			case len(issues) == 0:
				_, _ = fmt.Fprintln(out, "No issues found")
			default:
				for _, issue := range issues {
					_, _ = fmt.Fprintln(out, lint.Format(issue))
					if opts.Verbose && issue.Suggestion != "" {
						_, _ = fmt.Fprintf(out, "\thint: %s\n", issue.Suggestion)
					}
				}
			}

			if errorCount > 0 {
				return fmt.Errorf("lint found %d error(s)", errorCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json or yaml")

	return cmd
}
