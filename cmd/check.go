package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates a new check command that uses the provided Checker.
func NewCheckCommand(checker Checker) *cobra.Command {
	var opts CheckOptions

	cmd := &cobra.Command{
		Use:   "check [dirs...]",
		Short: "Verify generated files are up to date",
		Long: `Check renders every package like build does and compares the result
with the files on disk. It fails when a generated file is missing, stale
or left over, which makes it suitable for CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			stale, err := checker.Check(cmd.Context(), dirsOrDefault(args), opts)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(stale) == 0 {
				_, _ = fmt.Fprintln(out, "Generated files are up to date")
				return nil
			}

			for _, path := range stale {
				_, _ = fmt.Fprintf(out, "%s: out of date\n", path)
			}
			return fmt.Errorf("%d generated file(s) out of date; run build", len(stale))
		},
	}

	return cmd
}
