package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBuildCommand creates a new build command that uses the provided Builder.
func NewBuildCommand(builder Builder) *cobra.Command {
	var opts BuildOptions

	cmd := &cobra.Command{
		Use:   "build [dirs...]",
		Short: "Generate code for annotated types",
		Long: `Build reads the Go packages in the given directories (default ".",
"dir/..." for a tree), checks every //domain:derive directive and writes
one generated file per package.

When a type does not meet the preconditions of a requested contract the
diagnostics are printed and nothing is written for that package.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			results, err := builder.Build(cmd.Context(), dirsOrDefault(args), opts)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.DryRun {
				for _, r := range results {
					if r.Source == nil {
						continue
					}
					_, _ = fmt.Fprintf(out, "// %s\n%s", r.Path, r.Source)
				}
				return nil
			}

			changed := 0
			for _, r := range results {
				if r.Changed {
					changed++
					if opts.Verbose {
						_, _ = fmt.Fprintf(out, "updated %s\n", r.Path)
					}
				}
			}
			_, _ = fmt.Fprintf(out, "Build completed successfully: %d package(s), %d file(s) updated\n", len(results), changed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Generated file name (default domaingen_gen.go)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print generated code without writing files")

	return cmd
}
