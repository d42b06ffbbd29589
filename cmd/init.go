package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/domaingen/config"
)

// NewInitCommand creates a new init command that uses the provided Initializer.
func NewInitCommand(initializer Initializer) *cobra.Command {
	var opts InitOptions

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter " + config.Filename,
		Long: `Init writes a ` + config.Filename + ` with the default settings into the
given directory (default ".").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirsOrDefault(args)[0]

			path, err := initializer.Init(cmd.Context(), dir, opts)
			if err != nil {
				return fmt.Errorf("init failed: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
