package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/domaingen/version"
)

// NewVersionCommand creates a command printing the build version of name.
func NewVersionCommand(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s", name, info.Version)
			if info.Revision != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%s)", info.Revision)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " %s\n", info.GoVersion)
		},
	}
}
