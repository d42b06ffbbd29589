package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lex00/domaingen/config"
)

// NewRootCommand creates the root command.
func NewRootCommand(name, description string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: description,
		Long: description + `

Annotate a type declaration with a directive naming the contracts it should
implement, then run build from go generate:

	//domain:derive Entity
	type User struct {
		id      uuid.UUID
		version uint64
	}

	//go:generate go run github.com/lex00/domaingen/cmd/domaingen build .`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags available to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to "+config.Filename+" (default: nearest one above the working directory)")

	return cmd
}
