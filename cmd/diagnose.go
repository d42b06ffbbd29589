package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lex00/domaingen/lsp"
)

// NewDiagnoseCommand creates the command editors run to fetch diagnostics
// for documents in Language Server Protocol form.
func NewDiagnoseCommand(diagnoser Diagnoser) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose <files...>",
		Short: "Print editor diagnostics for Go files as JSON",
		Long: `Diagnose lints the package of each file and prints the issues located in
that file as LSP diagnostics (zero-based positions), keyed by document URI.

Arguments may be paths or file:// URIs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := make(map[string][]lsp.Diagnostic, len(args))
			for _, arg := range args {
				uri := arg
				if !strings.Contains(arg, "://") {
					abs, err := filepath.Abs(arg)
					if err != nil {
						return err
					}
					uri = lsp.URIFromPath(abs)
				}

				diags, err := diagnoser.Diagnose(cmd.Context(), uri)
				if err != nil {
					return fmt.Errorf("diagnose failed: %w", err)
				}
				report[uri] = diags
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
