// Package cmd provides the commands of the domaingen CLI.
//
// Commands depend on small interfaces so that the binary in cmd/domaingen
// wires the real pipeline and tests can wire fakes.
package cmd

import (
	"context"

	"github.com/lex00/domaingen/lint"
	"github.com/lex00/domaingen/lsp"
)

// BuildOptions contains options for the build command.
type BuildOptions struct {
	// Output overrides the generated file name.
	Output  string
	Verbose bool
	DryRun  bool
}

// LintOptions contains options for the lint command.
type LintOptions struct {
	// Format is text, json or yaml.
	Format  string
	Verbose bool
}

// InitOptions contains options for the init command.
type InitOptions struct {
	Force bool
}

// CheckOptions contains options for the check command.
type CheckOptions struct {
	Verbose bool
}

// BuildResult describes the generated file of one package.
type BuildResult struct {
	Path string
	// Source is the rendered file, nil for a package without directives.
	Source []byte
	// Changed is true when the file was written or removed.
	Changed bool
}

// Builder generates code for package directories.
type Builder interface {
	Build(ctx context.Context, dirs []string, opts BuildOptions) ([]BuildResult, error)
}

// Linter reports diagnostics for package directories.
type Linter interface {
	Lint(ctx context.Context, dirs []string, opts LintOptions) ([]lint.Issue, error)
}

// Diagnoser returns editor diagnostics for a document URI.
type Diagnoser interface {
	Diagnose(ctx context.Context, uri string) ([]lsp.Diagnostic, error)
}

// Initializer writes a starter configuration file.
type Initializer interface {
	Init(ctx context.Context, dir string, opts InitOptions) (string, error)
}

// Checker reports generated files that are out of date.
type Checker interface {
	Check(ctx context.Context, dirs []string, opts CheckOptions) ([]string, error)
}

// dirsOrDefault returns args, or the current directory when none are given.
func dirsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
