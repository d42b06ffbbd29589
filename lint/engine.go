package lint

import (
	"fmt"
	"sort"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/discover"
	"github.com/lex00/domaingen/precond"
	"github.com/lex00/domaingen/shape"
)

// Analysis is the outcome of validating every request of one package.
type Analysis struct {
	Package *discover.DiscoverResult
	// Results are in request order.
	Results []precond.Result
	// Issues are sorted by position and unfiltered.
	Issues []Issue
}

// Valid reports whether every request met its preconditions.
func (a *Analysis) Valid() bool {
	for _, r := range a.Results {
		if !r.Valid() {
			return false
		}
	}
	return true
}

// Analyze extracts and validates each request of pkg. Names generated for a
// valid request count as declared for the requests after it.
func Analyze(pkg *discover.DiscoverResult) (*Analysis, error) {
	a := &Analysis{
		Package: pkg,
		Results: make([]precond.Result, 0, len(pkg.Requests)),
		Issues:  make([]Issue, 0),
	}
	scope := pkg.Scope.Clone()

	for _, req := range pkg.Requests {
		d, err := shape.Extract(req.Spec, pkg.Fset, req.Imports, req.Variants)
		if err != nil {
			return nil, fmt.Errorf("lint: %s: %w", req.TypeName, err)
		}

		res := precond.Validate(req.Contract, d, scope)
		if res.Valid() {
			scope.Claim(res)
		} else {
			a.Issues = append(a.Issues, FromFailure(res.Failure, req.Pos))
		}
		a.Results = append(a.Results, res)
	}

	for _, w := range pkg.Warnings {
		a.Issues = append(a.Issues, Issue{
			Rule:     RuleIgnoredDirective,
			Message:  w.Message,
			File:     w.Pos.Filename,
			Line:     w.Pos.Line,
			Column:   w.Pos.Column,
			Severity: SeverityWarning,
		})
	}

	sortIssues(a.Issues)
	return a, nil
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

func (c *Config) outputFile() string {
	if c == nil || c.OutputFile == "" {
		return discover.DefaultOutputFile
	}
	return c.OutputFile
}

// LintFile lints a single file with the given config.
// Returns all issues found that pass the config filters.
func LintFile(path string, cfg *Config) ([]Issue, error) {
	pkg, err := discover.DiscoverFile(path)
	if err != nil {
		return nil, err
	}
	return lintPackage(pkg, cfg)
}

// LintBytes lints source code from bytes with the given config.
// The filename is used for issue reporting.
func LintBytes(src []byte, filename string, cfg *Config) ([]Issue, error) {
	pkg, err := dgast.ParseSource(filename, src)
	if err != nil {
		return nil, err
	}
	f := pkg.Files[0]
	return lintPackage(discover.DiscoverAST(pkg.Fset, f.AST, f.Path), cfg)
}

// LintDir lints the package in a directory (non-recursively).
func LintDir(dir string, cfg *Config) ([]Issue, error) {
	pkg, err := discover.DiscoverDir(dir, cfg.outputFile())
	if err != nil {
		return nil, err
	}
	return lintPackage(pkg, cfg)
}

// LintDirRecursive lints every package under root.
func LintDirRecursive(root string, cfg *Config) ([]Issue, error) {
	pkgs, err := discover.Discover(discover.DiscoverOptions{
		Packages:   []string{root + "/..."},
		OutputFile: cfg.outputFile(),
		Walk:       discover.DefaultWalkOptions(),
	})
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0)
	for _, pkg := range pkgs {
		pkgIssues, err := lintPackage(pkg, cfg)
		if err != nil {
			return nil, err
		}
		issues = append(issues, pkgIssues...)
	}
	return issues, nil
}

func lintPackage(pkg *discover.DiscoverResult, cfg *Config) ([]Issue, error) {
	a, err := Analyze(pkg)
	if err != nil {
		return nil, err
	}
	return cfg.Filter(a.Issues), nil
}
