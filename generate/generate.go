// Package generate runs the domaingen pipeline for Go packages: discover
// directives, validate the declared shapes, synthesize the methods and write
// one gofmt'ed file per package.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/discover"
	"github.com/lex00/domaingen/lint"
	"github.com/lex00/domaingen/synth"
)

// Config controls the generator.
type Config struct {
	// OutputFile is the file name written into each package.
	OutputFile string
	// ContractsImport is the import path of the contract interfaces.
	ContractsImport string
	// Concurrency bounds how many packages Run processes at once. Zero
	// means GOMAXPROCS.
	Concurrency int
	// DryRun makes Run render without touching the file system.
	DryRun bool
}

func (c Config) outputFile() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return discover.DefaultOutputFile
}

func (c Config) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Generator renders and writes generated files. It keeps no state between
// packages and is safe for concurrent use.
type Generator struct {
	cfg    Config
	logger *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Output is the generated file for one package.
type Output struct {
	// Dir is the package directory.
	Dir string
	// Package is the package name.
	Package string
	// Path is where the file is written.
	Path string
	// Source is the generated file, nil when the package has no directives.
	Source []byte
	// Artifacts are the per-request fragments in Source order.
	Artifacts []*synth.Artifact
	// Warnings are ignored directives.
	Warnings []lint.Issue
	// Changed is set by Write when the file was written or removed.
	Changed bool
}

// DiagnosticsError is returned when at least one request failed its
// preconditions. Nothing is written for the packages it covers.
type DiagnosticsError struct {
	// Issues are every error-severity issue, ordered by position.
	Issues []lint.Issue
}

// Error implements the error interface.
func (e *DiagnosticsError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, lint.Format(issue))
	}
	return fmt.Sprintf("domaingen: %d precondition error(s):\n%s", len(e.Issues), strings.Join(lines, "\n"))
}

func (g *Generator) synthOptions() synth.Options {
	return synth.Options{ContractsImport: g.cfg.ContractsImport}
}

// Package renders the output for the package in dir without writing it.
func (g *Generator) Package(ctx context.Context, dir string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkg, err := discover.DiscoverDir(dir, g.cfg.outputFile())
	if err != nil {
		return nil, err
	}
	g.logger.Debug("Discovered package",
		zap.String("dir", dir),
		zap.String("package", pkg.Package),
		zap.Int("requests", len(pkg.Requests)))

	return g.render(pkg)
}

func (g *Generator) render(pkg *discover.DiscoverResult) (*Output, error) {
	analysis, err := lint.Analyze(pkg)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Dir:     pkg.Dir,
		Package: pkg.Package,
		Path:    filepath.Join(pkg.Dir, g.cfg.outputFile()),
	}

	var errs []lint.Issue
	for _, issue := range analysis.Issues {
		if issue.Severity == lint.SeverityError {
			errs = append(errs, issue)
		} else {
			out.Warnings = append(out.Warnings, issue)
		}
	}
	for _, w := range out.Warnings {
		g.logger.Warn("Ignored directive", zap.String("issue", lint.Format(w)))
	}
	if len(errs) > 0 {
		return nil, &DiagnosticsError{Issues: errs}
	}
	if len(analysis.Results) == 0 {
		return out, nil
	}

	opts := g.synthOptions()
	for _, res := range analysis.Results {
		art, err := synth.Synthesize(res, opts)
		if err != nil {
			return nil, err
		}
		out.Artifacts = append(out.Artifacts, art)
	}

	out.Source, err = synth.RenderFile(pkg.Package, out.Artifacts, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %s: %w", pkg.Dir, err)
	}
	return out, nil
}

// DryRun returns the file Package would write for dir.
func (g *Generator) DryRun(ctx context.Context, dir string) ([]byte, error) {
	out, err := g.Package(ctx, dir)
	if err != nil {
		return nil, err
	}
	return out.Source, nil
}

// Write renders dir and writes the output file when its content changed.
// A stale output file is removed when the package has no directives.
func (g *Generator) Write(ctx context.Context, dir string) (*Output, error) {
	out, err := g.Package(ctx, dir)
	if err != nil {
		return nil, err
	}
	if err := g.write(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Generator) write(out *Output) error {
	existing, err := os.ReadFile(out.Path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("generate: %w", err)
	}
	if exists && !dgast.IsGenerated(existing) {
		return fmt.Errorf("generate: %s was not written by domaingen; refusing to overwrite it", out.Path)
	}

	if out.Source == nil {
		if !exists {
			return nil
		}
		if err := os.Remove(out.Path); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		out.Changed = true
		g.logger.Info("Removed stale output", zap.String("path", out.Path))
		return nil
	}

	if exists && bytes.Equal(existing, out.Source) {
		g.logger.Debug("Output unchanged", zap.String("path", out.Path))
		return nil
	}
	if err := os.WriteFile(out.Path, out.Source, 0o644); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	out.Changed = true
	g.logger.Info("Wrote output",
		zap.String("path", out.Path),
		zap.Int("types", len(out.Artifacts)))
	return nil
}

// Run generates every package matched by patterns, in parallel and bounded
// by Config.Concurrency. Packages with failed preconditions do not stop the
// others; their issues are collected into one *DiagnosticsError. Outputs
// are returned in pattern order.
func (g *Generator) Run(ctx context.Context, patterns []string) ([]*Output, error) {
	dirs, err := discover.ResolveDirs(patterns, discover.DefaultWalkOptions())
	if err != nil {
		return nil, err
	}

	outputs := make([]*Output, len(dirs))
	var (
		mu    sync.Mutex
		diags []lint.Issue
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.concurrency())
	for i, dir := range dirs {
		eg.Go(func() error {
			var (
				out *Output
				err error
			)
			if g.cfg.DryRun {
				out, err = g.Package(egCtx, dir)
			} else {
				out, err = g.Write(egCtx, dir)
			}

			var diag *DiagnosticsError
			if errors.As(err, &diag) {
				mu.Lock()
				diags = append(diags, diag.Issues...)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(diags) > 0 {
		sort.SliceStable(diags, func(i, j int) bool {
			if diags[i].File != diags[j].File {
				return diags[i].File < diags[j].File
			}
			return diags[i].Line < diags[j].Line
		})
		return compact(outputs), &DiagnosticsError{Issues: diags}
	}
	return outputs, nil
}

func compact(outputs []*Output) []*Output {
	kept := make([]*Output, 0, len(outputs))
	for _, out := range outputs {
		if out != nil {
			kept = append(kept, out)
		}
	}
	return kept
}
