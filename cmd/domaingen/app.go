package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lex00/domaingen/cmd"
	"github.com/lex00/domaingen/config"
	"github.com/lex00/domaingen/discover"
	"github.com/lex00/domaingen/generate"
	"github.com/lex00/domaingen/lint"
	"github.com/lex00/domaingen/lsp"
)

// app implements the cmd interfaces on top of the generator pipeline.
type app struct {
	logger *zap.Logger
	cfg    *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop(), cfg: config.Default()}

	root := cmd.NewRootCommand("domaingen", "Generate domain-model boilerplate from //domain:derive directives")
	root.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		verbose, _ := c.Flags().GetBool("verbose")
		configPath, _ := c.Flags().GetString("config")
		return a.setup(verbose, configPath)
	}
	root.PersistentPostRun = func(c *cobra.Command, args []string) {
		_ = a.logger.Sync()
	}

	root.AddCommand(
		cmd.NewBuildCommand(a),
		cmd.NewLintCommand(a),
		cmd.NewCheckCommand(a),
		cmd.NewInitCommand(a),
		cmd.NewDiagnoseCommand(a),
		cmd.NewVersionCommand("domaingen"),
	)
	return root
}

// newLogger builds a console logger on stderr that shows warnings, or
// everything when verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.DisableStacktrace = true
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func (a *app) setup(verbose bool, configPath string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if configPath != "" {
		a.cfg, err = config.LoadFile(configPath)
	} else {
		a.cfg, configPath, err = config.Load()
	}
	if err != nil {
		return err
	}
	if configPath != "" {
		a.logger.Debug("Loaded config", zap.String("path", configPath))
	}
	return nil
}

func (a *app) generator(opts cmd.BuildOptions) (*generate.Generator, error) {
	cfg := *a.cfg
	if opts.Output != "" {
		cfg.Output = opts.Output
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	gcfg := cfg.GeneratorConfig()
	gcfg.DryRun = opts.DryRun
	return generate.New(gcfg, generate.WithLogger(a.logger)), nil
}

// Build implements cmd.Builder.
func (a *app) Build(ctx context.Context, dirs []string, opts cmd.BuildOptions) ([]cmd.BuildResult, error) {
	g, err := a.generator(opts)
	if err != nil {
		return nil, err
	}

	outputs, err := g.Run(ctx, dirs)
	results := make([]cmd.BuildResult, 0, len(outputs))
	for _, out := range outputs {
		results = append(results, cmd.BuildResult{Path: out.Path, Source: out.Source, Changed: out.Changed})
	}
	return results, err
}

// Lint implements cmd.Linter.
func (a *app) Lint(ctx context.Context, dirs []string, opts cmd.LintOptions) ([]lint.Issue, error) {
	resolved, err := discover.ResolveDirs(dirs, discover.DefaultWalkOptions())
	if err != nil {
		return nil, err
	}

	lcfg := a.cfg.LintOptions()
	issues := make([]lint.Issue, 0)
	for _, dir := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkgIssues, err := lint.LintDir(dir, lcfg)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("Linted package", zap.String("dir", dir), zap.Int("issues", len(pkgIssues)))
		issues = append(issues, pkgIssues...)
	}
	return issues, nil
}

// Check implements cmd.Checker.
func (a *app) Check(ctx context.Context, dirs []string, opts cmd.CheckOptions) ([]string, error) {
	g, err := a.generator(cmd.BuildOptions{DryRun: true})
	if err != nil {
		return nil, err
	}

	outputs, err := g.Run(ctx, dirs)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, out := range outputs {
		existing, err := os.ReadFile(out.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if out.Source != nil {
				stale = append(stale, out.Path)
			}
		case err != nil:
			return nil, err
		case !bytes.Equal(existing, out.Source):
			stale = append(stale, out.Path)
		}
	}
	return stale, nil
}

// Init implements cmd.Initializer.
func (a *app) Init(ctx context.Context, dir string, opts cmd.InitOptions) (string, error) {
	path := filepath.Join(dir, config.Filename)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.Save(config.Default(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Diagnose implements cmd.Diagnoser through the editor server.
func (a *app) Diagnose(ctx context.Context, uri string) ([]lsp.Diagnostic, error) {
	return lsp.NewDomaingenServer(a.cfg.LintOptions(), a.logger).Diagnose(ctx, uri)
}
