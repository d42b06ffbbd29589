package lsp

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DiagnosticProvider lints a document.
type DiagnosticProvider interface {
	Diagnose(ctx context.Context, uri string) ([]Diagnostic, error)
}

// CompletionProvider suggests text at a position.
type CompletionProvider interface {
	Complete(ctx context.Context, uri string, pos Position) ([]CompletionItem, error)
}

// HoverProvider documents the symbol at a position.
type HoverProvider interface {
	Hover(ctx context.Context, uri string, pos Position) (*Hover, error)
}

// DefinitionProvider resolves the symbol at a position to its declaration.
type DefinitionProvider interface {
	Definition(ctx context.Context, uri string, pos Position) ([]Location, error)
}

// Config wires providers into a Server. A nil provider answers every request
// with an empty result.
type Config struct {
	// Name is the server name reported to the editor.
	Name string

	Linter      DiagnosticProvider
	Completer   CompletionProvider
	HoverDocs   HoverProvider
	Definitions DefinitionProvider

	// Logger receives one debug entry per answered request.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Server dispatches editor requests to the configured providers.
type Server struct {
	config Config
	logger *zap.Logger
}

// NewServer creates a server with the given configuration.
func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{config: config, logger: logger.Named("lsp")}
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.config.Name
}

// Diagnose returns the diagnostics of a document.
func (s *Server) Diagnose(ctx context.Context, uri string) ([]Diagnostic, error) {
	if s.config.Linter == nil {
		return []Diagnostic{}, nil
	}
	diags, err := s.config.Linter.Diagnose(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("diagnose %s: %w", uri, err)
	}
	s.logger.Debug("Diagnosed document", zap.String("uri", uri), zap.Int("diagnostics", len(diags)))
	return diags, nil
}

// Complete returns completion items at pos.
func (s *Server) Complete(ctx context.Context, uri string, pos Position) ([]CompletionItem, error) {
	if s.config.Completer == nil {
		return []CompletionItem{}, nil
	}
	items, err := s.config.Completer.Complete(ctx, uri, pos)
	if err != nil {
		return nil, fmt.Errorf("complete %s:%d:%d: %w", uri, pos.Line, pos.Character, err)
	}
	s.logger.Debug("Completed", zap.String("uri", uri), zap.Int("items", len(items)))
	return items, nil
}

// Hover returns documentation for the symbol at pos, or nil.
func (s *Server) Hover(ctx context.Context, uri string, pos Position) (*Hover, error) {
	if s.config.HoverDocs == nil {
		return nil, nil
	}
	hover, err := s.config.HoverDocs.Hover(ctx, uri, pos)
	if err != nil {
		return nil, fmt.Errorf("hover %s:%d:%d: %w", uri, pos.Line, pos.Character, err)
	}
	return hover, nil
}

// Definition returns the declarations of the symbol at pos.
func (s *Server) Definition(ctx context.Context, uri string, pos Position) ([]Location, error) {
	if s.config.Definitions == nil {
		return []Location{}, nil
	}
	locs, err := s.config.Definitions.Definition(ctx, uri, pos)
	if err != nil {
		return nil, fmt.Errorf("definition %s:%d:%d: %w", uri, pos.Line, pos.Character, err)
	}
	return locs, nil
}
