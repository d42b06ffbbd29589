package lsp

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/discover"
	"github.com/lex00/domaingen/lint"
	"github.com/lex00/domaingen/precond"
)

// ServerName is reported by NewDomaingenServer.
const ServerName = "domaingen-lsp"

var contractDocs = map[precond.Contract]string{
	precond.Entity:       "Identity and version accessors. Requires `id uuid.UUID` and a fixed-width integer `version`.",
	precond.ValueObject:  "Validating constructor, equality and cloning. Requires exactly one duplicable field `value`.",
	precond.DomainEvent:  "Event accessors. Requires `id` and `aggregateID` of type uuid.UUID, an integer `version` and `occurred int64`.",
	precond.DomainEvents: "Seals a union interface over the event variants listed after the contract.",
	precond.Command:      "Command message marker. Requires a struct.",
	precond.Query:        "Query message marker. Requires a struct.",
}

// ContractDoc returns the editor documentation for a contract.
func ContractDoc(c precond.Contract) string {
	return contractDocs[c]
}

// DirectiveProvider answers editor requests for Go files carrying
// //domain:derive directives. It reads documents from disk.
type DirectiveProvider struct {
	// Lint filters the reported diagnostics. Nil reports everything.
	Lint *lint.Config
}

// NewDomaingenServer returns a server whose every provider is a
// DirectiveProvider.
func NewDomaingenServer(cfg *lint.Config, logger *zap.Logger) *Server {
	p := &DirectiveProvider{Lint: cfg}
	return NewServer(Config{
		Name:        ServerName,
		Linter:      p,
		Completer:   p,
		HoverDocs:   p,
		Definitions: p,
		Logger:      logger,
	})
}

// PathFromURI converts a file URI (or a plain path) to a filesystem path.
func PathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid document URI %q: %w", uri, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

// URIFromPath converts an absolute path to a file URI.
func URIFromPath(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// ToDiagnostic converts a lint issue to a zero-based LSP diagnostic.
func ToDiagnostic(issue lint.Issue) Diagnostic {
	start := Position{Line: max(issue.Line-1, 0), Character: max(issue.Column-1, 0)}
	return Diagnostic{
		Range:    Range{Start: start, End: start},
		Severity: diagnosticSeverity(issue.Severity),
		Code:     issue.Rule,
		Source:   "domaingen",
		Message:  issue.Message,
	}
}

func diagnosticSeverity(s lint.Severity) DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return SeverityError
	case lint.SeverityWarning:
		return SeverityWarning
	default:
		return SeverityInformation
	}
}

// Diagnose lints the document's package and returns the issues located in
// the document.
func (p *DirectiveProvider) Diagnose(ctx context.Context, uri string) ([]Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := PathFromURI(uri)
	if err != nil {
		return nil, err
	}

	issues, err := lint.LintDir(filepath.Dir(path), p.Lint)
	if err != nil {
		return nil, err
	}

	want := filepath.Clean(path)
	diags := []Diagnostic{}
	for _, issue := range issues {
		if filepath.Clean(issue.File) == want {
			diags = append(diags, ToDiagnostic(issue))
		}
	}
	return diags, nil
}

// Complete offers contract names after a //domain:derive directive.
// Contracts already named on the line are not offered again.
func (p *DirectiveProvider) Complete(ctx context.Context, uri string, pos Position) ([]CompletionItem, error) {
	line, err := documentLine(uri, pos.Line)
	if err != nil {
		return nil, err
	}

	prefix := line[:min(max(pos.Character, 0), len(line))]
	args, ok := directiveArgs(prefix)
	if !ok {
		return []CompletionItem{}, nil
	}

	words := splitDirectiveWords(args)
	partial := ""
	if len(words) > 0 && !strings.ContainsRune(" \t,", rune(args[len(args)-1])) {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}
	used := make(map[string]bool, len(words))
	for _, w := range words {
		used[w] = true
	}

	items := []CompletionItem{}
	for _, c := range precond.Contracts() {
		name := c.String()
		if used[name] || !strings.HasPrefix(name, partial) {
			continue
		}
		items = append(items, CompletionItem{
			Label:         name,
			Kind:          CompletionKindInterface,
			Detail:        "domaingen contract",
			Documentation: ContractDoc(c),
		})
	}
	return items, nil
}

// Hover documents the contract under the cursor on a directive line.
func (p *DirectiveProvider) Hover(ctx context.Context, uri string, pos Position) (*Hover, error) {
	line, err := documentLine(uri, pos.Line)
	if err != nil {
		return nil, err
	}
	if _, ok := directiveArgs(line); !ok {
		return nil, nil
	}

	word, start := wordAt(line, pos.Character)
	c, ok := precond.ParseContract(word)
	if !ok {
		return nil, nil
	}
	return &Hover{
		Contents: fmt.Sprintf("**%s**\n\n%s", c, ContractDoc(c)),
		Range: &Range{
			Start: Position{Line: pos.Line, Character: start},
			End:   Position{Line: pos.Line, Character: start + len(word)},
		},
	}, nil
}

// Definition resolves a union variant named on a directive line to the type
// declaration in the same package.
func (p *DirectiveProvider) Definition(ctx context.Context, uri string, pos Position) ([]Location, error) {
	path, err := PathFromURI(uri)
	if err != nil {
		return nil, err
	}
	line, err := documentLine(uri, pos.Line)
	if err != nil {
		return nil, err
	}
	if _, ok := directiveArgs(line); !ok {
		return []Location{}, nil
	}
	word, _ := wordAt(line, pos.Character)
	if word == "" {
		return []Location{}, nil
	}
	if _, ok := precond.ParseContract(word); ok {
		return []Location{}, nil
	}

	pkg, err := dgast.ParseDir(filepath.Dir(path), dgast.ParseOptions{SkipTests: true})
	if err != nil {
		return nil, err
	}
	for _, f := range pkg.Files {
		if declPos, ok := findType(pkg.Fset, f.AST, word); ok {
			start := Position{Line: declPos.Line - 1, Character: declPos.Column - 1}
			end := Position{Line: start.Line, Character: start.Character + len(word)}
			return []Location{{URI: URIFromPath(f.Path), Range: Range{Start: start, End: end}}}, nil
		}
	}
	return []Location{}, nil
}

func findType(fset *token.FileSet, file *ast.File, name string) (token.Position, bool) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
				return fset.Position(ts.Name.Pos()), true
			}
		}
	}
	return token.Position{}, false
}

// directiveArgs returns the text after the directive marker when line is a
// directive comment.
func directiveArgs(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, discover.Directive) {
		return "", false
	}
	rest := trimmed[len(discover.Directive):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return rest, true
}

func splitDirectiveWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// wordAt returns the identifier spanning character offset col and its start.
func wordAt(line string, col int) (string, int) {
	isIdent := func(b byte) bool {
		r := rune(b)
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	col = min(max(col, 0), len(line))
	start, end := col, col
	for start > 0 && isIdent(line[start-1]) {
		start--
	}
	for end < len(line) && isIdent(line[end]) {
		end++
	}
	return line[start:end], start
}

func documentLine(uri string, n int) (string, error) {
	path, err := PathFromURI(uri)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	if n < 0 || n >= len(lines) {
		return "", nil
	}
	return strings.TrimSuffix(lines[n], "\r"), nil
}
