// Package discover finds //domain:derive directives in Go packages and
// collects the package-level names generated code must not collide with.
package discover

import (
	"go/ast"
	"go/token"

	"github.com/lex00/domaingen/precond"
)

const (
	// Directive is the comment prefix that requests generation for a type.
	Directive = "//domain:derive"
	// DefaultOutputFile is the name of the file generated into each package.
	DefaultOutputFile = "domaingen_gen.go"
)

// Request is one contract requested for one type declaration.
type Request struct {
	// Contract is the requested implementation.
	Contract precond.Contract
	// TypeName is the declared name of the host type.
	TypeName string
	// Spec is the parsed declaration.
	Spec *ast.TypeSpec
	// File is the path of the declaring file.
	File string
	// Pos is the location of the type name.
	Pos token.Position
	// Variants are the union members named after a DomainEvents contract.
	Variants []string
	// Imports maps the declaring file's qualifiers to import paths.
	Imports map[string]string
}

// Warning is a directive that was understood but ignored.
type Warning struct {
	Pos     token.Position
	Message string
}

// DiscoverOptions configures the discovery process.
type DiscoverOptions struct {
	// Packages are directories to scan. A trailing "/..." scans the tree
	// below the directory.
	Packages []string
	// OutputFile is the generator's own output, left out of parsing.
	OutputFile string
	// Walk controls which directories a recursive pattern visits.
	Walk WalkOptions
}

// DiscoverResult contains the results of discovering one package.
type DiscoverResult struct {
	// Package is the package name.
	Package string
	// Dir is the package directory.
	Dir string
	// Fset holds positions for every parsed file.
	Fset *token.FileSet
	// Requests are in file name order, then source order.
	Requests []Request
	// Scope holds the identifiers and methods the package declares.
	Scope *precond.Scope
	// Warnings are ignored directives.
	Warnings []Warning
	// Errors contains non-fatal errors encountered during discovery.
	Errors []error
}

// NewDiscoverResult creates an initialized DiscoverResult.
func NewDiscoverResult() *DiscoverResult {
	return &DiscoverResult{
		Requests: make([]Request, 0),
		Scope:    precond.NewScope(),
		Warnings: make([]Warning, 0),
		Errors:   make([]error, 0),
	}
}

// Merge combines another DiscoverResult for the same package into this one.
func (r *DiscoverResult) Merge(other *DiscoverResult) {
	r.Requests = append(r.Requests, other.Requests...)
	for ident := range other.Scope.Idents {
		r.Scope.AddIdent(ident)
	}
	for typeName, methods := range other.Scope.Methods {
		for m := range methods {
			r.Scope.AddMethod(typeName, m)
		}
	}
	for name, decl := range other.Scope.Types {
		r.Scope.Types[name] = decl
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
}

// AddRequest adds a request to the result.
func (r *DiscoverResult) AddRequest(req Request) {
	r.Requests = append(r.Requests, req)
}

// AddWarning records an ignored directive.
func (r *DiscoverResult) AddWarning(pos token.Position, msg string) {
	r.Warnings = append(r.Warnings, Warning{Pos: pos, Message: msg})
}

// AddError adds an error to the result.
func (r *DiscoverResult) AddError(err error) {
	r.Errors = append(r.Errors, err)
}
