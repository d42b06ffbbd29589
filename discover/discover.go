package discover

import (
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/precond"
)

// Discover finds requests in the specified package directories and returns
// one result per package, in ResolveDirs order.
func Discover(opts DiscoverOptions) ([]*DiscoverResult, error) {
	dirs, err := ResolveDirs(opts.Packages, opts.Walk)
	if err != nil {
		return nil, err
	}

	results := make([]*DiscoverResult, 0, len(dirs))
	for _, dir := range dirs {
		result, err := DiscoverDir(dir, opts.OutputFile)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// ResolveDirs expands directory patterns into package directories.
// Directories keep the order they were named in; a recursive "dir/..."
// pattern contributes its packages sorted by path. Duplicates are dropped.
func ResolveDirs(patterns []string, walk WalkOptions) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		root, recursive := splitPattern(pattern)

		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("discover: %s is not a directory", root)
		}

		found := []string{root}
		if recursive {
			found, err = PackageDirs(root, walk)
			if err != nil {
				return nil, err
			}
		}
		for _, dir := range found {
			dir = filepath.Clean(dir)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs, nil
}

// splitPattern separates a "dir/..." pattern into its root and whether the
// tree below it should be walked.
func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	root, recursive := strings.CutSuffix(pattern, "/...")
	if root == "" {
		root = "/"
	}
	return root, recursive
}

// DiscoverDir discovers requests in the non-test Go files of one package
// directory. outputFile, when set, is skipped.
func DiscoverDir(dir string, outputFile string) (*DiscoverResult, error) {
	opts := dgast.ParseOptions{SkipTests: true}
	if outputFile != "" {
		opts.SkipFiles = []string{outputFile}
	}
	pkg, err := dgast.ParseDir(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	result := NewDiscoverResult()
	result.Package = pkg.Name
	result.Dir = dir
	result.Fset = pkg.Fset
	for _, f := range pkg.Files {
		result.Merge(DiscoverAST(pkg.Fset, f.AST, f.Path))
	}
	return result, nil
}

// DiscoverFile finds requests in a single Go file.
func DiscoverFile(filePath string) (*DiscoverResult, error) {
	file, fset, err := dgast.ParseFile(filePath)
	if err != nil {
		return nil, err
	}
	result := DiscoverAST(fset, file, filePath)
	result.Dir = filepath.Dir(filePath)
	return result, nil
}

// DiscoverAST finds requests in a parsed AST and records every package-level
// identifier and method the file declares.
func DiscoverAST(fset *token.FileSet, file *ast.File, filePath string) *DiscoverResult {
	result := NewDiscoverResult()
	result.Package = file.Name.Name
	result.Fset = fset

	imports := dgast.ExtractImports(file)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				addIdent(result.Scope, d.Name.Name)
				continue
			}
			if recv := receiverTypeName(d.Recv.List[0].Type); recv != "" {
				result.Scope.AddMethod(recv, d.Name.Name)
			}

		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.ValueSpec:
					for _, name := range s.Names {
						addIdent(result.Scope, name.Name)
					}
				case *ast.TypeSpec:
					result.Scope.AddType(s)

					doc := s.Doc
					if doc == nil && !d.Lparen.IsValid() {
						doc = d.Doc
					}
					for _, req := range parseDirectives(fset, doc, s, result) {
						req.File = filePath
						req.Imports = imports
						result.AddRequest(req)
					}
				}
			}
		}
	}

	return result
}

func addIdent(scope *precond.Scope, name string) {
	if name != "_" {
		scope.AddIdent(name)
	}
}

// receiverTypeName returns the base type name of a method receiver:
// T, *T, T[K] and *T[K] all yield T.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}

// parseDirectives reads the //domain:derive lines of a type's doc comment.
// A directive lists contracts separated by commas; words after a contract
// name are its union variants:
//
//	//domain:derive DomainEvent, Command
//	//domain:derive DomainEvents FirstNameUpdated EmailUpdated
func parseDirectives(fset *token.FileSet, doc *ast.CommentGroup, spec *ast.TypeSpec, result *DiscoverResult) []Request {
	if doc == nil {
		return nil
	}

	typeName := spec.Name.Name
	var reqs []Request
	requested := make(map[precond.Contract]bool)

	for _, c := range doc.List {
		args, ok := strings.CutPrefix(c.Text, Directive)
		if !ok || (args != "" && args[0] != ' ' && args[0] != '\t') {
			continue
		}
		pos := fset.Position(c.Slash)

		if strings.TrimSpace(args) == "" {
			result.AddWarning(pos, fmt.Sprintf("empty %s directive on %s", Directive, typeName))
			continue
		}

		for _, clause := range strings.Split(args, ",") {
			words := strings.Fields(clause)
			if len(words) == 0 {
				result.AddWarning(pos, fmt.Sprintf("empty contract in %s directive on %s", Directive, typeName))
				continue
			}

			contract, ok := precond.ParseContract(words[0])
			if !ok {
				result.AddWarning(pos, fmt.Sprintf("unknown contract %q on %s", words[0], typeName))
				continue
			}
			if requested[contract] {
				result.AddWarning(pos, fmt.Sprintf("duplicate contract %s on %s", contract, typeName))
				continue
			}

			variants, ok := parseVariants(pos, contract, typeName, words[1:], result)
			if !ok {
				continue
			}

			requested[contract] = true
			reqs = append(reqs, Request{
				Contract: contract,
				TypeName: typeName,
				Spec:     spec,
				Pos:      fset.Position(spec.Name.Pos()),
				Variants: variants,
			})
		}
	}
	return reqs
}

func parseVariants(pos token.Position, c precond.Contract, typeName string, words []string, result *DiscoverResult) ([]string, bool) {
	if c != precond.DomainEvents {
		if len(words) > 0 {
			result.AddWarning(pos, fmt.Sprintf("contract %s on %s takes no variants", c, typeName))
			return nil, false
		}
		return nil, true
	}

	variants := make([]string, 0, len(words))
	seen := make(map[string]bool)
	for _, v := range words {
		if !token.IsIdentifier(v) {
			result.AddWarning(pos, fmt.Sprintf("invalid variant %q for %s", v, typeName))
			return nil, false
		}
		if seen[v] {
			result.AddWarning(pos, fmt.Sprintf("duplicate variant %s for %s", v, typeName))
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants, true
}
