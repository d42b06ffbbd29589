package ast

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParseOptions configures directory parsing behavior.
type ParseOptions struct {
	SkipTests bool     // Skip *_test.go files
	SkipFiles []string // Base names to leave out, e.g. the generator's own output
}

// File is a parsed Go source file.
type File struct {
	Path string
	AST  *ast.File
}

// Package is the set of non-test files of one package directory, ordered by
// file name so that every consumer sees declarations in a stable order.
type Package struct {
	Name  string
	Dir   string
	Fset  *token.FileSet
	Files []*File
}

// generatedMarker is the first-line prefix recognised by go tooling for
// machine written files.
var generatedMarker = []byte("// Code generated ")

// ParseFile parses a single Go source file and returns the AST and FileSet.
func ParseFile(path string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}
	return file, fset, nil
}

// ParseSource parses src as if it were stored at filename and wraps it as a
// single-file Package.
func ParseSource(filename string, src []byte) (*Package, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return &Package{
		Name:  file.Name.Name,
		Dir:   filepath.Dir(filename),
		Fset:  fset,
		Files: []*File{{Path: filename, AST: file}},
	}, nil
}

// ParseDir parses the Go files of a single directory (non-recursively).
// Files belonging to an external _test package are ignored. A directory with
// no Go files yields a Package with no Files.
func ParseDir(dir string, opts ParseOptions) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(opts.SkipFiles))
	for _, name := range opts.SkipFiles {
		skip[name] = true
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || skip[name] {
			continue
		}
		if opts.SkipTests && strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	pkg := &Package{Dir: dir, Fset: token.NewFileSet()}
	for _, name := range names {
		path := filepath.Join(dir, name)
		file, err := parser.ParseFile(pkg.Fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(file.Name.Name, "_test") {
			continue
		}
		if pkg.Name == "" {
			pkg.Name = file.Name.Name
		} else if pkg.Name != file.Name.Name {
			return nil, fmt.Errorf("%s: found packages %s and %s", dir, pkg.Name, file.Name.Name)
		}
		pkg.Files = append(pkg.Files, &File{Path: path, AST: file})
	}

	return pkg, nil
}

// IsGenerated reports whether src starts with a "// Code generated" line.
func IsGenerated(src []byte) bool {
	return bytes.HasPrefix(src, generatedMarker)
}
