package ast

import (
	"go/ast"
	"path"
	"regexp"
	"strings"
)

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// ExtractImports maps every qualifier usable in the file to its import path.
// Explicit aliases are kept as written (including "." and "_"); implicit ones
// are guessed from the path with ImplicitName.
func ExtractImports(file *ast.File) map[string]string {
	imports := make(map[string]string)

	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		alias := ImplicitName(importPath)
		if imp.Name != nil {
			alias = imp.Name.Name
		}

		imports[alias] = importPath
	}

	return imports
}

// ImplicitName guesses the package name an import path declares, following
// the conventions the go command uses for module paths:
// "github.com/gofrs/uuid/v5" -> "uuid", "github.com/satori/go.uuid" -> "uuid",
// "gopkg.in/yaml.v3" -> "yaml".
func ImplicitName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.Index(base, ".v"); i > 0 && majorVersion.MatchString(base[i+1:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go.")
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, ".go")
	base = strings.TrimSuffix(base, "-go")
	return strings.ReplaceAll(base, "-", "")
}
