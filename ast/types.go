package ast

import (
	"go/ast"
	"go/types"
	"sort"
)

// TypeToken returns the exact source spelling of a type expression, e.g.
// "uuid.UUID", "[]string" or "map[string]int".
func TypeToken(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return types.ExprString(expr)
}

// ExtractTypeName extracts the type name and package name from a type expression.
// For pointer types, slice types, array types, and channel types, it unwraps to
// find the underlying type. Map types return empty strings.
// Returns (typeName, packageName).
func ExtractTypeName(expr ast.Expr) (string, string) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, ""
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return t.Sel.Name, x.Name
		}
		return "", ""
	case *ast.StarExpr:
		return ExtractTypeName(t.X)
	case *ast.ArrayType:
		return ExtractTypeName(t.Elt)
	case *ast.ChanType:
		return ExtractTypeName(t.Value)
	default:
		return "", ""
	}
}

// Qualifiers returns the package qualifiers referenced anywhere in a type
// expression, sorted and deduplicated. map[string]time.Duration yields
// ["time"].
func Qualifiers(expr ast.Expr) []string {
	seen := make(map[string]bool)
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); ok {
			seen[x.Name] = true
		}
		return false
	})

	quals := make([]string, 0, len(seen))
	for q := range seen {
		quals = append(quals, q)
	}
	sort.Strings(quals)
	return quals
}

// IsDuplicable reports whether a value of the type can be copied by plain
// assignment without sharing state, and compared with ==. Slices, maps,
// funcs, channels, pointers and interfaces are rejected. Named types from
// other packages are accepted as written.
func IsDuplicable(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name != "any" && t.Name != "error"
	case *ast.SelectorExpr:
		return true
	case *ast.ParenExpr:
		return IsDuplicable(t.X)
	case *ast.ArrayType:
		// A nil Len is a slice.
		if t.Len == nil {
			return false
		}
		return IsDuplicable(t.Elt)
	case *ast.StructType:
		if t.Fields == nil {
			return true
		}
		for _, f := range t.Fields.List {
			if !IsDuplicable(f.Type) {
				return false
			}
		}
		return true
	default:
		// StarExpr, MapType, FuncType, ChanType, InterfaceType, IndexExpr
		return false
	}
}
