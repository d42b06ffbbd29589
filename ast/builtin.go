package ast

// fixedWidthInts contains the Go integer types with a declared bit width.
// int, uint and uintptr are platform sized, byte and rune are aliases, so
// none of them are listed.
var fixedWidthInts = map[string]bool{
	"int8":   true,
	"int16":  true,
	"int32":  true,
	"int64":  true,
	"uint8":  true,
	"uint16": true,
	"uint32": true,
	"uint64": true,
}

// floatTypes contains the Go floating point types.
var floatTypes = map[string]bool{
	"float32": true,
	"float64": true,
}

// uuidImports lists the module paths whose UUID type is accepted as an
// identity field type.
var uuidImports = map[string]bool{
	"github.com/google/uuid":    true,
	"github.com/gofrs/uuid":     true,
	"github.com/gofrs/uuid/v5":  true,
	"github.com/satori/go.uuid": true,
}

// builtinTypes contains all Go predeclared types.
var builtinTypes = map[string]bool{
	"string":     true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"float32":    true,
	"float64":    true,
	"complex64":  true,
	"complex128": true,
	"bool":       true,
	"byte":       true,
	"rune":       true,
	"error":      true,
	"any":        true,
}

// IsBuiltinType returns true if the given name is a Go predeclared type.
func IsBuiltinType(name string) bool {
	return builtinTypes[name]
}

// IsFixedWidthInt returns true if the type token is one of the sized integer
// types. Matching is on spelling only.
func IsFixedWidthInt(token string) bool {
	return fixedWidthInts[token]
}

// IsFloat returns true if the type token is float32 or float64.
func IsFloat(token string) bool {
	return floatTypes[token]
}

// IsUUIDImport returns true if importPath provides an accepted UUID type.
func IsUUIDImport(importPath string) bool {
	return uuidImports[importPath]
}

// UUIDImports returns the accepted UUID module paths.
func UUIDImports() []string {
	paths := make([]string, 0, len(uuidImports))
	for p := range uuidImports {
		paths = append(paths, p)
	}
	return paths
}
