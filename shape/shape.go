// Package shape turns Go type declarations into normalized descriptors that
// the precondition rules and the code synthesizer work from.
package shape

import (
	"fmt"
	"go/ast"
	"go/token"

	dgast "github.com/lex00/domaingen/ast"
)

// Kind classifies the declared shape of a type.
type Kind int

const (
	// KindOther is any declaration that is neither a struct nor an interface:
	// named basic types, func types, maps, aliases, generic types.
	KindOther Kind = iota
	// KindRecord is a struct declaration.
	KindRecord
	// KindTaggedUnion is an interface declaration used as a sum type.
	KindTaggedUnion
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindTaggedUnion:
		return "tagged union"
	default:
		return "other"
	}
}

// Field is one named field of a record.
type Field struct {
	// Name is the declared field name. Embedded fields use the type name.
	Name string
	// Type is the exact source spelling of the field type.
	Type string
	// Expr is the parsed type expression behind Type.
	Expr ast.Expr
	// Embedded is true for anonymous fields.
	Embedded bool
}

// TypeDescriptor is the normalized view of a type declaration.
type TypeDescriptor struct {
	Kind Kind
	Name string
	// Fields is populated for KindRecord only, in declaration order.
	Fields []Field
	// Variants is populated for KindTaggedUnion only, in the order given.
	Variants []string
	// Imports maps the declaring file's qualifiers to import paths.
	Imports map[string]string
	// Pos is the location of the type name.
	Pos token.Position
}

// Field returns the field with the given name.
func (d *TypeDescriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ImportPath resolves a qualifier used in the declaring file.
func (d *TypeDescriptor) ImportPath(qualifier string) (string, bool) {
	p, ok := d.Imports[qualifier]
	return p, ok
}

// Extract builds a descriptor for spec. imports are the declaring file's
// imports and variants the union members named by the caller; variants are
// ignored for anything but an interface.
func Extract(spec *ast.TypeSpec, fset *token.FileSet, imports map[string]string, variants []string) (*TypeDescriptor, error) {
	if spec == nil || spec.Name == nil {
		return nil, fmt.Errorf("shape: nil type spec")
	}

	d := &TypeDescriptor{
		Kind:    KindOther,
		Name:    spec.Name.Name,
		Imports: imports,
	}
	if fset != nil {
		d.Pos = fset.Position(spec.Name.Pos())
	}

	// Aliases and generic declarations have no fixed shape of their own.
	if spec.Assign.IsValid() || spec.TypeParams != nil {
		return d, nil
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		d.Kind = KindRecord
		d.Fields = extractFields(t)
	case *ast.InterfaceType:
		d.Kind = KindTaggedUnion
		d.Variants = append([]string{}, variants...)
	}

	return d, nil
}

func extractFields(st *ast.StructType) []Field {
	fields := make([]Field, 0)
	if st.Fields == nil {
		return fields
	}
	for _, f := range st.Fields.List {
		tok := dgast.TypeToken(f.Type)
		if len(f.Names) == 0 {
			name, _ := dgast.ExtractTypeName(f.Type)
			fields = append(fields, Field{Name: name, Type: tok, Expr: f.Type, Embedded: true})
			continue
		}
		for _, n := range f.Names {
			fields = append(fields, Field{Name: n.Name, Type: tok, Expr: f.Type})
		}
	}
	return fields
}
