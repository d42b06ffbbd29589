// Package synth renders the Go source for validated generation requests.
package synth

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"sort"
	"strings"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/precond"
	"github.com/lex00/domaingen/shape"
)

// DefaultContractsImport is the package holding the contract interfaces the
// generated code asserts against.
const DefaultContractsImport = "github.com/lex00/domaingen/domain"

// ErrInvalidResult is returned when Synthesize is given a failed result.
var ErrInvalidResult = errors.New("synth: cannot synthesize an invalid result")

// Options controls rendering.
type Options struct {
	// ContractsImport overrides DefaultContractsImport.
	ContractsImport string
	// Generator names the tool in the "Code generated" header.
	Generator string
}

func (o Options) contractsImport() string {
	if o.ContractsImport != "" {
		return o.ContractsImport
	}
	return DefaultContractsImport
}

func (o Options) generator() string {
	if o.Generator != "" {
		return o.Generator
	}
	return "domaingen"
}

// Artifact is the generated code for one request.
type Artifact struct {
	Type     string
	Contract precond.Contract
	// Source is an unformatted fragment of top-level declarations.
	Source []byte
	// Methods are the method signatures the fragment adds, e.g.
	// "(*User).ID() uuid.UUID".
	Methods []string
	// Imports maps qualifiers used by Source to import paths.
	Imports map[string]string
}

type getterData struct {
	Field  string
	Method string
	Type   string
}

type templateData struct {
	Name            string
	Recv            string
	Contracts       string
	IDType          string
	AggregateIDType string
	VersionType     string
	ValueType       string
	ErrorName       string
	Constructor     string
	Seal            string
	Variants        []string
	Getters         []getterData
}

// Synthesize renders the artifact for a valid result.
func Synthesize(r precond.Result, opts Options) (*Artifact, error) {
	if !r.Valid() || r.Descriptor == nil {
		return nil, ErrInvalidResult
	}
	d := r.Descriptor

	art := &Artifact{
		Type:     d.Name,
		Contract: r.Contract,
		Imports:  make(map[string]string),
	}
	data := templateData{
		Name:      d.Name,
		Recv:      r.Names.Receiver,
		Contracts: dgast.ImplicitName(opts.contractsImport()),
		Seal:      r.Names.Seal,
		Variants:  d.Variants,
	}

	needs := func(f shape.Field) string {
		for _, q := range dgast.Qualifiers(f.Expr) {
			art.need(d, q)
		}
		return f.Type
	}

	if r.Contract != precond.DomainEvents {
		art.Imports[data.Contracts] = opts.contractsImport()
	}

	switch r.Contract {
	case precond.Entity:
		id, _ := d.Field("id")
		version, _ := d.Field("version")
		data.IDType = needs(id)
		data.VersionType = needs(version)
		for _, g := range r.Names.Getters {
			f, _ := d.Field(g.Field)
			data.Getters = append(data.Getters, getterData{Field: g.Field, Method: g.Method, Type: needs(f)})
		}
		art.Methods = []string{
			fmt.Sprintf("(*%s).ID() %s", d.Name, data.IDType),
			fmt.Sprintf("(*%s).Version() %s", d.Name, data.VersionType),
			fmt.Sprintf("(*%s).Equal(*%s) bool", d.Name, d.Name),
		}
		for _, g := range data.Getters {
			art.Methods = append(art.Methods, fmt.Sprintf("(*%s).%s() %s", d.Name, g.Method, g.Type))
		}
	case precond.ValueObject:
		data.ValueType = needs(d.Fields[0])
		data.ErrorName = r.Names.ValidationError
		data.Constructor = r.Names.Constructor
		art.Imports["fmt"] = "fmt"
		art.Methods = []string{
			fmt.Sprintf("%s(%s) (%s, error)", data.Constructor, data.ValueType, d.Name),
			fmt.Sprintf("(*%s).Error() string", data.ErrorName),
			fmt.Sprintf("(%s).Equal(%s) bool", d.Name, d.Name),
			fmt.Sprintf("(%s).Clone() %s", d.Name, d.Name),
			fmt.Sprintf("(%s).String() string", d.Name),
		}
	case precond.DomainEvent:
		id, _ := d.Field("id")
		agg, _ := d.Field("aggregateID")
		version, _ := d.Field("version")
		data.IDType = needs(id)
		data.AggregateIDType = needs(agg)
		data.VersionType = version.Type
		art.Methods = []string{
			fmt.Sprintf("(%s).ID() %s", d.Name, data.IDType),
			fmt.Sprintf("(%s).AggregateID() %s", d.Name, data.AggregateIDType),
			fmt.Sprintf("(%s).Version() uint64", d.Name),
			fmt.Sprintf("(%s).Occurred() int64", d.Name),
			fmt.Sprintf("(%s).MessageName() string", d.Name),
		}
	case precond.DomainEvents:
		for _, v := range d.Variants {
			art.Methods = append(art.Methods, fmt.Sprintf("(%s).%s()", v, data.Seal))
		}
	case precond.Command, precond.Query:
		art.Methods = []string{
			fmt.Sprintf("(%s).MessageName() string", d.Name),
			fmt.Sprintf("(%s).%s()", d.Name, r.Contract),
		}
	default:
		return nil, fmt.Errorf("synth: no template for contract %s", r.Contract)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, r.Contract.String(), data); err != nil {
		return nil, fmt.Errorf("synth: render %s for %s: %w", r.Contract, d.Name, err)
	}
	art.Source = bytes.TrimSpace(buf.Bytes())
	return art, nil
}

// need records the import behind a qualifier used in the descriptor's file.
func (a *Artifact) need(d *shape.TypeDescriptor, qualifier string) {
	if p, ok := d.ImportPath(qualifier); ok {
		a.Imports[qualifier] = p
	}
}

// RenderFile assembles artifacts into one gofmt'ed Go file for pkg.
// Artifacts are written in the order given.
func RenderFile(pkg string, artifacts []*Artifact, opts Options) ([]byte, error) {
	imports := make(map[string]string)
	for _, a := range artifacts {
		for q, p := range a.Imports {
			if prev, ok := imports[q]; ok && prev != p {
				return nil, fmt.Errorf("synth: qualifier %q refers to both %q and %q", q, prev, p)
			}
			imports[q] = p
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by %s. DO NOT EDIT.\n\n", opts.generator())
	fmt.Fprintf(&buf, "package %s\n", pkg)
	writeImports(&buf, imports)

	for _, a := range artifacts {
		if len(a.Source) == 0 {
			continue
		}
		buf.WriteString("\n")
		buf.Write(a.Source)
		buf.WriteString("\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("synth: format generated source: %w", err)
	}
	return src, nil
}

// writeImports writes an import block with the standard library first.
func writeImports(buf *bytes.Buffer, imports map[string]string) {
	if len(imports) == 0 {
		return
	}

	var std, other []string
	for q, p := range imports {
		spec := fmt.Sprintf("%q", p)
		if dgast.ImplicitName(p) != q {
			spec = q + " " + spec
		}
		if strings.Contains(strings.Split(p, "/")[0], ".") {
			other = append(other, spec)
		} else {
			std = append(std, spec)
		}
	}
	sort.Slice(std, func(i, j int) bool { return importPath(std[i]) < importPath(std[j]) })
	sort.Slice(other, func(i, j int) bool { return importPath(other[i]) < importPath(other[j]) })

	buf.WriteString("\nimport (\n")
	for _, s := range std {
		buf.WriteString("\t" + s + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		buf.WriteString("\n")
	}
	for _, s := range other {
		buf.WriteString("\t" + s + "\n")
	}
	buf.WriteString(")\n")
}

func importPath(spec string) string {
	return spec[strings.Index(spec, `"`):]
}
