package synth

import "text/template"

var templates = template.Must(template.New("synth").Parse(`
{{define "Entity"}}
// ID returns the identity of the {{.Name}}.
func ({{.Recv}} *{{.Name}}) ID() {{.IDType}} {
	return {{.Recv}}.id
}

// Version returns the version of the {{.Name}}.
func ({{.Recv}} *{{.Name}}) Version() {{.VersionType}} {
	return {{.Recv}}.version
}

// Equal reports whether other has the same identity as {{.Recv}}.
func ({{.Recv}} *{{.Name}}) Equal(other *{{.Name}}) bool {
	if {{.Recv}} == nil || other == nil {
		return {{.Recv}} == other
	}
	return {{.Recv}}.id == other.id
}
{{range .Getters}}
// {{.Method}} returns the {{.Field}} of the {{$.Name}}.
func ({{$.Recv}} *{{$.Name}}) {{.Method}}() {{.Type}} {
	return {{$.Recv}}.{{.Field}}
}
{{end}}
var _ {{.Contracts}}.Entity[{{.IDType}}, {{.VersionType}}] = (*{{.Name}})(nil)
{{end}}

{{define "ValueObject"}}
// {{.ErrorName}} is returned by {{.Constructor}} when a candidate value
// fails {{.Name}}.Validate.
type {{.ErrorName}} struct {
	Value {{.ValueType}}
}

// Error implements the error interface.
func (e *{{.ErrorName}}) Error() string {
	return fmt.Sprintf("invalid {{.Name}}: %v", e.Value)
}

// {{.Constructor}} validates value and wraps it in a {{.Name}}.
func {{.Constructor}}(value {{.ValueType}}) ({{.Name}}, error) {
	if !({{.Name}}{}).Validate(value) {
		return {{.Name}}{}, &{{.ErrorName}}{Value: value}
	}
	return {{.Name}}{value: value}, nil
}

// Equal reports whether other wraps the same value.
func ({{.Recv}} {{.Name}}) Equal(other {{.Name}}) bool {
	return {{.Recv}}.value == other.value
}

// Clone returns a copy of the {{.Name}}.
func ({{.Recv}} {{.Name}}) Clone() {{.Name}} {
	return {{.Name}}{value: {{.Recv}}.value}
}

// String returns the wrapped value formatted with %v.
func ({{.Recv}} {{.Name}}) String() string {
	return fmt.Sprint({{.Recv}}.value)
}

var _ {{.Contracts}}.ValueObject[{{.ValueType}}] = {{.Name}}{}
{{end}}

{{define "DomainEvent"}}
// ID returns the identity of the event.
func ({{.Recv}} {{.Name}}) ID() {{.IDType}} {
	return {{.Recv}}.id
}

// AggregateID returns the identity of the aggregate the event belongs to.
func ({{.Recv}} {{.Name}}) AggregateID() {{.AggregateIDType}} {
	return {{.Recv}}.aggregateID
}

// Version returns the aggregate version the event produced.
func ({{.Recv}} {{.Name}}) Version() uint64 {
	return {{if eq .VersionType "uint64"}}{{.Recv}}.version{{else}}uint64({{.Recv}}.version){{end}}
}

// Occurred returns when the event happened, in Unix nanoseconds.
func ({{.Recv}} {{.Name}}) Occurred() int64 {
	return {{.Recv}}.occurred
}

// MessageName returns "{{.Name}}".
func ({{.Name}}) MessageName() string {
	return "{{.Name}}"
}

var _ {{.Contracts}}.DomainEvent[{{.IDType}}] = {{.Name}}{}
{{end}}

{{define "DomainEvents"}}{{range .Variants}}
func ({{.}}) {{$.Seal}}() {}
{{end}}{{if .Variants}}
var (
{{range .Variants}}	_ {{$.Name}} = *new({{.}})
{{end}})
{{end}}{{end}}

{{define "Command"}}
// MessageName returns "{{.Name}}".
func ({{.Name}}) MessageName() string {
	return "{{.Name}}"
}

// Command marks {{.Name}} as a command.
func ({{.Name}}) Command() {}

var _ {{.Contracts}}.Command = {{.Name}}{}
{{end}}

{{define "Query"}}
// MessageName returns "{{.Name}}".
func ({{.Name}}) MessageName() string {
	return "{{.Name}}"
}

// Query marks {{.Name}} as a query.
func ({{.Name}}) Query() {}

var _ {{.Contracts}}.Query = {{.Name}}{}
{{end}}
`))
