package precond

import (
	"go/ast"
	"strings"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/naming"
	"github.com/lex00/domaingen/shape"
)

// Expected type descriptions used in failures.
const (
	ExpectUUID       = "uuid.UUID"
	ExpectInteger    = "a fixed-width integer type"
	ExpectInt64      = "int64"
	ExpectDuplicable = "a duplicable type"
)

// Scope holds the identifiers already declared in the package, used to
// refuse generating a name that would collide with user code.
type Scope struct {
	// Idents are package-level types, funcs, vars and consts.
	Idents map[string]bool
	// Methods maps a receiver type name to its declared method names.
	Methods map[string]map[string]bool
	// Types maps each package-level type name to its declaration.
	Types map[string]TypeDecl
}

// TypeDecl is the part of a package-level type declaration the validator
// needs to resolve local type names.
type TypeDecl struct {
	// Expr is the declared type, e.g. []string for `type Tags []string`.
	Expr    ast.Expr
	Alias   bool
	Generic bool
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{
		Idents:  make(map[string]bool),
		Methods: make(map[string]map[string]bool),
		Types:   make(map[string]TypeDecl),
	}
}

// Clone returns an independent copy of s.
func (s *Scope) Clone() *Scope {
	c := NewScope()
	if s == nil {
		return c
	}
	for ident := range s.Idents {
		c.AddIdent(ident)
	}
	for typeName, methods := range s.Methods {
		for m := range methods {
			c.AddMethod(typeName, m)
		}
	}
	for name, decl := range s.Types {
		c.Types[name] = decl
	}
	return c
}

// AddType records a package-level type declaration and its name.
func (s *Scope) AddType(spec *ast.TypeSpec) {
	name := spec.Name.Name
	if name == "_" {
		return
	}
	s.AddIdent(name)
	s.Types[name] = TypeDecl{
		Expr:    spec.Type,
		Alias:   spec.Assign.IsValid(),
		Generic: spec.TypeParams != nil && len(spec.TypeParams.List) > 0,
	}
}

// Underlying follows local type names until it reaches a type literal or a
// name the package does not declare.
func (s *Scope) Underlying(expr ast.Expr) ast.Expr {
	if s == nil {
		return expr
	}
	for range len(s.Types) + 1 {
		if paren, ok := expr.(*ast.ParenExpr); ok {
			expr = paren.X
			continue
		}
		id, ok := expr.(*ast.Ident)
		if !ok {
			break
		}
		decl, ok := s.Types[id.Name]
		if !ok || decl.Generic {
			break
		}
		expr = decl.Expr
	}
	return expr
}

// Duplicable is dgast.IsDuplicable with local type names resolved through
// their declarations.
func (s *Scope) Duplicable(expr ast.Expr) bool {
	return s.duplicable(expr, make(map[string]bool))
}

func (s *Scope) duplicable(expr ast.Expr, visiting map[string]bool) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		if s == nil {
			return dgast.IsDuplicable(t)
		}
		decl, ok := s.Types[t.Name]
		if !ok || decl.Generic {
			return dgast.IsDuplicable(t)
		}
		if visiting[t.Name] {
			return true
		}
		visiting[t.Name] = true
		return s.duplicable(decl.Expr, visiting)
	case *ast.ParenExpr:
		return s.duplicable(t.X, visiting)
	case *ast.ArrayType:
		if t.Len == nil {
			return false
		}
		return s.duplicable(t.Elt, visiting)
	case *ast.StructType:
		if t.Fields == nil {
			return true
		}
		for _, f := range t.Fields.List {
			if !s.duplicable(f.Type, visiting) {
				return false
			}
		}
		return true
	default:
		return dgast.IsDuplicable(expr)
	}
}

// CanDeclareMethods reports whether name is a local defined type that can
// receive methods: not an alias, not generic, not an interface or pointer.
func (s *Scope) CanDeclareMethods(name string) bool {
	if s == nil {
		return false
	}
	decl, ok := s.Types[name]
	if !ok || decl.Alias || decl.Generic {
		return false
	}
	switch s.Underlying(decl.Expr).(type) {
	case *ast.InterfaceType, *ast.StarExpr:
		return false
	}
	return true
}

// AddIdent records a package-level identifier.
func (s *Scope) AddIdent(name string) {
	s.Idents[name] = true
}

// AddMethod records a method declared on typeName.
func (s *Scope) AddMethod(typeName, method string) {
	if s.Methods[typeName] == nil {
		s.Methods[typeName] = make(map[string]bool)
	}
	s.Methods[typeName][method] = true
}

// Claim records the names of a valid result so that a later request on the
// same package can not generate them a second time.
func (s *Scope) Claim(r Result) {
	if s == nil || !r.Valid() {
		return
	}
	for _, ident := range r.Names.Idents {
		s.AddIdent(ident)
	}
	for _, m := range r.Names.Methods {
		s.AddMethod(r.Descriptor.Name, m)
	}
	if r.Names.Seal != "" {
		for _, v := range r.Descriptor.Variants {
			s.AddMethod(v, r.Names.Seal)
		}
	}
}

// HasIdent reports whether name is declared at package level.
func (s *Scope) HasIdent(name string) bool {
	return s != nil && s.Idents[name]
}

// HasMethod reports whether typeName already declares method.
func (s *Scope) HasMethod(typeName, method string) bool {
	return s != nil && s.Methods[typeName][method]
}

// Result is the outcome of validating one request. Failure is nil when the
// descriptor met every precondition.
type Result struct {
	Contract   Contract
	Descriptor *shape.TypeDescriptor
	Names      naming.Names
	Failure    *Failure
}

// Valid reports whether generation may proceed.
func (r Result) Valid() bool {
	return r.Failure == nil
}

// rule checks one precondition and returns nil when it holds.
type rule func(c Contract, d *shape.TypeDescriptor) *Failure

var rules = map[Contract][]rule{
	Entity: {
		requireRecord,
		requireUUIDField("id"),
		requireIntField("version", false),
	},
	ValueObject: {
		requireRecord,
		requireSingleValueField,
	},
	DomainEvent: {
		requireRecord,
		requireUUIDField("id"),
		requireUUIDField("aggregateID"),
		requireIntField("version", true),
		requireInt64Field("occurred"),
	},
	DomainEvents: {
		requireUnion,
	},
	Command: {
		requireRecord,
	},
	Query: {
		requireRecord,
	},
}

// Validate runs the rules for c against d in order and stops at the first
// failure. When scope is non-nil, union variants and local value types are
// resolved through it and the derived names are checked against the
// identifiers the package already declares.
func Validate(c Contract, d *shape.TypeDescriptor, scope *Scope) Result {
	res := Result{Contract: c, Descriptor: d}

	checks, ok := rules[c]
	if !ok {
		res.Failure = &Failure{Contract: c, Type: d.Name}
		return res
	}

	for _, check := range checks {
		if f := check(c, d); f != nil {
			f.Contract = c
			f.Type = d.Name
			res.Failure = f
			return res
		}
	}

	if f := checkLocalTypes(c, d, scope); f != nil {
		f.Contract = c
		f.Type = d.Name
		res.Failure = f
		return res
	}

	res.Names = DeriveNames(c, d)
	if f := checkCollisions(d, res.Names, scope); f != nil {
		f.Contract = c
		f.Type = d.Name
		res.Failure = f
		return res
	}
	return res
}

func requireRecord(_ Contract, d *shape.TypeDescriptor) *Failure {
	if d.Kind != shape.KindRecord {
		return &Failure{Reason: NotAStruct}
	}
	return nil
}

func requireUnion(_ Contract, d *shape.TypeDescriptor) *Failure {
	if d.Kind != shape.KindTaggedUnion {
		return &Failure{Reason: NotAnEnum}
	}
	return nil
}

func requireUUIDField(name string) rule {
	return func(_ Contract, d *shape.TypeDescriptor) *Failure {
		f, ok := d.Field(name)
		if !ok {
			return &Failure{Reason: MissingField, Field: name, Expected: ExpectUUID}
		}
		if !isUUID(d, f) {
			return &Failure{Reason: WrongFieldType, Field: name, Expected: ExpectUUID, Actual: f.Type}
		}
		return nil
	}
}

// requireIntField checks a version-style field. When rejectFloat is set a
// float declaration gets its own failure kind.
func requireIntField(name string, rejectFloat bool) rule {
	return func(_ Contract, d *shape.TypeDescriptor) *Failure {
		f, ok := d.Field(name)
		if !ok {
			return &Failure{Reason: MissingField, Field: name, Expected: ExpectInteger}
		}
		if rejectFloat && dgast.IsFloat(f.Type) {
			return &Failure{Reason: FloatingPointVersionNotAllowed, Field: name, Expected: ExpectInteger, Actual: f.Type}
		}
		if !dgast.IsFixedWidthInt(f.Type) {
			return &Failure{Reason: WrongFieldType, Field: name, Expected: ExpectInteger, Actual: f.Type}
		}
		return nil
	}
}

func requireInt64Field(name string) rule {
	return func(_ Contract, d *shape.TypeDescriptor) *Failure {
		f, ok := d.Field(name)
		if !ok {
			return &Failure{Reason: MissingField, Field: name, Expected: ExpectInt64}
		}
		if f.Type != "int64" {
			return &Failure{Reason: WrongFieldType, Field: name, Expected: ExpectInt64, Actual: f.Type}
		}
		return nil
	}
}

func requireSingleValueField(_ Contract, d *shape.TypeDescriptor) *Failure {
	if len(d.Fields) != 1 {
		return &Failure{Reason: WrongFieldCount, ExpectedCount: 1, ActualCount: len(d.Fields)}
	}
	f := d.Fields[0]
	if f.Name != "value" || f.Embedded {
		return &Failure{Reason: MissingField, Field: "value", Expected: ExpectDuplicable}
	}
	if !dgast.IsDuplicable(f.Expr) {
		return &Failure{Reason: WrongFieldType, Field: "value", Expected: ExpectDuplicable, Actual: f.Type}
	}
	return nil
}

// isUUID accepts exactly the token uuid.UUID whose qualifier is imported from
// a known UUID module.
func isUUID(d *shape.TypeDescriptor, f shape.Field) bool {
	qual, sel, ok := strings.Cut(f.Type, ".")
	if !ok || qual != "uuid" || sel != "UUID" {
		return false
	}
	path, ok := d.ImportPath(qual)
	return ok && dgast.IsUUIDImport(path)
}

// checkLocalTypes needs the package scope: variants must be local types that
// can carry the sealing method, and a value object's field must not name a
// local type whose values share state.
func checkLocalTypes(c Contract, d *shape.TypeDescriptor, scope *Scope) *Failure {
	if scope == nil {
		return nil
	}
	switch c {
	case DomainEvents:
		for _, v := range d.Variants {
			if !scope.CanDeclareMethods(v) {
				return &Failure{Reason: UnknownVariant, Field: v}
			}
		}
	case ValueObject:
		f := d.Fields[0]
		if !scope.Duplicable(f.Expr) {
			return &Failure{Reason: WrongFieldType, Field: "value", Expected: ExpectDuplicable, Actual: f.Type}
		}
	}
	return nil
}

func checkCollisions(d *shape.TypeDescriptor, names naming.Names, scope *Scope) *Failure {
	seenIdents := make(map[string]bool, len(names.Idents))
	for _, ident := range names.Idents {
		if seenIdents[ident] || scope.HasIdent(ident) {
			return &Failure{Reason: NameCollision, Field: ident}
		}
		seenIdents[ident] = true
	}
	seenMethods := make(map[string]bool, len(names.Methods))
	for _, m := range names.Methods {
		if _, ok := d.Field(m); ok || seenMethods[m] || scope.HasMethod(d.Name, m) {
			return &Failure{Reason: NameCollision, Field: d.Name + "." + m}
		}
		seenMethods[m] = true
	}
	if names.Seal != "" {
		for _, v := range d.Variants {
			if scope.HasMethod(v, names.Seal) {
				return &Failure{Reason: NameCollision, Field: v + "." + names.Seal}
			}
		}
	}
	return nil
}
