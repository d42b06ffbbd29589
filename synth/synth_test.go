package synth

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dgast "github.com/lex00/domaingen/ast"
	"github.com/lex00/domaingen/precond"
	"github.com/lex00/domaingen/shape"
)

// stubs stand in for the packages generated code imports so that the output
// can be type-checked without a module cache.
var stubs = map[string]string{
	"fmt": `package fmt
func Sprintf(format string, a ...any) string { return format }
func Sprint(a ...any) string { return "" }`,
	"time":                   "package time\ntype Time struct{ wall uint64 }",
	"github.com/google/uuid": "package uuid\ntype UUID [16]byte",
	"github.com/gofrs/uuid":  "package uuid\ntype UUID [16]byte",
}

type stubImporter struct {
	t     *testing.T
	fset  *token.FileSet
	cache map[string]*types.Package
}

func (s *stubImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := s.cache[path]; ok {
		return pkg, nil
	}
	src, ok := stubs[path]
	if path == DefaultContractsImport {
		b, err := os.ReadFile("../domain/contracts.go")
		require.NoError(s.t, err)
		src, ok = string(b), true
	}
	require.True(s.t, ok, "no stub for %s", path)

	f, err := parser.ParseFile(s.fset, path+".go", src, 0)
	require.NoError(s.t, err)
	conf := types.Config{Importer: s}
	pkg, err := conf.Check(path, s.fset, []*ast.File{f}, nil)
	require.NoError(s.t, err)
	s.cache[path] = pkg
	return pkg, nil
}

// typeCheck compiles the user source together with the generated file.
func typeCheck(t *testing.T, userSrc string, generated []byte) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	user, err := parser.ParseFile(fset, "models.go", userSrc, 0)
	require.NoError(t, err)
	gen, err := parser.ParseFile(fset, "domaingen_gen.go", generated, 0)
	require.NoError(t, err, "generated source does not parse:\n%s", generated)

	conf := types.Config{Importer: &stubImporter{t: t, fset: fset, cache: map[string]*types.Package{}}}
	pkg, err := conf.Check("example.com/models", fset, []*ast.File{user, gen}, nil)
	require.NoError(t, err, "generated source does not type-check:\n%s", generated)
	return pkg
}

type request struct {
	typeName string
	contract precond.Contract
	variants []string
}

// synthesizeAll validates and synthesizes each request against src.
func synthesizeAll(t *testing.T, src string, reqs ...request) []*Artifact {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "models.go", src, parser.ParseComments)
	require.NoError(t, err)
	imports := dgast.ExtractImports(file)

	specs := map[string]*ast.TypeSpec{}
	ast.Inspect(file, func(n ast.Node) bool {
		if ts, ok := n.(*ast.TypeSpec); ok {
			specs[ts.Name.Name] = ts
		}
		return true
	})

	scope := precond.NewScope()
	for _, spec := range specs {
		scope.AddType(spec)
	}
	var arts []*Artifact
	for _, r := range reqs {
		d, err := shape.Extract(specs[r.typeName], fset, imports, r.variants)
		require.NoError(t, err)
		res := precond.Validate(r.contract, d, scope)
		require.True(t, res.Valid(), "unexpected failure: %v", res.Failure)
		scope.Claim(res)

		art, err := Synthesize(res, Options{})
		require.NoError(t, err)
		arts = append(arts, art)
	}
	return arts
}

func methodNames(t *testing.T, pkg *types.Package, typeName string, pointer bool) []string {
	t.Helper()
	obj := pkg.Scope().Lookup(typeName)
	require.NotNil(t, obj, "type %s not found", typeName)
	var typ types.Type = obj.Type()
	if pointer {
		typ = types.NewPointer(typ)
	}
	ms := types.NewMethodSet(typ)
	var names []string
	for i := 0; i < ms.Len(); i++ {
		names = append(names, ms.At(i).Obj().Name())
	}
	return names
}

const entitySrc = `package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id        uuid.UUID
	version   uint64
	name      string
	Email     string
	createdAt time.Time
}
`

func TestSynthesizeEntity(t *testing.T) {
	arts := synthesizeAll(t, entitySrc, request{"User", precond.Entity, nil})
	require.Len(t, arts, 1)

	art := arts[0]
	assert.Equal(t, "User", art.Type)
	assert.Equal(t, precond.Entity, art.Contract)
	assert.Equal(t, []string{
		"(*User).ID() uuid.UUID",
		"(*User).Version() uint64",
		"(*User).Equal(*User) bool",
		"(*User).Name() string",
		"(*User).CreatedAt() time.Time",
	}, art.Methods)
	assert.Equal(t, map[string]string{
		"uuid":   "github.com/google/uuid",
		"time":   "time",
		"domain": DefaultContractsImport,
	}, art.Imports)

	out, err := RenderFile("models", arts, Options{})
	require.NoError(t, err)

	pkg := typeCheck(t, entitySrc, out)
	assert.ElementsMatch(t, []string{"ID", "Version", "Equal", "Name", "CreatedAt"}, methodNames(t, pkg, "User", true))

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "// Code generated by domaingen. DO NOT EDIT.\n\npackage models\n"))
	assert.Contains(t, s, "return u.id == other.id")
	assert.Contains(t, s, "var _ domain.Entity[uuid.UUID, uint64] = (*User)(nil)")
}

const valueObjectSrc = `package models

import "strings"

type Email struct {
	value string
}

func (Email) Validate(value string) bool { return strings.Contains(value, "@") }

func (e Email) Value() string { return e.value }
`

func TestSynthesizeValueObject(t *testing.T) {
	arts := synthesizeAll(t, valueObjectSrc, request{"Email", precond.ValueObject, nil})
	out, err := RenderFile("models", arts, Options{})
	require.NoError(t, err)

	// strings is only used by the user file; stub it for the check.
	stubs["strings"] = "package strings\nfunc Contains(s, substr string) bool { return false }"
	defer delete(stubs, "strings")

	pkg := typeCheck(t, valueObjectSrc, out)
	assert.NotNil(t, pkg.Scope().Lookup("EmailValidationError"))
	ctor := pkg.Scope().Lookup("NewEmail")
	require.NotNil(t, ctor)
	assert.Equal(t, "func(value string) (example.com/models.Email, error)", ctor.Type().String())
	assert.Subset(t, methodNames(t, pkg, "Email", false), []string{"Equal", "Clone", "String", "Validate", "Value"})

	s := string(out)
	assert.Contains(t, s, "if !(Email{}).Validate(value) {")
	assert.Contains(t, s, "return Email{}, &EmailValidationError{Value: value}")
	assert.Contains(t, s, "return e.value == other.value")
	assert.Contains(t, s, "\"fmt\"")
}

func TestSynthesizeValueObjectQualifiedValue(t *testing.T) {
	const src = `package models

import "time"

type Deadline struct {
	value time.Time
}

func (Deadline) Validate(value time.Time) bool { return true }

func (d Deadline) Value() time.Time { return d.value }
`
	arts := synthesizeAll(t, src, request{"Deadline", precond.ValueObject, nil})
	assert.Equal(t, "time", arts[0].Imports["time"])

	out, err := RenderFile("models", arts, Options{})
	require.NoError(t, err)
	typeCheck(t, src, out)
}

const eventsSrc = `package models

import (
	"github.com/google/uuid"

	"github.com/lex00/domaingen/domain"
)

type FirstNameUpdated struct {
	id          uuid.UUID
	aggregateID uuid.UUID
	firstName   string
	version     uint32
	occurred    int64
}

type EmailUpdated struct {
	id, aggregateID uuid.UUID
	version         uint64
	occurred        int64
}

type UserEvents interface {
	domain.DomainEvent[uuid.UUID]
	isUserEvents()
}
`

func TestSynthesizeDomainEvents(t *testing.T) {
	arts := synthesizeAll(t, eventsSrc,
		request{"FirstNameUpdated", precond.DomainEvent, nil},
		request{"EmailUpdated", precond.DomainEvent, nil},
		request{"UserEvents", precond.DomainEvents, []string{"FirstNameUpdated", "EmailUpdated"}},
	)
	require.Len(t, arts, 3)
	assert.Equal(t, []string{"(FirstNameUpdated).isUserEvents()", "(EmailUpdated).isUserEvents()"}, arts[2].Methods)
	assert.Empty(t, arts[2].Imports)

	out, err := RenderFile("models", arts, Options{})
	require.NoError(t, err)

	pkg := typeCheck(t, eventsSrc, out)
	for _, name := range []string{"FirstNameUpdated", "EmailUpdated"} {
		assert.ElementsMatch(t,
			[]string{"ID", "AggregateID", "Version", "Occurred", "MessageName", "isUserEvents"},
			methodNames(t, pkg, name, false), name)
	}

	s := string(out)
	assert.Contains(t, s, "return uint64(f.version)")
	assert.Contains(t, s, "return e.version\n")
	assert.Contains(t, s, "_ UserEvents = *new(FirstNameUpdated)")
	assert.Contains(t, s, "_ UserEvents = *new(EmailUpdated)")
}

func TestSynthesizeEmptyUnion(t *testing.T) {
	const src = "package models\n\ntype Nothing interface{}\n"
	arts := synthesizeAll(t, src, request{"Nothing", precond.DomainEvents, nil})
	assert.Empty(t, arts[0].Source)
	assert.Empty(t, arts[0].Methods)

	out, err := RenderFile("models", arts, Options{})
	require.NoError(t, err)
	typeCheck(t, src, out)
}

func TestSynthesizeMessages(t *testing.T) {
	const src = `package models

type CreateUser struct {
	Name string
}

type GetUser struct {
	ID string
}
`
	arts := synthesizeAll(t, src,
		request{"CreateUser", precond.Command, nil},
		request{"GetUser", precond.Query, nil},
	)
	out, err := RenderFile("models", arts, Options{})
	require.NoError(t, err)

	pkg := typeCheck(t, src, out)
	assert.ElementsMatch(t, []string{"MessageName", "Command"}, methodNames(t, pkg, "CreateUser", false))
	assert.ElementsMatch(t, []string{"MessageName", "Query"}, methodNames(t, pkg, "GetUser", false))
	assert.Contains(t, string(out), `return "CreateUser"`)
}

func TestSynthesizeInvalidResult(t *testing.T) {
	_, err := Synthesize(precond.Result{Failure: &precond.Failure{Reason: precond.NotAStruct}}, Options{})
	assert.ErrorIs(t, err, ErrInvalidResult)

	_, err = Synthesize(precond.Result{}, Options{})
	assert.ErrorIs(t, err, ErrInvalidResult)
}

func TestRenderFileIsDeterministic(t *testing.T) {
	first, err := RenderFile("models", synthesizeAll(t, entitySrc, request{"User", precond.Entity, nil}), Options{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := RenderFile("models", synthesizeAll(t, entitySrc, request{"User", precond.Entity, nil}), Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderFileImports(t *testing.T) {
	t.Run("groups standard library first", func(t *testing.T) {
		out, err := RenderFile("models", []*Artifact{
			{Imports: map[string]string{"uuid": "github.com/google/uuid", "fmt": "fmt", "time": "time"}},
		}, Options{})
		require.NoError(t, err)
		assert.Contains(t, string(out), "import (\n\t\"fmt\"\n\t\"time\"\n\n\t\"github.com/google/uuid\"\n)")
	})

	t.Run("keeps explicit aliases", func(t *testing.T) {
		out, err := RenderFile("models", []*Artifact{
			{Imports: map[string]string{"contracts": DefaultContractsImport}},
		}, Options{})
		require.NoError(t, err)
		assert.Contains(t, string(out), `contracts "github.com/lex00/domaingen/domain"`)
	})

	t.Run("rejects conflicting qualifiers", func(t *testing.T) {
		_, err := RenderFile("models", []*Artifact{
			{Imports: map[string]string{"uuid": "github.com/google/uuid"}},
			{Imports: map[string]string{"uuid": "github.com/gofrs/uuid"}},
		}, Options{})
		assert.ErrorContains(t, err, `qualifier "uuid"`)
	})

	t.Run("custom generator and contracts import", func(t *testing.T) {
		opts := Options{Generator: "dgen", ContractsImport: "example.com/contracts"}
		ping := &shape.TypeDescriptor{Kind: shape.KindRecord, Name: "Ping", Fields: []shape.Field{}}
		art, err := Synthesize(precond.Validate(precond.Query, ping, nil), opts)
		require.NoError(t, err)
		assert.Equal(t, "example.com/contracts", art.Imports["contracts"])

		out, err := RenderFile("models", []*Artifact{art}, opts)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "// Code generated by dgen. DO NOT EDIT."))
		assert.Contains(t, string(out), "var _ contracts.Query = Ping{}")
	})
}
