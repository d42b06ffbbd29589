package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/domaingen/lsp"
)

const eventsSrc = `package events

import "github.com/google/uuid"

//go:generate go run github.com/lex00/domaingen/cmd/domaingen build .

//domain:derive DomainEvent
type FirstNameUpdated struct {
	id          uuid.UUID
	aggregateID uuid.UUID
	firstName   string
	version     uint32
	occurred    int64
}

//domain:derive DomainEvent
type EmailUpdated struct {
	id          uuid.UUID
	aggregateID uuid.UUID
	email       string
	version     uint64
	occurred    int64
}

//domain:derive DomainEvents FirstNameUpdated EmailUpdated
type UserEvents interface {
	isUserEvents()
}
`

const brokenSrc = `package billing

import "github.com/google/uuid"

//domain:derive DomainEvent
type Paid struct {
	id          uuid.UUID
	aggregateID uuid.UUID
	version     float64
	occurred    int64
}
`

type fixture struct {
	root   string
	config string
}

func newFixture(t *testing.T, configYAML string) fixture {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"events/events.go":   eventsSrc,
		"billing/billing.go": brokenSrc,
		"plain/plain.go":     "package plain\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	cfgPath := filepath.Join(root, ".domaingen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0644))
	return fixture{root: root, config: cfgPath}
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--config", f.config}, args...))
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func (f fixture) path(parts ...string) string {
	return filepath.Join(append([]string{f.root}, parts...)...)
}

func TestBuild(t *testing.T) {
	f := newFixture(t, "")

	out, err := f.run(t, "build", f.path("events"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 package(s), 1 file(s) updated")

	src, err := os.ReadFile(f.path("events", "domaingen_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "func (FirstNameUpdated) isUserEvents() {}")
	assert.Contains(t, string(src), "return uint64(f.version)")

	out, err = f.run(t, "build", f.path("events"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 package(s), 0 file(s) updated")

	t.Run("failing package reports diagnostics", func(t *testing.T) {
		_, err := f.run(t, "build", f.root+"/...")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "billing.go:6:6: error: DomainEvent: field `version` of Paid must be an integer type, found floating point float64 (DG006)")
		_, statErr := os.Stat(f.path("billing", "domaingen_gen.go"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("dry run with output override", func(t *testing.T) {
		f := newFixture(t, "")
		out, err := f.run(t, "build", "--dry-run", "--output", "events_gen.go", f.path("events"))
		require.NoError(t, err)
		assert.Contains(t, out, "// "+f.path("events", "events_gen.go"))
		assert.Contains(t, out, "// Code generated by domaingen. DO NOT EDIT.")
		_, statErr := os.Stat(f.path("events", "events_gen.go"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("invalid output override", func(t *testing.T) {
		_, err := f.run(t, "build", "--output", "gen/x.go", f.path("events"))
		assert.ErrorContains(t, err, "without directories")
	})
}

func TestConfigOutput(t *testing.T) {
	f := newFixture(t, "output: zz_generated.go\nconcurrency: 1\n")

	_, err := f.run(t, "build", f.path("events"))
	require.NoError(t, err)
	_, err = os.Stat(f.path("events", "zz_generated.go"))
	assert.NoError(t, err)
}

func TestLint(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.WriteFile(f.path("plain", "plain.go"),
		[]byte("package plain\n\n//domain:derive Aggregate\ntype P struct{}\n"), 0644))

	out, err := f.run(t, "lint", f.root+"/...")
	assert.EqualError(t, err, "lint found 1 error(s)")
	assert.Contains(t, out, "(DG006)")
	assert.Contains(t, out, `unknown contract "Aggregate" on P (DG100)`)

	t.Run("config filters rules", func(t *testing.T) {
		f := newFixture(t, "lint:\n  disabled_rules: [DG006]\n")
		out, err := f.run(t, "lint", f.root+"/...")
		require.NoError(t, err)
		assert.Equal(t, "No issues found\n", out)
	})
}

func TestDiagnose(t *testing.T) {
	f := newFixture(t, "")
	billing := f.path("billing", "billing.go")

	out, err := f.run(t, "diagnose", billing, f.path("events", "events.go"))
	require.NoError(t, err)

	var report map[string][]lsp.Diagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	diags := report[lsp.URIFromPath(billing)]
	require.Len(t, diags, 1)
	assert.Equal(t, "DG006", diags[0].Code)
	assert.Equal(t, lsp.Position{Line: 5, Character: 5}, diags[0].Range.Start)
	assert.Empty(t, report[lsp.URIFromPath(f.path("events", "events.go"))])
}

func TestCheck(t *testing.T) {
	f := newFixture(t, "")
	events := f.path("events")

	_, err := f.run(t, "check", events)
	assert.ErrorContains(t, err, "1 generated file(s) out of date")

	_, err = f.run(t, "build", events)
	require.NoError(t, err)

	out, err := f.run(t, "check", events)
	require.NoError(t, err)
	assert.Equal(t, "Generated files are up to date\n", out)

	require.NoError(t, os.WriteFile(f.path("plain", "domaingen_gen.go"),
		[]byte("// Code generated by domaingen. DO NOT EDIT.\n\npackage plain\n"), 0644))
	out, err = f.run(t, "check", f.path("plain"))
	assert.Error(t, err)
	assert.Contains(t, out, filepath.Join("plain", "domaingen_gen.go")+": out of date")
}

func TestInit(t *testing.T) {
	f := newFixture(t, "")
	dir := f.path("plain")

	out, err := f.run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, ".domaingen.yaml"))

	data, err := os.ReadFile(filepath.Join(dir, ".domaingen.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: domaingen_gen.go")

	_, err = f.run(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = f.run(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestBadConfig(t *testing.T) {
	f := newFixture(t, "concurrency: many\n")
	_, err := f.run(t, "lint", f.path("plain"))
	assert.ErrorContains(t, err, "failed to parse config YAML")
}
