package discover

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree writes each relative path under root with a minimal package clause.
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("package test\n"), 0644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	return rel
}

func TestWalkDir(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir,
		"root.go",
		"root_test.go",
		"notes.txt",
		"sub/sub.go",
		"vendor/vendor.go",
		".hidden/hidden.go",
		"_scratch/scratch.go",
		"testdata/testdata.go",
	)

	tests := []struct {
		name string
		opts WalkOptions
		want []string
	}{
		{
			name: "walks all go files with default options",
			opts: WalkOptions{},
			want: []string{".hidden/hidden.go", "_scratch/scratch.go", "root.go", "root_test.go", "sub/sub.go", "testdata/testdata.go", "vendor/vendor.go"},
		},
		{
			name: "skips test files",
			opts: WalkOptions{SkipTests: true},
			want: []string{".hidden/hidden.go", "_scratch/scratch.go", "root.go", "sub/sub.go", "testdata/testdata.go", "vendor/vendor.go"},
		},
		{
			name: "skips vendor directory",
			opts: WalkOptions{SkipVendor: true},
			want: []string{".hidden/hidden.go", "_scratch/scratch.go", "root.go", "root_test.go", "sub/sub.go", "testdata/testdata.go"},
		},
		{
			name: "skips hidden directories",
			opts: WalkOptions{SkipHidden: true},
			want: []string{"root.go", "root_test.go", "sub/sub.go", "testdata/testdata.go", "vendor/vendor.go"},
		},
		{
			name: "skips testdata directory",
			opts: WalkOptions{SkipTestdata: true},
			want: []string{".hidden/hidden.go", "_scratch/scratch.go", "root.go", "root_test.go", "sub/sub.go", "vendor/vendor.go"},
		},
		{
			name: "skips excluded directories",
			opts: WalkOptions{ExcludeDirs: []string{"sub"}},
			want: []string{".hidden/hidden.go", "_scratch/scratch.go", "root.go", "root_test.go", "testdata/testdata.go", "vendor/vendor.go"},
		},
		{
			name: "default options match the go command",
			opts: DefaultWalkOptions(),
			want: []string{"root.go", "sub/sub.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := WalkDir(tmpDir, tt.opts, func(path string) error {
				visited = append(visited, path)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, tmpDir, visited))
		})
	}

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		err := WalkDir(filepath.Join(tmpDir, "missing"), WalkOptions{}, func(string) error { return nil })
		assert.Error(t, err)
	})

	t.Run("hidden root is still walked", func(t *testing.T) {
		var visited []string
		err := WalkDir(filepath.Join(tmpDir, ".hidden"), DefaultWalkOptions(), func(path string) error {
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, visited, 1)
	})
}

func TestPackageDirs(t *testing.T) {
	tmpDir := t.TempDir()
	makeTree(t, tmpDir,
		"a.go",
		"b.go",
		"models/user.go",
		"models/events/events.go",
		"onlytests/x_test.go",
		"vendor/v.go",
		"docs/readme.txt",
	)

	dirs, err := PackageDirs(tmpDir, DefaultWalkOptions())
	require.NoError(t, err)

	var rel []string
	for _, d := range dirs {
		r, err := filepath.Rel(tmpDir, d)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{".", "models", "models/events"}, rel)
}
