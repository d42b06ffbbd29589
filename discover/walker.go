package discover

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// WalkOptions configures directory walking behavior.
type WalkOptions struct {
	// SkipTests skips *_test.go files.
	SkipTests bool
	// SkipVendor skips vendor directories.
	SkipVendor bool
	// SkipHidden skips directories starting with "." or "_".
	SkipHidden bool
	// SkipTestdata skips testdata directories.
	SkipTestdata bool
	// ExcludeDirs lists additional directory names to skip.
	ExcludeDirs []string
}

// DefaultWalkOptions matches the directories the go command ignores.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		SkipTests:    true,
		SkipVendor:   true,
		SkipHidden:   true,
		SkipTestdata: true,
	}
}

// WalkDir walks a directory tree and calls fn for each Go source file.
func WalkDir(root string, opts WalkOptions, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && opts.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		if opts.SkipTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}
		return fn(path)
	})
}

func (o WalkOptions) skipDir(name string) bool {
	switch {
	case o.SkipHidden && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")):
		return true
	case o.SkipVendor && name == "vendor":
		return true
	case o.SkipTestdata && name == "testdata":
		return true
	}
	for _, excluded := range o.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

// PackageDirs returns every directory under root holding at least one Go
// file, sorted.
func PackageDirs(root string, opts WalkOptions) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	err := WalkDir(root, opts, func(path string) error {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}
