// Package version provides version information for the domaingen binary
// and for modules that depend on it, using Go's runtime/debug build info.
package version

import "runtime/debug"

const modulePath = "github.com/lex00/domaingen"

// BuildInfo is the subset of build information reported by the CLI.
type BuildInfo struct {
	Version string
	// Revision is the VCS commit the binary was built from, if recorded.
	Revision  string
	GoVersion string
}

// Version returns the module version if available from build info.
// Returns "dev" if version information is not available (local development builds).
func Version() string {
	return Info().Version
}

// Info returns the version together with the VCS revision and Go version.
func Info() BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return BuildInfo{Version: "dev"}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) BuildInfo {
	bi := BuildInfo{Version: "dev", GoVersion: info.GoVersion}

	// Check if we're the main module
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		bi.Version = info.Main.Version
	} else {
		// Check dependencies for when used as a library
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				bi.Version = dep.Version
				break
			}
		}
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			bi.Revision = s.Value
			if len(bi.Revision) > 12 {
				bi.Revision = bi.Revision[:12]
			}
		}
	}
	return bi
}

// ModulePath returns the canonical module path.
func ModulePath() string {
	return modulePath
}
