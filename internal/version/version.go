// Package version holds build-time metadata injected via -ldflags.
package version

// Backend identifies this gateway flavour in health responses.
const Backend = "unified"

// release is reported when no build metadata was injected.
const release = "1.0.0"

var (
	// Version is a SemVer tag like v1.2.3 for releases. Empty for dev builds.
	Version = ""
	// Commit is the short git SHA for the build.
	Commit = ""
	// Dirty is "dirty" when the working tree had uncommitted changes.
	Dirty = ""
)

// String returns the version reported by /api/health: the injected tag, a
// "1.0.0+<sha>" dev marker when only a commit is known, or the base release.
func String() string {
	if Version != "" {
		return Version
	}
	if Commit != "" {
		suffix := Commit
		if Dirty == "dirty" {
			suffix += ".dirty"
		}
		return release + "+" + suffix
	}
	return release
}
