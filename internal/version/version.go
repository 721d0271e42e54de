package version

// Version is the release of the hakkan binary. Set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/hakkan/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	if GitCommit == "unknown" {
		return "hakkan " + Version
	}
	return "hakkan " + Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
