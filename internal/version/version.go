package version

// Version is the current version of argo-quant.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-quant/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// StrategySchemaVersion is the strategy document format understood by this build.
const StrategySchemaVersion = "1.0.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
