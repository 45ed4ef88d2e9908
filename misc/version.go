// Package misc holds build time information.
package misc

// Set by the linker: -X mdbc/misc.version=... -X mdbc/misc.hash=...
var (
	version = "dev"
	hash    = "unknown"
)

const appName = "mdbc"

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return hash
}

func GetAppName() string {
	return appName
}
