package version

import (
	"fmt"
	"runtime"
)

const (
	devVersion     = "dev"
	snapshotString = "snapshot"
)

var (
	// Version Build Time Injected information
	Version    string
	CommitHash string
	BuildTime  string
	Snapshot   string
	Branch     string
)

// GetVersion returns the version information in a human consumable way. This is intended to be used
// when the user requests the version information or in the case of the User-Agent.
func GetVersion() string {
	return makeVersionString(Version, CommitHash, Snapshot, Branch)
}

// UserAgent is sent with every model download.
func UserAgent() string {
	return fmt.Sprintf("modelget/%s (%s-%s)", GetVersion(), runtime.GOOS, runtime.GOARCH)
}

func makeVersionString(version, commitHash, snapshot, branch string) string {
	if version == "" {
		version = devVersion
	}
	versionString := version
	if commitHash != "" {
		versionString = fmt.Sprintf("%s(%s)", versionString, commitHash)
	}
	if snapshot == "true" {
		versionString = fmt.Sprintf("%s-%s", versionString, snapshotString)
	}
	if branch != "" && branch != "main" && branch != "HEAD" {
		versionString = fmt.Sprintf("%s[%s]", versionString, branch)
	}
	return versionString
}
