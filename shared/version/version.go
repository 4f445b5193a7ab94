// Package version reports the build of the running vector-gen binary.
package version

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Set through -ldflags -X at release time.
var (
	gitCommit = "Local build"
	buildDate = "Moments ago"
	gitTag    = "Unknown"
)

// GetVersion returns the version string of this build.
func GetVersion() string {
	return fmt.Sprintf("%s. Built at: %s", GetBuildData(), buildDate)
}

// GetBuildData returns the tool name, git tag and commit of the current build.
// Vectors written by different builds can be told apart by this string.
func GetBuildData() string {
	if gitCommit == "{STABLE_GIT_COMMIT}" {
		gitCommit = localCommit()
	}
	return fmt.Sprintf("vector-gen/%s/%s", gitTag, gitCommit)
}

// GoVersion is the toolchain the binary was built with.
func GoVersion() string {
	return runtime.Version()
}

func localCommit() string {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		logrus.WithError(err).Debug("Could not resolve local git commit")
		return "Local build"
	}
	return strings.TrimSpace(string(out))
}
