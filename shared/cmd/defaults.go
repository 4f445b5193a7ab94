package cmd

import (
	"path/filepath"

	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
)

// DefaultOutputDir is the default directory for generated vectors, placed in the
// user's home dir when one is known.
func DefaultOutputDir() string {
	home := fileutil.HomeDir()
	if home == "" {
		// As we cannot guess a stable location, fall back to the working directory.
		return "vectors"
	}
	return filepath.Join(home, ".eth2", "vectors")
}
