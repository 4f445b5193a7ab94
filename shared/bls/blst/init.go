package blst

import (
	"runtime"

	blst "github.com/supranational/blst/bindings/go"
)

func init() {
	blst.SetMaxProcs(signingProcs(runtime.GOMAXPROCS(0)))
}

// signingProcs leaves one core to the scenario driver whenever more than one is available.
func signingProcs(gomaxprocs int) int {
	if gomaxprocs > 1 {
		return gomaxprocs - 1
	}
	return 1
}
