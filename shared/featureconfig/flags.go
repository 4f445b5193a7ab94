package featureconfig

import (
	"github.com/urfave/cli/v2"
)

var (
	// VerifyStateRootFlag enables the post-block state root check.
	VerifyStateRootFlag = &cli.BoolFlag{
		Name:  "verify-state-root",
		Usage: "Require every generated block's state_root to match the computed post state root",
	}
	disablePubkeyCacheFlag = &cli.BoolFlag{
		Name:  "disable-pubkey-cache",
		Usage: "Disable the in-memory cache of decompressed BLS public keys",
	}
)

// VectorGenFlags contains a list of all the feature flags that apply to the vector generator.
var VectorGenFlags = []cli.Flag{
	VerifyStateRootFlag,
	disablePubkeyCacheFlag,
}
