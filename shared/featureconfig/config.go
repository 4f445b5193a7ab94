/*
Package featureconfig defines which features are enabled for runtime
in order to selectively enable certain features to maintain a stable runtime.

Use the following to enable a flag for tests:
	cfg := &featureconfig.Flags{
		VerifyStateRoot: true,
	}
	resetCfg := featureconfig.InitWithReset(cfg)
	defer resetCfg()
*/
package featureconfig

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "flags")

// Flags is a struct to represent which features the vector generator will perform on runtime.
type Flags struct {
	VerifyStateRoot    bool // VerifyStateRoot checks every block's state_root against the computed post state root.
	DisablePubkeyCache bool // DisablePubkeyCache decompresses every BLS public key instead of using the process-wide cache.
}

var featureConfig *Flags

// Get retrieves feature config.
func Get() *Flags {
	if featureConfig == nil {
		return &Flags{}
	}
	return featureConfig
}

// Init sets the global config equal to the config that is passed in.
func Init(c *Flags) {
	featureConfig = c
}

// InitWithReset sets the global config and returns function that is used to reset configuration.
func InitWithReset(c *Flags) func() {
	resetFunc := func() {
		Init(&Flags{})
	}
	Init(c)
	return resetFunc
}

// ConfigureVectorGen sets the global config based
// on what flags are enabled for the vector generator.
func ConfigureVectorGen(ctx *cli.Context) {
	cfg := &Flags{}
	if ctx.Bool(VerifyStateRootFlag.Name) {
		log.Warn("Verifying block state roots against computed post states")
		cfg.VerifyStateRoot = true
	}
	if ctx.Bool(disablePubkeyCacheFlag.Name) {
		log.Warn("Disabling the BLS public key cache")
		cfg.DisablePubkeyCache = true
	}
	Init(cfg)
}
