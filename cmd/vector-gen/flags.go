package main

import (
	"github.com/urfave/cli/v2"
)

var (
	// configFlag selects the preset the vectors are generated under.
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Preset to generate vectors for (mainnet, minimal). Ignored when --chain-config-file is set",
		Value: "minimal",
	}
	// scenarioFlag restricts generation to the named scenarios.
	scenarioFlag = &cli.StringSliceFlag{
		Name:  "scenario",
		Usage: "Only generate the named scenario. Can be repeated; all scenarios run when unset",
	}
	// replayFlag re-reads every written vector and replays it through the state transition.
	replayFlag = &cli.BoolFlag{
		Name:  "replay",
		Usage: "Read every written vector back and check that replaying it reproduces its post state",
	}
	// validatorCountFlag overrides the genesis registry size.
	validatorCountFlag = &cli.Uint64Flag{
		Name:  "validators",
		Usage: "Number of genesis validators. Defaults to eight per slot of an epoch",
	}
)

var (
	// progressFlag draws a progress bar over the selected scenarios.
	progressFlag = &cli.BoolFlag{
		Name:  "progress",
		Usage: "Draw a progress bar on stdout while scenarios run",
	}
	// noColorFlag disables ANSI colors in command output.
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}
)
