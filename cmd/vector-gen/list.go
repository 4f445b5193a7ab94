package main

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/prysmaticlabs/transition-vectors/beacon-chain/core/transition"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/sanity"
	"github.com/urfave/cli/v2"
)

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "Lists the scenarios vector-gen can generate together with their signature mode",
	Flags: []cli.Flag{noColorFlag},
	Action: func(ctx *cli.Context) error {
		return listScenarios(ctx.App.Writer, !ctx.Bool(noColorFlag.Name))
	},
}

func listScenarios(w io.Writer, colors bool) error {
	au := aurora.NewAurora(colors)
	for _, d := range sanity.Scenarios(nil) {
		var mode aurora.Value
		switch d.BLS {
		case transition.VerifyAlways:
			mode = au.Green(d.BLS)
		case transition.VerifyNever:
			mode = au.Yellow(d.BLS)
		default:
			mode = au.Faint(d.BLS)
		}
		if _, err := fmt.Fprintf(w, "%-36s %s\n", au.Bold(d.Name), mode); err != nil {
			return err
		}
	}
	return nil
}
