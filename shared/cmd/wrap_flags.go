package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

// WrapFlags makes every flag loadable from the yaml file named by ConfigFileFlag.
// Only flag kinds that altsrc can populate are accepted; anything else panics at
// start up so that a misconfigured flag set never reaches a generation run.
func WrapFlags(flags []cli.Flag) []cli.Flag {
	wrapped := make([]cli.Flag, 0, len(flags))
	for _, f := range flags {
		switch fl := f.(type) {
		case *cli.BoolFlag:
			wrapped = append(wrapped, altsrc.NewBoolFlag(fl))
		case *cli.DurationFlag:
			wrapped = append(wrapped, altsrc.NewDurationFlag(fl))
		case *cli.Float64Flag:
			wrapped = append(wrapped, altsrc.NewFloat64Flag(fl))
		case *cli.IntFlag:
			wrapped = append(wrapped, altsrc.NewIntFlag(fl))
		case *cli.UintFlag:
			wrapped = append(wrapped, altsrc.NewUintFlag(fl))
		case *cli.Uint64Flag:
			wrapped = append(wrapped, altsrc.NewUint64Flag(fl))
		case *cli.StringFlag:
			wrapped = append(wrapped, altsrc.NewStringFlag(fl))
		case *cli.StringSliceFlag:
			wrapped = append(wrapped, altsrc.NewStringSliceFlag(fl))
		case *cli.Int64Flag:
			// altsrc v2.3.0 never applies yaml values to int64 flags.
			panic(fmt.Sprintf("unsupported flag type %T", f))
		default:
			panic(fmt.Sprintf("cannot wrap flag type %T", f))
		}
	}
	return wrapped
}
