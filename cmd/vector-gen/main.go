// Package main defines vector-gen, a command line tool that runs the phase0 sanity
// scenarios and writes their conformance vectors.
package main

import (
	"os"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/cmd"
	"github.com/prysmaticlabs/transition-vectors/shared/featureconfig"
	"github.com/prysmaticlabs/transition-vectors/shared/logutil"
	"github.com/prysmaticlabs/transition-vectors/shared/prometheus"
	"github.com/prysmaticlabs/transition-vectors/shared/tracing"
	"github.com/prysmaticlabs/transition-vectors/shared/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	_ "go.uber.org/automaxprocs"

	// Symbolizes the blst frames of cgo tracebacks.
	_ "github.com/ianlancetaylor/cgosymbolizer"
)

var log = logrus.WithField("prefix", "main")

var appFlags = []cli.Flag{
	cmd.OutputDirFlag,
	configFlag,
	cmd.ChainConfigFileFlag,
	scenarioFlag,
	validatorCountFlag,
	replayFlag,
	progressFlag,
	cmd.MetricsFileFlag,
	cmd.VerbosityFlag,
	cmd.LogFormat,
	cmd.LogFileName,
	cmd.ConfigFileFlag,
	cmd.EnableTracingFlag,
	cmd.TracingProcessNameFlag,
	cmd.TracingEndpointFlag,
	cmd.TraceSampleFractionFlag,
}

func init() {
	appFlags = cmd.WrapFlags(append(appFlags, featureconfig.VectorGenFlags...))
}

func main() {
	app := cli.App{}
	app.Name = "vector-gen"
	app.Usage = "Generates phase0 sanity block conformance vectors"
	app.Action = generate
	app.Version = version.GetVersion()
	app.Flags = appFlags
	app.Commands = []*cli.Command{listCommand}

	app.Before = func(ctx *cli.Context) error {
		// Load flags from config file, if specified.
		if ctx.IsSet(cmd.ConfigFileFlag.Name) {
			if err := altsrc.InitInputSourceWithContext(
				appFlags, altsrc.NewYamlSourceFromFlagFunc(cmd.ConfigFileFlag.Name))(ctx); err != nil {
				return err
			}
		}
		if err := configureLogging(ctx); err != nil {
			return err
		}
		return tracing.Setup(
			ctx.String(cmd.TracingProcessNameFlag.Name),
			ctx.String(cmd.TracingEndpointFlag.Name),
			ctx.Float64(cmd.TraceSampleFractionFlag.Name),
			ctx.Bool(cmd.EnableTracingFlag.Name),
		)
	}

	defer func() {
		if x := recover(); x != nil {
			log.Errorf("Runtime panic: %v\n%v", x, string(debug.Stack()))
			panic(x)
		}
	}()

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func configureLogging(ctx *cli.Context) error {
	format := ctx.String(cmd.LogFormat.Name)
	if err := logutil.Configure(format); err != nil {
		return err
	}
	logrus.AddHook(prometheus.NewLogrusCollector())

	logFileName := ctx.String(cmd.LogFileName.Name)
	if logFileName != "" {
		fileFormat := format
		if fileFormat == logutil.JournaldFormat {
			fileFormat = "text"
		}
		if err := logutil.ConfigurePersistentLogging(logFileName, fileFormat); err != nil {
			log.WithError(err).Error("Failed to configure logging to disk")
		}
	}

	level, err := logrus.ParseLevel(ctx.String(cmd.VerbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "could not parse verbosity")
	}
	logrus.SetLevel(level)
	return nil
}
