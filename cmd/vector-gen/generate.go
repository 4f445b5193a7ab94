package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/transition-vectors/shared/cmd"
	"github.com/prysmaticlabs/transition-vectors/shared/featureconfig"
	"github.com/prysmaticlabs/transition-vectors/shared/params"
	"github.com/prysmaticlabs/transition-vectors/shared/version"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/sanity"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/scenario"
	"github.com/prysmaticlabs/transition-vectors/testing/spectest/vectors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// options are the resolved inputs of a generation run.
type options struct {
	OutputDir       string   `validate:"required"`
	Config          string   `validate:"omitempty,oneof=mainnet minimal"`
	ChainConfigFile string   `validate:"omitempty,file"`
	Scenarios       []string `validate:"dive,required"`
	Validators      uint64
	Replay          bool
	MetricsFile     string
	Progress        bool
}

var validate = validator.New()

func optionsFromContext(ctx *cli.Context) *options {
	return &options{
		OutputDir:       ctx.String(cmd.OutputDirFlag.Name),
		Config:          ctx.String(configFlag.Name),
		ChainConfigFile: ctx.String(cmd.ChainConfigFileFlag.Name),
		Scenarios:       ctx.StringSlice(scenarioFlag.Name),
		Validators:      ctx.Uint64(validatorCountFlag.Name),
		Replay:          ctx.Bool(replayFlag.Name),
		MetricsFile:     ctx.String(cmd.MetricsFileFlag.Name),
		Progress:        ctx.Bool(progressFlag.Name),
	}
}

// check reports the first invalid option in terms of its command line flag.
func (o *options) check() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	// Elements checked through dive are reported as Field[i].
	field := fe.StructField()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	switch field {
	case "OutputDir":
		return errors.Errorf("--%s is required", cmd.OutputDirFlag.Name)
	case "Config":
		return errors.Errorf("unknown config %q, want mainnet or minimal", fe.Value())
	case "ChainConfigFile":
		return errors.Errorf("chain config file %q does not exist", fe.Value())
	case "Scenarios":
		return errors.Errorf("--%s must not be empty", scenarioFlag.Name)
	default:
		return errors.Errorf("invalid %s: %v", fe.StructField(), fe.Value())
	}
}

func generate(ctx *cli.Context) error {
	featureconfig.ConfigureVectorGen(ctx)
	return run(ctx.Context, optionsFromContext(ctx))
}

func applyConfig(opts *options) error {
	if opts.ChainConfigFile != "" {
		return params.LoadChainConfigFile(opts.ChainConfigFile)
	}
	switch opts.Config {
	case "mainnet":
		params.UseMainnetConfig()
	case "minimal", "":
		params.UseMinimalConfig()
	}
	return nil
}

// run generates every selected scenario under opts.OutputDir. Failed scenarios still
// have their partial vector written, and the run reports them once everything else is
// done.
func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := opts.check(); err != nil {
		return err
	}
	if err := applyConfig(opts); err != nil {
		return err
	}
	configName := params.BeaconConfig().ConfigName
	numValidators := opts.Validators
	if numValidators == 0 {
		numValidators = sanity.DefaultValidatorCount()
	}
	if numValidators < params.BeaconConfig().SlotsPerEpoch {
		return errors.Errorf("at least %d validators are needed to fill every committee of an epoch, got %d",
			params.BeaconConfig().SlotsPerEpoch, numValidators)
	}

	runID, err := uuid.NewRandom()
	if err != nil {
		return errors.Wrap(err, "could not generate run id")
	}
	runLog := log.WithField("run", runID.String())

	genesis, keys, err := sanity.GenesisState(ctx, numValidators)
	if err != nil {
		return err
	}
	selected, err := sanity.Select(sanity.Scenarios(keys), opts.Scenarios)
	if err != nil {
		return err
	}
	runLog.WithFields(logrus.Fields{
		"config":     configName,
		"validators": numValidators,
		"scenarios":  len(selected),
		"outputDir":  opts.OutputDir,
		"build":      version.GetBuildData(),
		"go":         version.GoVersion(),
	}).Info("Generating conformance vectors")

	var bar progress = noProgress{}
	if opts.Progress {
		bar = newProgressBar(len(selected), "Generating vectors")
	}

	driver := scenario.NewDriver()
	manifest := &vectors.Manifest{}
	completed := make([]string, 0, len(selected))
	failed := 0
	for _, desc := range selected {
		v, runErr := driver.Run(ctx, desc, genesis)
		if v == nil {
			return runErr
		}
		if runErr != nil {
			failed++
		}
		dir := vectors.Dir(opts.OutputDir, configName, desc.Name)
		if err := vectors.Write(dir, v, nil); err != nil {
			return errors.Wrapf(err, "could not write vector %s", desc.Name)
		}
		rel, err := filepath.Rel(opts.OutputDir, dir)
		if err != nil {
			return err
		}
		entry, err := vectors.NewManifestEntry(configName, rel, v)
		if err != nil {
			return err
		}
		manifest.Scenarios = append(manifest.Scenarios, entry)
		if runErr == nil {
			completed = append(completed, dir)
		}
		if err := bar.Add(1); err != nil {
			runLog.WithError(err).Debug("Could not advance progress bar")
		}
	}
	if err := vectors.WriteManifest(opts.OutputDir, manifest); err != nil {
		return errors.Wrap(err, "could not write manifest")
	}
	if opts.Replay {
		if err := replayAll(ctx, completed); err != nil {
			return err
		}
	}
	if opts.MetricsFile != "" {
		if err := writeMetrics(opts.MetricsFile); err != nil {
			return errors.Wrap(err, "could not write metrics file")
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d scenarios failed", failed, len(selected))
	}
	runLog.WithField("scenarios", len(selected)).Info("Generated conformance vectors")
	return nil
}
