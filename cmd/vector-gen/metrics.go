package main

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/prom2json"
	"github.com/prysmaticlabs/transition-vectors/shared/fileutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeMetrics dumps the process metrics to path. A .json path gets the prom2json
// rendering, anything else the prometheus text exposition format. Families come out
// of the gatherer sorted by name.
func writeMetrics(path string) error {
	if !strings.HasSuffix(path, ".json") {
		return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
	}
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "could not gather metrics")
	}
	families := make([]*prom2json.Family, 0, len(mfs))
	for _, mf := range mfs {
		families = append(families, prom2json.NewFamily(mf))
	}
	enc, err := json.MarshalIndent(families, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal metrics")
	}
	return fileutil.WriteFile(path, enc)
}
