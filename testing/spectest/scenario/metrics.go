package scenario

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scenarioRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scenario_runs_total",
		Help: "The number of scenario runs, by result",
	}, []string{"result"})
	emittedBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scenario_emitted_blocks_total",
		Help: "The number of blocks emitted into conformance vectors",
	})
	scenarioDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scenario_run_milliseconds",
		Help:    "Captures the time it takes to run a scenario in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
)
