package transition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processedSlots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transition_processed_slots_total",
		Help: "The number of slots advanced by ProcessSlots.",
	})
	processedEpochs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transition_processed_epochs_total",
		Help: "The number of epoch boundaries processed.",
	})
	appliedBlocks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transition_applied_blocks_total",
		Help: "The number of blocks applied, partitioned by outcome.",
	}, []string{"result"})
	blockProcessingTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transition_block_processing_milliseconds",
		Help:    "Time to apply a block to a state, slot processing included.",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})
)
